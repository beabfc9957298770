package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-labs/lorekeeper/internal/catalog"
)

type SetHandler struct {
	catalog *catalog.Store
}

func NewSetHandler(store *catalog.Store) *SetHandler {
	return &SetHandler{catalog: store}
}

// GetSets lists every set, ascending by release date. Includes the load
// state so clients can tell an empty catalog from one still loading.
func (h *SetHandler) GetSets(c *gin.Context) {
	status := h.catalog.Status()
	c.JSON(http.StatusOK, gin.H{
		"sets":   h.catalog.Sets(),
		"loaded": status.State == catalog.StateLoaded,
		"state":  status.State.String(),
	})
}

// GetSet returns one set's metadata by short code.
func (h *SetHandler) GetSet(c *gin.Context) {
	code := c.Param("code")

	set, ok := h.catalog.SetByCode(code)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "set not found"})
		return
	}
	c.JSON(http.StatusOK, set)
}

// GetSetCards returns the cards of one set, cached prices attached.
func (h *SetHandler) GetSetCards(c *gin.Context) {
	code := c.Param("code")

	set, ok := h.catalog.SetByCode(code)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "set not found"})
		return
	}

	cards := h.catalog.CardsForSet(set.Name)
	c.JSON(http.StatusOK, gin.H{
		"set":         set,
		"cards":       cards,
		"total_count": len(cards),
	})
}
