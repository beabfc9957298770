package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-labs/lorekeeper/internal/catalog"
	"github.com/inkwell-labs/lorekeeper/internal/images"
	"github.com/inkwell-labs/lorekeeper/internal/models"
	"github.com/inkwell-labs/lorekeeper/internal/search"
)

type CardHandler struct {
	catalog  *catalog.Store
	engine   *search.Engine
	resolver *images.Resolver
}

func NewCardHandler(store *catalog.Store, engine *search.Engine, resolver *images.Resolver) *CardHandler {
	return &CardHandler{
		catalog:  store,
		engine:   engine,
		resolver: resolver,
	}
}

// SearchCards runs a flat card search. An empty result set is a normal
// response, optionally decorated with fuzzy name suggestions.
func (h *CardHandler) SearchCards(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	cards := h.engine.Search(query)
	result := models.CardSearchResult{
		Cards:      cards,
		TotalCount: len(cards),
	}
	if len(cards) == 0 {
		result.Suggestions = h.engine.Suggest(query)
	}

	c.JSON(http.StatusOK, result)
}

// SearchCardGroups runs a reprint-aware grouped search.
func (h *CardHandler) SearchCardGroups(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	groups := h.engine.SearchGroups(query)
	c.JSON(http.StatusOK, models.GroupSearchResult{
		Groups:     groups,
		TotalCount: len(groups),
	})
}

// GetCard returns a single printing by ID, with its cached price attached
// and whether the name is a reprint across sets.
func (h *CardHandler) GetCard(c *gin.Context) {
	id := c.Param("id")

	card, ok := h.catalog.CardByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"card":       card,
		"is_reprint": h.catalog.IsReprint(card.Name),
		"sets":       h.catalog.SetsContainingCardName(card.Name),
	})
}

// GetCardImage resolves a printing's artwork: local bundle files are served
// directly, anything else redirects to the remote URL.
func (h *CardHandler) GetCardImage(c *gin.Context) {
	id := c.Param("id")

	card, ok := h.catalog.CardByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}

	loc := h.resolver.Resolve(card)
	if loc.IsLocal() {
		c.File(loc.LocalPath)
		return
	}
	if loc.RemoteURL == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no artwork for card"})
		return
	}
	c.Redirect(http.StatusFound, loc.RemoteURL)
}
