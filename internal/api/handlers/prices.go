package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-labs/lorekeeper/internal/prices"
)

type PriceHandler struct {
	refresher *prices.Refresher
}

func NewPriceHandler(refresher *prices.Refresher) *PriceHandler {
	return &PriceHandler{refresher: refresher}
}

// GetPriceStatus returns refresher and quota status.
func (h *PriceHandler) GetPriceStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.refresher.Status())
}

// RefreshPrices requests an immediate background refresh sweep. Returns
// 202: the sweep runs asynchronously and clients poll the status endpoint.
func (h *PriceHandler) RefreshPrices(c *gin.Context) {
	h.refresher.Trigger()
	c.JSON(http.StatusAccepted, gin.H{
		"status": "refresh queued",
	})
}
