package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inkwell-labs/lorekeeper/internal/api/handlers"
	"github.com/inkwell-labs/lorekeeper/internal/catalog"
	"github.com/inkwell-labs/lorekeeper/internal/images"
	"github.com/inkwell-labs/lorekeeper/internal/prices"
	"github.com/inkwell-labs/lorekeeper/internal/search"
)

// SetupRouter wires the HTTP API over the catalog, search engine, image
// resolver, and price refresher.
func SetupRouter(store *catalog.Store, engine *search.Engine, resolver *images.Resolver, refresher *prices.Refresher, corsOrigins []string) *gin.Engine {
	router := gin.Default()

	config := cors.DefaultConfig()
	if len(corsOrigins) > 0 {
		config.AllowOrigins = corsOrigins
	} else {
		config.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	config.AllowCredentials = false
	router.Use(cors.New(config))
	router.Use(RequestID())
	router.Use(Metrics())

	cardHandler := handlers.NewCardHandler(store, engine, resolver)
	setHandler := handlers.NewSetHandler(store)
	priceHandler := handlers.NewPriceHandler(refresher)

	api := router.Group("/api")
	{
		cards := api.Group("/cards")
		{
			cards.GET("/search", cardHandler.SearchCards)
			cards.GET("/search/groups", cardHandler.SearchCardGroups)
			cards.GET("/:id", cardHandler.GetCard)
			cards.GET("/:id/image", cardHandler.GetCardImage)
		}

		sets := api.Group("/sets")
		{
			sets.GET("", setHandler.GetSets)
			sets.GET("/:code", setHandler.GetSet)
			sets.GET("/:code/cards", setHandler.GetSetCards)
		}

		pricesGroup := api.Group("/prices")
		{
			pricesGroup.GET("/status", priceHandler.GetPriceStatus)
			pricesGroup.POST("/refresh", priceHandler.RefreshPrices)
		}
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/health", func(c *gin.Context) {
		status := store.Status()
		c.JSON(200, gin.H{
			"status":  "ok",
			"catalog": status.State.String(),
		})
	})

	return router
}
