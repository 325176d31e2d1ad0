package routes

import (
	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/metrics"
	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(router *gin.Engine, h *middleware.DashboardHandler, m *metrics.Metrics, gatherer prometheus.Gatherer) {
	router.Use(m.Middleware())

	// Páginas
	router.GET("/", h.GetCards)
	router.GET("/transactions", h.GetTransactions)
	router.GET("/token", h.GetTokenDetail)

	// API
	api := router.Group("/api")
	{
		api.GET("/transactions", h.GetTransactionsJSON)
	}

	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
