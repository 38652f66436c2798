// Package kioskserver exposes the kiosk use cases over HTTP.
package kioskserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/ramen-kiosk/internal/shared/errors"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
	// Operator routes run behind the operator guard.
	Operator bool
}

// ApiHandleFunctions bundles the handlers and middleware the router needs.
type ApiHandleFunctions struct {
	KioskAPI       KioskAPI
	MaintenanceAPI MaintenanceAPI
	// OperatorGuard protects maintenance routes. Nil leaves them open.
	OperatorGuard gin.HandlerFunc
	// Metrics defaults to a fresh registry when nil.
	Metrics *Metrics
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the kiosk routes to an engine that already carries its global middleware.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	metrics := handleFunctions.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}
	router.Use(metrics.Middleware())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.NoRoute(apierrors.NoRoute())

	for _, route := range getRoutes(handleFunctions) {
		chain := make([]gin.HandlerFunc, 0, 2)
		if route.Operator && handleFunctions.OperatorGuard != nil {
			chain = append(chain, handleFunctions.OperatorGuard)
		}
		chain = append(chain, route.HandlerFunc)
		router.Handle(route.Method, route.Pattern, chain...)
	}
	return router
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			Name:        "ListIngredients",
			Method:      http.MethodGet,
			Pattern:     "/v1/ingredients",
			HandlerFunc: handleFunctions.KioskAPI.ListIngredients,
		},
		{
			Name:        "ListDishes",
			Method:      http.MethodGet,
			Pattern:     "/v1/dishes",
			HandlerFunc: handleFunctions.KioskAPI.ListDishes,
		},
		{
			Name:        "QuoteOrder",
			Method:      http.MethodPost,
			Pattern:     "/v1/quote",
			HandlerFunc: handleFunctions.KioskAPI.QuoteOrder,
		},
		{
			Name:        "PlaceOrder",
			Method:      http.MethodPost,
			Pattern:     "/v1/orders",
			HandlerFunc: handleFunctions.KioskAPI.PlaceOrder,
		},
		{
			Name:        "RestockIngredient",
			Method:      http.MethodPost,
			Pattern:     "/v1/maintenance/ingredients/:name/restock",
			HandlerFunc: handleFunctions.MaintenanceAPI.RestockIngredient,
			Operator:    true,
		},
		{
			Name:        "CollectRevenue",
			Method:      http.MethodPost,
			Pattern:     "/v1/maintenance/revenue/collect",
			HandlerFunc: handleFunctions.MaintenanceAPI.CollectRevenue,
			Operator:    true,
		},
		{
			Name:        "GetRevenue",
			Method:      http.MethodGet,
			Pattern:     "/v1/maintenance/revenue",
			HandlerFunc: handleFunctions.MaintenanceAPI.GetRevenue,
			Operator:    true,
		},
		{
			Name:        "ListOrders",
			Method:      http.MethodGet,
			Pattern:     "/v1/maintenance/orders",
			HandlerFunc: handleFunctions.MaintenanceAPI.ListOrders,
			Operator:    true,
		},
		{
			Name:        "GetJournal",
			Method:      http.MethodGet,
			Pattern:     "/v1/maintenance/journal",
			HandlerFunc: handleFunctions.MaintenanceAPI.GetJournal,
			Operator:    true,
		},
		{
			Name:        "GetJournalEntry",
			Method:      http.MethodGet,
			Pattern:     "/v1/maintenance/journal/:orderId",
			HandlerFunc: handleFunctions.MaintenanceAPI.GetJournalEntry,
			Operator:    true,
		},
	}
}
