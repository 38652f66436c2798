package kioskserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/adapters/http/mapper"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/ports"
)

// KioskAPI serves the customer screens.
type KioskAPI struct {
	service ports.Service
}

func NewKioskAPI(service ports.Service) KioskAPI {
	return KioskAPI{service: service}
}

// Get /v1/ingredients
// Lists the catalog with current stock
func (api *KioskAPI) ListIngredients(c *gin.Context) {
	list, err := api.service.ListIngredients(c.Request.Context())
	if err != nil {
		respondKioskError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromIngredients(list))
}

// Get /v1/dishes
func (api *KioskAPI) ListDishes(c *gin.Context) {
	list, err := api.service.ListDishes(c.Request.Context())
	if err != nil {
		respondKioskError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDishes(list))
}

// Post /v1/quote
// Prices a selection without placing it
func (api *KioskAPI) QuoteOrder(c *gin.Context) {
	var payload mapper.QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	quote, err := api.service.Quote(c.Request.Context(), mapper.ToQuoteInput(payload))
	if err != nil {
		respondKioskError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromQuote(quote))
}

// Post /v1/orders
// Pays for and commits an order
func (api *KioskAPI) PlaceOrder(c *gin.Context) {
	var payload mapper.OrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	receipt, err := api.service.PlaceOrder(c.Request.Context(), mapper.ToPlaceOrderInput(payload))
	if err != nil {
		respondKioskError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.FromReceipt(receipt))
}
