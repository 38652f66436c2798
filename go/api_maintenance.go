package kioskserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/adapters/http/mapper"
	types "github.com/Apurer/ramen-kiosk/internal/domains/kiosk/application/types"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/ports"
	apierrors "github.com/Apurer/ramen-kiosk/internal/shared/errors"
)

// MaintenanceAPI serves the operator menu.
type MaintenanceAPI struct {
	service ports.Service
}

func NewMaintenanceAPI(service ports.Service) MaintenanceAPI {
	return MaintenanceAPI{service: service}
}

// Post /v1/maintenance/ingredients/:name/restock
// Adds units to an ingredient, clamped to the ceiling
func (api *MaintenanceAPI) RestockIngredient(c *gin.Context) {
	var payload mapper.RestockRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	if payload.Amount == nil {
		apierrors.DefaultResponder.ValidationFailed(c, map[string]string{"amount": "required"})
		return
	}
	updated, err := api.service.Restock(c.Request.Context(), types.RestockInput{
		Ingredient: c.Param("name"),
		Amount:     *payload.Amount,
	})
	if err != nil {
		respondKioskError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromIngredient(updated))
}

// Post /v1/maintenance/revenue/collect
// Returns the cash box total and empties it
func (api *MaintenanceAPI) CollectRevenue(c *gin.Context) {
	amount, err := api.service.CollectRevenue(c.Request.Context())
	if err != nil {
		respondKioskError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromRevenue(amount))
}

// Get /v1/maintenance/revenue
func (api *MaintenanceAPI) GetRevenue(c *gin.Context) {
	amount, err := api.service.Revenue(c.Request.Context())
	if err != nil {
		respondKioskError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromRevenue(amount))
}

// Get /v1/maintenance/orders
// Session order history, oldest first
func (api *MaintenanceAPI) ListOrders(c *gin.Context) {
	history, err := api.service.History(c.Request.Context())
	if err != nil {
		respondKioskError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromOrderRecords(history))
}

// Get /v1/maintenance/journal
func (api *MaintenanceAPI) GetJournal(c *gin.Context) {
	view, err := api.service.Journal(c.Request.Context())
	if err != nil {
		respondKioskError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromJournal(view))
}

// Get /v1/maintenance/journal/:orderId
func (api *MaintenanceAPI) GetJournalEntry(c *gin.Context) {
	entry, err := api.service.JournalEntry(c.Request.Context(), types.JournalEntryInput{OrderID: c.Param("orderId")})
	if err != nil {
		respondKioskError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromJournalEntry(entry))
}
