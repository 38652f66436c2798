package kioskserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/adapters/http/mapper"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/application"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/domain"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/ports"
	apierrors "github.com/Apurer/ramen-kiosk/internal/shared/errors"
)

var kioskResponder = apierrors.NewChainedResponder("",
	mapStockError,
	mapPaymentError,
	mapNotFound,
	mapInvalidInput,
	mapJournalUnavailable,
)

func respondKioskError(c *gin.Context, err error) {
	kioskResponder.RespondError(c, err)
}

func respondBindError(c *gin.Context, err error) {
	kioskResponder.BindFailed(c, err)
}

func mapStockError(err error) (apierrors.ProblemDetail, bool) {
	var stockErr *domain.StockError
	if !errors.As(err, &stockErr) {
		return apierrors.ProblemDetail{}, false
	}
	return apierrors.NewInsufficientStockProblem(stockErr.Ingredient, stockErr.Requested, stockErr.Available), true
}

func mapPaymentError(err error) (apierrors.ProblemDetail, bool) {
	var payErr *domain.PaymentError
	if !errors.As(err, &payErr) {
		return apierrors.ProblemDetail{}, false
	}
	return apierrors.NewInsufficientPaymentProblem(
		mapper.Money(payErr.Required),
		mapper.Money(payErr.Tendered),
		mapper.Money(payErr.Shortfall),
	), true
}

func mapNotFound(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "ingredient"), true
	case errors.Is(err, domain.ErrUnknownDish):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "dish"), true
	case errors.Is(err, ports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "order"), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapInvalidInput(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, application.ErrInvalidInput) || domain.IsValidation(err) {
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapJournalUnavailable(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, ports.ErrJournalUnavailable) {
		return apierrors.ErrUnavailable.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
