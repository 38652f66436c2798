//go:build pact
// +build pact

package provider_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	kioskserver "github.com/Apurer/ramen-kiosk/go"
	kioskobs "github.com/Apurer/ramen-kiosk/internal/domains/kiosk/adapters/observability"
	kioskapp "github.com/Apurer/ramen-kiosk/internal/domains/kiosk/application"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/domain"
	"github.com/Apurer/ramen-kiosk/internal/platform/catalogseed"
	apierrors "github.com/Apurer/ramen-kiosk/internal/shared/errors"
	pacttest "github.com/Apurer/ramen-kiosk/test/pact"
)

func TestKioskProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogStocked: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateNoodlesSoldOut: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			kiosk := app.reset(t)
			if setup {
				sellOutNoodles(t, kiosk)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
	})
	require.NoError(t, err)
}

// contractProviderApp swaps in a fresh kiosk session for every provider state.
type contractProviderApp struct {
	mu      sync.RWMutex
	handler http.Handler
	server  *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset(t)
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		h := app.handler
		app.mu.RUnlock()
		h.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset(t testing.TB) *domain.Kiosk {
	t.Helper()
	seed, err := catalogseed.Default()
	require.NoError(t, err)
	kiosk, err := seed.NewKiosk()
	require.NoError(t, err)

	service := kioskobs.New(kioskapp.NewService(kiosk))
	router := gin.New()
	router.Use(apierrors.Recovery(nil))
	router = kioskserver.NewRouterWithGinEngine(router, kioskserver.ApiHandleFunctions{
		KioskAPI:       kioskserver.NewKioskAPI(service),
		MaintenanceAPI: kioskserver.NewMaintenanceAPI(service),
	})

	a.mu.Lock()
	a.handler = router
	a.mu.Unlock()
	return kiosk
}

func sellOutNoodles(t testing.TB, kiosk *domain.Kiosk) {
	t.Helper()
	dish, err := kiosk.Dish("")
	require.NoError(t, err)
	selection, err := domain.NewSelection(domain.Line{Ingredient: "Noodles", Quantity: domain.RestockCeiling})
	require.NoError(t, err)
	spec, err := dish.Compose(selection)
	require.NoError(t, err)
	_, _, err = kiosk.PlaceOrder(spec, decimal.NewFromInt(1000))
	require.NoError(t, err)
}
