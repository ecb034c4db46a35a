//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-shop-server/test/pact"

	shopserver "github.com/Apurer/go-gin-shop-server/go"
	itemmemory "github.com/Apurer/go-gin-shop-server/internal/domains/items/adapters/memory"
	itemobs "github.com/Apurer/go-gin-shop-server/internal/domains/items/adapters/observability"
	itemapp "github.com/Apurer/go-gin-shop-server/internal/domains/items/application"
	itemdomain "github.com/Apurer/go-gin-shop-server/internal/domains/items/domain"
	membermemory "github.com/Apurer/go-gin-shop-server/internal/domains/members/adapters/memory"
	memberobs "github.com/Apurer/go-gin-shop-server/internal/domains/members/adapters/observability"
	memberapp "github.com/Apurer/go-gin-shop-server/internal/domains/members/application"
	memberdomain "github.com/Apurer/go-gin-shop-server/internal/domains/members/domain"
	ordermemory "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/memory"
	orderobs "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/observability"
	orderworkflows "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/workflows"
	orderapp "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application"
	"github.com/Apurer/go-gin-shop-server/internal/shared/uow"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestShopProviderPact(t *testing.T) {
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
		pacttest.StateMembersBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			return nil, nil
		},
		pacttest.StateMemberExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if setup {
				app.seedMember(t)
			}
			return nil, nil
		},
		pacttest.StateMemberMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			return nil, nil
		},
		pacttest.StateOrderPlaceable: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if setup {
				app.seedMember(t)
				app.seedItem(t)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset()
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	mu      sync.RWMutex
	members *membermemory.Repository
	items   *itemmemory.Repository
	router  *gin.Engine
	server  *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset()
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		router := app.router
		app.mu.RUnlock()
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

// reset swaps in fresh repositories and a router over them.
func (a *contractProviderApp) reset() {
	members := membermemory.NewRepository()
	items := itemmemory.NewRepository()
	orders := ordermemory.NewRepository(members, items)
	tx := uow.NewSerial(5 * time.Second)

	memberService := memberobs.New(memberapp.NewService(members, tx))
	itemService := itemobs.New(itemapp.NewService(items, tx))
	orderService := orderobs.New(orderapp.NewService(orders, members, items, tx))

	router := gin.New()
	router.Use(gin.Recovery())
	router = shopserver.NewRouterWithGinEngine(router, shopserver.ApiHandleFunctions{
		ItemAPI:   shopserver.NewItemAPI(itemService),
		MemberAPI: shopserver.NewMemberAPI(memberService),
		OrderAPI:  shopserver.NewOrderAPI(orderService, orderworkflows.NewInlineOrderWorkflows(orderService)),
	})

	a.mu.Lock()
	defer a.mu.Unlock()
	a.members, a.items, a.router = members, items, router
}

func (a *contractProviderApp) seedMember(t testing.TB) {
	t.Helper()
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, err := a.members.Save(context.Background(), &memberdomain.Member{
		ID:      pacttest.ExistingMemberID,
		Name:    pacttest.ExampleMemberName(),
		Address: memberdomain.NewAddress("Seoul", "River 1", "06000"),
	})
	require.NoError(t, err)
}

func (a *contractProviderApp) seedItem(t testing.TB) {
	t.Helper()
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, err := a.items.Save(context.Background(), &itemdomain.Item{
		ID:            pacttest.StockedItemID,
		Name:          pacttest.ExampleItemName(),
		Price:         10000,
		StockQuantity: 10,
	})
	require.NoError(t, err)
}
