package shopserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestItemAPICreateUpdateAndList(t *testing.T) {
	shop := newTestShop(t)

	rec := shop.do(t, http.MethodPost, "/api/v1/items", Item{Name: "JPA Book", Price: 20000, StockQuantity: 10, Categories: []string{"books"}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[Item](t, rec)
	require.NotZero(t, created.Id)
	require.Equal(t, []string{"books"}, created.Categories)

	rec = shop.do(t, http.MethodPut, "/api/v1/items/1", Item{Name: "JPA Book 2nd", Price: 25000, StockQuantity: 5})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[Item](t, rec)
	require.Equal(t, "JPA Book 2nd", updated.Name)
	require.Equal(t, 25000, updated.Price)
	require.Equal(t, 5, updated.StockQuantity)

	rec = shop.do(t, http.MethodGet, "/api/v1/items", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]Item](t, rec), 1)
}

func TestItemAPIErrors(t *testing.T) {
	shop := newTestShop(t)

	requireProblem(t, shop.do(t, http.MethodPost, "/api/v1/items", Item{Name: "book", Price: -1}), http.StatusBadRequest, "/problems/validation-error")
	requireProblem(t, shop.do(t, http.MethodGet, "/api/v1/items/7", nil), http.StatusNotFound, "/problems/not-found")
	requireProblem(t, shop.do(t, http.MethodPut, "/api/v1/items/7", Item{Name: "book"}), http.StatusNotFound, "/problems/not-found")
}
