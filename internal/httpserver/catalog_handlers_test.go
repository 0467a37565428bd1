package httpserver_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uom-eshop.org/storefront/internal/api"
)

func TestMarketplaceForwardsFilters(t *testing.T) {
	backend := newFakeBackend()
	backend.handle("/api/products", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "beans", q.Get("title"))
		assert.Equal(t, "Aroma", q.Get("brand"))
		assert.Equal(t, "5", q.Get("minPrice"))
		assert.Equal(t, "20", q.Get("maxPrice"))
		writeBackendJSON(w, http.StatusOK, []api.Product{
			{ID: 1, Title: "Espresso Beans", Brand: "Aroma", Price: 12.5, StockQuantity: 4},
		})
	})

	e := newTestEnv(t, backend)
	resp := e.get(t, "/marketplace?q=beans&brand=Aroma&min=5&max=20")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc := parseDoc(t, resp)
	assert.Equal(t, 1, doc.Find(".product-card").Length())
	// The submitted filter values are echoed back into the form.
	val, _ := doc.Find(".filter-bar input[name='q']").Attr("value")
	assert.Equal(t, "beans", val)
}

func TestMarketplaceBackendFailureRendersErrorPage(t *testing.T) {
	backend := newFakeBackend()
	backend.handle("/api/products", func(w http.ResponseWriter, r *http.Request) {
		writeBackendError(w, http.StatusInternalServerError, "", "database unavailable")
	})

	e := newTestEnv(t, backend)
	resp := e.get(t, "/marketplace")
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	doc := parseDoc(t, resp)
	assert.Contains(t, doc.Find(".error-banner").Text(), "database unavailable")
}

func TestStoreDetailShowsStoreProducts(t *testing.T) {
	backend := newFakeBackend()
	backend.handle("/api/stores/3", func(w http.ResponseWriter, r *http.Request) {
		writeBackendJSON(w, http.StatusOK, api.Store{ID: 3, Name: "Corner Cafe", Owner: "Maria", ProductCount: 2})
	})
	backend.handle("/api/products", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("storeId"))
		writeBackendJSON(w, http.StatusOK, []api.Product{
			{ID: 1, Title: "Espresso Beans", Price: 12.5, StockQuantity: 4, StoreID: 3, StoreName: "Corner Cafe"},
			{ID: 2, Title: "Ceramic Mug", Price: 9, StockQuantity: 2, StoreID: 3, StoreName: "Corner Cafe"},
		})
	})

	e := newTestEnv(t, backend)
	resp := e.get(t, "/stores/3")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc := parseDoc(t, resp)
	assert.Contains(t, doc.Find("h1").Text(), "Corner Cafe")
	assert.Equal(t, 2, doc.Find(".product-card").Length())
}

func TestStoreDetailEmptyBackendReplyRendersErrorPage(t *testing.T) {
	backend := newFakeBackend()
	backend.handle("/api/stores/3", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	e := newTestEnv(t, backend)
	resp := e.get(t, "/stores/3")
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	doc := parseDoc(t, resp)
	assert.Contains(t, doc.Find(".error-banner").Text(), "Something went wrong")
}

func TestStoreDetailUnknownStoreIs404(t *testing.T) {
	e := newTestEnv(t, newFakeBackend())

	resp := e.get(t, "/stores/99")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	doc := parseDoc(t, resp)
	assert.Contains(t, doc.Find("h1").Text(), "Page not found")

	resp = e.get(t, "/stores/not-a-number")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
