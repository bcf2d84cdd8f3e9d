package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productApi "github.com/ghuser/supermarket/services/product/application/api"
	appsvcs "github.com/ghuser/supermarket/services/product/application/services"
	"github.com/ghuser/supermarket/services/product/infrastructure/persistence/memory"
	"github.com/ghuser/supermarket/services/product/infrastructure/supplier/stubsupplier"
)

func newServer(t *testing.T, available uint) *Client {
	t.Helper()
	svc, err := appsvcs.NewProductService(memory.NewProductRepository(), stubsupplier.New(available), appsvcs.Policy{MaxOrderQuantity: 10000})
	require.NoError(t, err)

	r := chi.NewRouter()
	productApi.ProductRoutes(r, &appsvcs.Services{Product: svc}, false)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return New(srv.URL+"/", 5*time.Second)
}

func ptr(s string) *string { return &s }

func oranges() Product {
	return Product{
		ProductID:     1,
		Category:      "food",
		Name:          ptr("Oranges"),
		Manufacturer:  ptr("Jaffa"),
		ImporterEmail: ptr("jaffa@gmail.com"),
		Quantity:      1000,
	}
}

func TestClient_CreateGetOrder(t *testing.T) {
	c := newServer(t, 100)
	ctx := context.Background()

	created, err := c.CreateProduct(ctx, oranges())
	require.NoError(t, err)
	assert.Equal(t, "Oranges", *created.Name)

	got, err := c.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1000), got.Quantity)
	require.NotNil(t, got.ImporterEmail)
	assert.Equal(t, "jaffa@gmail.com", *got.ImporterEmail)

	receipt, err := c.PlaceOrder(ctx, 1, 1100)
	require.NoError(t, err)
	assert.Equal(t, OrderReceipt{ProductID: 1, Ordered: 1100, Restocked: 100, Remaining: 0}, *receipt)
}

func TestClient_APIErrors(t *testing.T) {
	c := newServer(t, 0)
	ctx := context.Background()

	_, err := c.GetProduct(ctx, 42)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.Contains(t, err.Error(), "product with id 42 was not found")

	bad := oranges()
	bad.ImporterEmail = ptr("invalidemail")
	_, err = c.CreateProduct(ctx, bad)
	assert.True(t, IsStatus(err, http.StatusUnprocessableEntity))

	_, err = c.CreateProduct(ctx, oranges())
	require.NoError(t, err)
	_, err = c.PlaceOrder(ctx, 1, 1001)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "the product is out of stock", apiErr.Message)
}

func TestClient_PlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).GetProduct(context.Background(), 1)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).GetProduct(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, IsStatus(err, http.StatusNotFound))
}
