package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/supermarket/pkg/client"
	productApi "github.com/ghuser/supermarket/services/product/application/api"
	appsvcs "github.com/ghuser/supermarket/services/product/application/services"
	"github.com/ghuser/supermarket/services/product/infrastructure/persistence/memory"
	"github.com/ghuser/supermarket/services/product/infrastructure/supplier/stubsupplier"
)

func newAPI(t *testing.T) string {
	t.Helper()
	svc, err := appsvcs.NewProductService(memory.NewProductRepository(), stubsupplier.New(500), appsvcs.Policy{MaxOrderQuantity: 10000})
	require.NoError(t, err)
	r := chi.NewRouter()
	productApi.ProductRoutes(r, &appsvcs.Services{Product: svc}, false)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCreateGetOrder(t *testing.T) {
	addr := newAPI(t)

	out, err := run(t, "--addr", addr, "create",
		"--id", "1", "--category", "food", "--name", "Oranges",
		"--manufacturer", "Jaffa", "--email", "jaffa@gmail.com", "--quantity", "1000")
	require.NoError(t, err, out)

	out, err = run(t, "--addr", addr, "get", "1")
	require.NoError(t, err, out)
	var p client.Product
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "Oranges", *p.Name)
	assert.Equal(t, uint(1000), p.Quantity)

	out, err = run(t, "--addr", addr, "order", "1", "-q", "1200")
	require.NoError(t, err, out)
	var receipt client.OrderReceipt
	require.NoError(t, json.Unmarshal([]byte(out), &receipt))
	assert.Equal(t, uint(200), receipt.Restocked)
	assert.Equal(t, uint(0), receipt.Remaining)
}

func TestAddrFromEnv(t *testing.T) {
	t.Setenv("SUPERMARKET_ADDR", newAPI(t))

	_, err := run(t, "create", "--id", "2", "--category", "household", "--name", "Detergent", "--manufacturer", "Acme")
	require.NoError(t, err)

	out, err := run(t, "get", "2")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Detergent"`)
}

func TestCreateHelpListsCategories(t *testing.T) {
	out, err := run(t, "create", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "food|beverages|household|electronics")
	assert.NotContains(t, out, "clothes")
}

func TestCommandErrors(t *testing.T) {
	addr := newAPI(t)
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"non integer id", []string{"--addr", addr, "get", "abc"}, `product id must be an integer, got "abc"`},
		{"unknown product", []string{"--addr", addr, "get", "9"}, "product with id 9 was not found"},
		{"missing name", []string{"--addr", addr, "create", "--id", "3", "--category", "food", "--manufacturer", "Jaffa"}, "product name is invalid"},
		{"order without quantity", []string{"--addr", addr, "order", "1"}, `required flag(s) "quantity" not set`},
		{"empty address", []string{"--addr", "", "get", "1"}, "api address is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
