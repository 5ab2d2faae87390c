package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/handler"
	infrarepo "storefront/internal/infra/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	store, err := catalog.Load("")
	require.NoError(t, err)

	persistence := cart.NewPersistence(infrarepo.NewKVMemoryRepository(), "cart", zap.NewNop())
	machine := cart.NewMachine(context.Background(), persistence, zap.NewNop())

	e := echo.New()
	handler.NewProductHandler(usecase.NewProductUsecase(store)).RegisterRoutes(e)
	handler.NewCartHandler(usecase.NewCartUsecase(machine, store, decimal.RequireFromString("0.10"))).RegisterRoutes(e)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body=%s", rec.Body.String())
	return v
}
