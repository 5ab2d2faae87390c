package handler

import (
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// /products の公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 商品のルートを登録
func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.list)
	e.GET("/products/facets", h.facets)
	e.GET("/products/home", h.home)
	e.GET("/products/:id", h.detail)
}

// 解釈できないクエリは無視する（エラーにしない）
func (h *ProductHandler) list(c echo.Context) error {
	params := c.QueryParams()

	out, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
		Q:         c.QueryParam("q"),
		Genres:    params["genre"],
		Platforms: params["platform"],
		MinPrice:  queryDecimal(c, "min_price"),
		MaxPrice:  queryDecimal(c, "max_price"),
		Sort:      c.QueryParam("sort"),
		Category:  c.QueryParam("category"),
		OnSale:    queryBool(c, "sale"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	p, err := h.uc.GetProductDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) facets(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.Facets(c.Request().Context()))
}

func (h *ProductHandler) home(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.Home(c.Request().Context()))
}

func queryInt(c echo.Context, key string) int {
	v, err := strconv.Atoi(c.QueryParam(key))
	if err != nil {
		return 0
	}
	return v
}

func queryDecimal(c echo.Context, key string) *decimal.Decimal {
	v := strings.TrimSpace(c.QueryParam(key))
	if v == "" {
		return nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil
	}
	return &d
}

func queryBool(c echo.Context, key string) bool {
	switch strings.ToLower(c.QueryParam(key)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
