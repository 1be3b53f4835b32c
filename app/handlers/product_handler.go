package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type ProductHandler struct {
	render     *render.Render
	productSvc *services.ProductService
	reviewSvc  *services.ReviewService
}

func NewProductHandler(r *render.Render, productSvc *services.ProductService, reviewSvc *services.ReviewService) *ProductHandler {
	return &ProductHandler{render: r, productSvc: productSvc, reviewSvc: reviewSvc}
}

// parseProductFilter reads the catalog query string. Unparseable numbers are
// ignored rather than rejected.
func parseProductFilter(r *http.Request) repositories.ProductFilter {
	q := r.URL.Query()

	filter := repositories.ProductFilter{
		CategorySlug: q.Get("category"),
		Search:       strings.TrimSpace(q.Get("search")),
		Brand:        q.Get("brand"),
		Sort:         q.Get("sort"),
	}
	if price, err := decimal.NewFromString(q.Get("minPrice")); err == nil {
		filter.MinPrice = decimal.NewNullDecimal(price)
	}
	if price, err := decimal.NewFromString(q.Get("maxPrice")); err == nil {
		filter.MaxPrice = decimal.NewNullDecimal(price)
	}
	if rating, err := strconv.ParseFloat(q.Get("minRating"), 64); err == nil {
		filter.MinRating = rating
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.PerPage, _ = strconv.Atoi(q.Get("limit"))
	if filter.PerPage > 100 {
		filter.PerPage = 100
	}
	return filter
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.productSvc.ListProducts(r.Context(), parseProductFilter(r))
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{
		"products": page.Products,
		"pagination": map[string]interface{}{
			"total":      page.Total,
			"page":       page.Page,
			"perPage":    page.PerPage,
			"totalPages": page.TotalPages,
		},
	})
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.productSvc.ListCategories(r.Context())
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{"categories": categories})
}

func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.productSvc.GetProductDetail(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{
		"product":         detail.Product,
		"stockStatus":     detail.StockStatus,
		"reviews":         detail.Reviews,
		"relatedProducts": detail.Related,
	})
}

func (h *ProductHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewSvc.ListForProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(h.render, w, err)
		return
	}
	helpers.WriteSuccess(h.render, w, http.StatusOK, map[string]interface{}{"reviews": reviews})
}
