package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"github.com/Rakhulsr/go-marketplace/app/utils/calc"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	relatedProductsLimit = 4
	topProductsLimit     = 5
)

type ProductService struct {
	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	reviewRepo   repositories.ReviewRepository
	userRepo     repositories.UserRepositoryImpl
}

func NewProductService(productRepo repositories.ProductRepositoryImpl, categoryRepo repositories.CategoryRepositoryImpl, reviewRepo repositories.ReviewRepository, userRepo repositories.UserRepositoryImpl) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		reviewRepo:   reviewRepo,
		userRepo:     userRepo,
	}
}

type ProductPage struct {
	Products   []models.Product `json:"products"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"perPage"`
	TotalPages int              `json:"totalPages"`
}

type ProductDetail struct {
	Product     *models.Product  `json:"product"`
	StockStatus string           `json:"stockStatus"`
	Reviews     []models.Review  `json:"reviews"`
	Related     []models.Product `json:"related"`
}

type SellerReport struct {
	TotalProducts    int              `json:"totalProducts"`
	TotalSales       int              `json:"totalSales"`
	TotalRevenue     decimal.Decimal  `json:"totalRevenue"`
	TopProducts      []models.Product `json:"topProducts"`
	LowStockProducts []models.Product `json:"lowStockProducts"`
}

type ProductInput struct {
	Name              string                `json:"name" validate:"required,max=255"`
	Slug              string                `json:"slug" validate:"max=255"`
	Sku               string                `json:"sku" validate:"max=100"`
	Description       string                `json:"description" validate:"required"`
	ShortDescription  string                `json:"shortDescription" validate:"max=500"`
	Brand             string                `json:"brand" validate:"max=100"`
	CategoryID        string                `json:"categoryId"`
	Tags              []string              `json:"tags"`
	Images            []models.ProductImage `json:"images" validate:"min=1,max=6,dive"`
	Price             decimal.Decimal       `json:"price"`
	SalePrice         decimal.NullDecimal   `json:"salePrice"`
	Stock             int                   `json:"stock" validate:"gte=0"`
	LowStockThreshold *int                  `json:"lowStockThreshold" validate:"omitempty,gte=0"`
	IsActive          *bool                 `json:"isActive"`
	IsFeatured        bool                  `json:"isFeatured"`
}

func (s *ProductService) ListProducts(ctx context.Context, filter repositories.ProductFilter) (*ProductPage, error) {
	if filter.PerPage <= 0 {
		filter.PerPage = repositories.DefaultPerPage
	}
	if filter.Page < 1 {
		filter.Page = 1
	}

	if filter.CategorySlug != "" {
		category, err := s.categoryRepo.GetBySlug(ctx, filter.CategorySlug)
		if err != nil {
			return nil, persistence("load category", err)
		}
		if category == nil {
			return nil, notFound("Category %s not found", filter.CategorySlug)
		}
	}

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		log.Printf("ProductService.ListProducts: %v", err)
		return nil, persistence("list products", err)
	}
	if products == nil {
		products = []models.Product{}
	}

	totalPages := int((total + int64(filter.PerPage) - 1) / int64(filter.PerPage))
	return &ProductPage{
		Products:   products,
		Total:      total,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
		TotalPages: totalPages,
	}, nil
}

func (s *ProductService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, persistence("list categories", err)
	}
	return categories, nil
}

// GetProductDetail counts a view on every call.
func (s *ProductService) GetProductDetail(ctx context.Context, productSlug string) (*ProductDetail, error) {
	product, err := s.productRepo.GetBySlug(ctx, productSlug)
	if err != nil {
		log.Printf("ProductService.GetProductDetail: slug %s: %v", productSlug, err)
		return nil, persistence("load product", err)
	}
	if product == nil {
		return nil, notFound("Product not found")
	}

	if err := s.productRepo.IncrementViews(ctx, product.ID); err != nil {
		log.Printf("ProductService.GetProductDetail: failed to count view for %s: %v", product.ID, err)
	} else {
		product.Views++
	}

	reviews, err := s.reviewRepo.GetByProductID(ctx, product.ID)
	if err != nil {
		return nil, persistence("load reviews", err)
	}
	related, err := s.productRepo.GetRelated(ctx, product, relatedProductsLimit)
	if err != nil {
		return nil, persistence("load related products", err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	if related == nil {
		related = []models.Product{}
	}

	return &ProductDetail{
		Product:     product,
		StockStatus: calc.StockStatus(product),
		Reviews:     reviews,
		Related:     related,
	}, nil
}

func (s *ProductService) ListSellerProducts(ctx context.Context, sellerID string) ([]models.Product, error) {
	products, err := s.productRepo.GetBySeller(ctx, sellerID)
	if err != nil {
		return nil, persistence("list seller products", err)
	}
	return products, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, sellerID string, input ProductInput) (*models.Product, error) {
	seller, err := s.userRepo.FindByID(ctx, nil, sellerID)
	if err != nil {
		return nil, persistence("load seller", err)
	}
	if seller == nil {
		return nil, notFound("Seller not found")
	}

	product := &models.Product{
		SellerID:          seller.ID,
		SellerName:        seller.DisplaySellerName(),
		LowStockThreshold: models.DefaultLowStockThreshold,
		IsActive:          true,
	}
	if err := s.applyInput(ctx, product, input); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalid("slug", "Product with this slug or SKU already exists")
		}
		log.Printf("ProductService.CreateProduct: seller %s: %v", sellerID, err)
		return nil, persistence("create product", err)
	}

	log.Printf("ProductService.CreateProduct: product %s (%s) created by seller %s", product.ID, product.Slug, sellerID)
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, sellerID, productID string, input ProductInput) (*models.Product, error) {
	product, err := s.ownedProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}

	if err := s.applyInput(ctx, product, input); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalid("slug", "Product with this slug or SKU already exists")
		}
		log.Printf("ProductService.UpdateProduct: product %s: %v", productID, err)
		return nil, persistence("update product", err)
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, sellerID, productID string) error {
	if _, err := s.ownedProduct(ctx, sellerID, productID); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		log.Printf("ProductService.DeleteProduct: product %s: %v", productID, err)
		return persistence("delete product", err)
	}
	return nil
}

// SellerReport summarizes a seller's catalog. Revenue is each product's
// current effective price times its sales count.
func (s *ProductService) SellerReport(ctx context.Context, sellerID string) (*SellerReport, error) {
	products, err := s.productRepo.GetBySeller(ctx, sellerID)
	if err != nil {
		return nil, persistence("load seller products", err)
	}

	report := &SellerReport{
		TotalProducts: len(products),
		TotalRevenue:  decimal.Zero,
	}
	for i := range products {
		report.TotalSales += products[i].SalesCount
		report.TotalRevenue = report.TotalRevenue.Add(calc.LineTotal(calc.ProductEffectivePrice(&products[i]), products[i].SalesCount))
	}
	report.TotalRevenue = report.TotalRevenue.Round(2)

	if report.TopProducts, err = s.productRepo.GetTopSellingBySeller(ctx, sellerID, topProductsLimit); err != nil {
		return nil, persistence("load top products", err)
	}
	if report.LowStockProducts, err = s.productRepo.GetLowStockBySeller(ctx, sellerID); err != nil {
		return nil, persistence("load low stock products", err)
	}
	return report, nil
}

func (s *ProductService) ownedProduct(ctx context.Context, sellerID, productID string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, nil, productID)
	if err != nil {
		return nil, persistence("load product", err)
	}
	if product == nil || product.SellerID != sellerID {
		return nil, notFound("Product not found")
	}
	return product, nil
}

func (s *ProductService) applyInput(ctx context.Context, product *models.Product, input ProductInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if err := validateStruct(input); err != nil {
		return err
	}
	if !input.Price.IsPositive() {
		return invalid("price", "price must be greater than 0")
	}
	if input.SalePrice.Valid && input.SalePrice.Decimal.IsNegative() {
		return invalid("salePrice", "salePrice must not be negative")
	}

	productSlug := slug.Make(input.Slug)
	if productSlug == "" {
		productSlug = slug.Make(input.Name)
	}
	if productSlug == "" {
		return invalid("slug", "slug could not be derived from the product name")
	}
	taken, err := s.productRepo.SlugExists(ctx, productSlug, product.ID)
	if err != nil {
		return persistence("check product slug", err)
	}
	if taken {
		return invalid("slug", "Product with this slug already exists")
	}

	sku := strings.TrimSpace(input.Sku)
	if sku == "" && product.Sku == "" {
		sku = GenerateSKU(time.Now())
	} else if sku == "" {
		sku = product.Sku
	}
	taken, err = s.productRepo.SkuExists(ctx, sku, product.ID)
	if err != nil {
		return persistence("check product sku", err)
	}
	if taken {
		return invalid("sku", "Product with this SKU already exists")
	}

	var categoryID *string
	if id := strings.TrimSpace(input.CategoryID); id != "" {
		category, err := s.categoryRepo.GetByID(ctx, id)
		if err != nil {
			return persistence("load category", err)
		}
		if category == nil {
			return invalid("categoryId", "category does not exist")
		}
		categoryID = &category.ID
	}

	product.Name = input.Name
	product.Slug = productSlug
	product.Sku = sku
	product.Description = input.Description
	product.ShortDescription = strings.TrimSpace(input.ShortDescription)
	product.Brand = strings.TrimSpace(input.Brand)
	product.CategoryID = categoryID
	product.Tags = NormalizeTags(input.Tags)
	product.Images = input.Images
	product.Price = input.Price.Round(2)
	product.SalePrice = input.SalePrice
	if product.SalePrice.Valid {
		product.SalePrice.Decimal = product.SalePrice.Decimal.Round(2)
	}
	product.Stock = input.Stock
	if input.LowStockThreshold != nil {
		product.LowStockThreshold = *input.LowStockThreshold
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	product.IsFeatured = input.IsFeatured
	return nil
}

// NormalizeTags lower-cases and trims tags, dropping blanks and repeats.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// GenerateSKU builds "SKU-<unix millis>-<random>" for products saved without
// one.
func GenerateSKU(now time.Time) string {
	random := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("SKU-%d-%s", now.UnixMilli(), random)
}
