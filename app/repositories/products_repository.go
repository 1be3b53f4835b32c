package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortRating    = "rating"
	SortPopular   = "popular"

	DefaultPerPage = 12
)

// effectivePriceExpr mirrors calc.EffectivePrice in SQL so filters and sorting
// see the price a buyer would pay.
const effectivePriceExpr = "CASE WHEN products.sale_price IS NOT NULL AND products.sale_price < products.price THEN products.sale_price ELSE products.price END"

type ProductFilter struct {
	CategorySlug string
	Search       string
	Brand        string
	MinPrice     decimal.NullDecimal
	MaxPrice     decimal.NullDecimal
	MinRating    float64
	Sort         string
	Page         int
	PerPage      int
}

func (f ProductFilter) limitOffset() (int, int) {
	perPage := f.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	return perPage, (page - 1) * perPage
}

type ProductRepositoryImpl interface {
	List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	GetByID(ctx context.Context, db *gorm.DB, id string) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetBySeller(ctx context.Context, sellerID string) ([]models.Product, error)
	GetRelated(ctx context.Context, product *models.Product, limit int) ([]models.Product, error)
	GetLowStockBySeller(ctx context.Context, sellerID string) ([]models.Product, error)
	GetTopSellingBySeller(ctx context.Context, sellerID string, limit int) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	SkuExists(ctx context.Context, sku, excludeID string) (bool, error)
	DecrementStock(ctx context.Context, db *gorm.DB, productID string, qty int) (bool, error)
	RestoreStock(ctx context.Context, db *gorm.DB, productID string, qty int) error
	IncrementViews(ctx context.Context, id string) error
	UpdateRating(ctx context.Context, db *gorm.DB, productID string, average float64, count int) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func catalogScope(filter ProductFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("products.is_active = ?", true)

		if filter.CategorySlug != "" {
			db = db.Joins("JOIN categories ON categories.id = products.category_id").
				Where("categories.slug = ?", filter.CategorySlug)
		}

		if keyword := strings.TrimSpace(filter.Search); keyword != "" {
			like := "%" + strings.ToLower(keyword) + "%"
			db = db.Where(
				"LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ? OR LOWER(products.brand) LIKE ? OR LOWER(products.tags) LIKE ?",
				like, like, like, like,
			)
		}

		if filter.Brand != "" {
			db = db.Where("products.brand = ?", filter.Brand)
		}
		if filter.MinPrice.Valid {
			db = db.Where(effectivePriceExpr+" >= CAST(? AS DECIMAL(16,2))", filter.MinPrice.Decimal)
		}
		if filter.MaxPrice.Valid {
			db = db.Where(effectivePriceExpr+" <= CAST(? AS DECIMAL(16,2))", filter.MaxPrice.Decimal)
		}
		if filter.MinRating > 0 {
			db = db.Where("products.average_rating >= ?", filter.MinRating)
		}
		return db
	}
}

func catalogOrder(sort string) string {
	switch sort {
	case SortPriceAsc:
		return effectivePriceExpr + " ASC"
	case SortPriceDesc:
		return effectivePriceExpr + " DESC"
	case SortRating:
		return "products.average_rating DESC"
	case SortPopular:
		return "products.sales_count DESC"
	default:
		return "products.created_at DESC"
	}
}

func (p *productRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	if err := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Scopes(catalogScope(filter)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := filter.limitOffset()
	err := p.db.WithContext(ctx).
		Select("products.*").
		Scopes(catalogScope(filter)).
		Preload("Category").
		Order(catalogOrder(filter.Sort)).
		Order("products.id ASC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error

	return products, total, err
}

func (p *productRepository) GetByID(ctx context.Context, db *gorm.DB, id string) (*models.Product, error) {
	var product models.Product
	err := conn(p.db, db).WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Preload("Category").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetBySeller(ctx context.Context, sellerID string) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Preload("Category").
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

// GetRelated returns other active products from the same seller or sharing a
// tag, best sellers first.
func (p *productRepository) GetRelated(ctx context.Context, product *models.Product, limit int) ([]models.Product, error) {
	var products []models.Product

	match := p.db.Where("seller_id = ?", product.SellerID)
	for _, tag := range product.Tags {
		match = match.Or("LOWER(tags) LIKE ?", "%\""+strings.ToLower(tag)+"\"%")
	}

	err := p.db.WithContext(ctx).
		Where("id <> ? AND is_active = ?", product.ID, true).
		Where(match).
		Order("sales_count DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (p *productRepository) GetLowStockBySeller(ctx context.Context, sellerID string) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Where("seller_id = ? AND stock <= low_stock_threshold", sellerID).
		Order("stock ASC").
		Find(&products).Error
	return products, err
}

func (p *productRepository) GetTopSellingBySeller(ctx context.Context, sellerID string, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("sales_count DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Omit("Category").Create(product).Error
}

// Update writes the seller-editable fields. Counters owned by the order and
// review workflows are never overwritten from a stale copy.
func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).
		Model(product).
		Select(
			"category_id", "name", "slug", "sku", "description", "short_description", "brand",
			"tags", "images", "price", "sale_price", "stock", "low_stock_threshold",
			"is_active", "is_featured", "updated_at",
		).
		Updates(product).Error
}

func (p *productRepository) Delete(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

func (p *productRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	return p.exists(ctx, "slug", slug, excludeID)
}

func (p *productRepository) SkuExists(ctx context.Context, sku, excludeID string) (bool, error) {
	return p.exists(ctx, "sku", sku, excludeID)
}

func (p *productRepository) exists(ctx context.Context, column, value, excludeID string) (bool, error) {
	var count int64
	query := p.db.WithContext(ctx).Unscoped().Model(&models.Product{}).Where(column+" = ?", value)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DecrementStock debits stock and credits sales in a single conditional
// statement. It reports false when the row did not have qty units left.
func (p *productRepository) DecrementStock(ctx context.Context, db *gorm.DB, productID string, qty int) (bool, error) {
	result := conn(p.db, db).WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		Updates(map[string]interface{}{
			"stock":       gorm.Expr("stock - ?", qty),
			"sales_count": gorm.Expr("sales_count + ?", qty),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (p *productRepository) RestoreStock(ctx context.Context, db *gorm.DB, productID string, qty int) error {
	return conn(p.db, db).WithContext(ctx).
		Unscoped().
		Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"stock":       gorm.Expr("stock + ?", qty),
			"sales_count": gorm.Expr("CASE WHEN sales_count >= ? THEN sales_count - ? ELSE 0 END", qty, qty),
		}).Error
}

func (p *productRepository) IncrementViews(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (p *productRepository) UpdateRating(ctx context.Context, db *gorm.DB, productID string, average float64, count int) error {
	return conn(p.db, db).WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"average_rating": average,
			"rating_count":   count,
			"review_count":   count,
		}).Error
}
