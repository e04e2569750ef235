package repository

import (
	"context"

	"gorm.io/gorm"

	"glowskin_dev_v1/internal/model"
)

// ==================== 接口定义 ====================

// ProductRepository 商品仓储接口
type ProductRepository interface {
	// 基础 CRUD
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	GetBySKU(ctx context.Context, sku string) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int64, error)

	// 库存：带条件的原子扣减，扣减失败返回 0 行
	DecrementStock(ctx context.Context, id int64, quantity int) (int64, error)
	IncrementStock(ctx context.Context, id int64, quantity int) error

	// 评分聚合回写
	RefreshRatingStats(ctx context.Context, productID int64) error

	// 图片操作
	CreateImage(ctx context.Context, image *model.ProductImage) error
	GetImageByID(ctx context.Context, id int64) (*model.ProductImage, error)
	ListImages(ctx context.Context, productID int64) ([]model.ProductImage, error)
	UpdateImage(ctx context.Context, image *model.ProductImage) error
	DeleteImage(ctx context.Context, id int64) error

	// 事务
	WithTx(tx *gorm.DB) ProductRepository
	Transaction(ctx context.Context, fn func(txRepo ProductRepository) error) error
}

// ==================== 过滤条件 ====================

// productSortColumns 排序字段白名单，防止任意列注入
var productSortColumns = map[string]string{
	"name":       "name",
	"price":      "price_amount",
	"rating":     "rating",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// ProductFilter 商品过滤条件
type ProductFilter struct {
	Search       string // name/description/sku 模糊匹配
	BrandID      *int64
	CategoryID   *int64
	IsFeatured   *bool
	IsNew        *bool
	IsBestSeller *bool
	IsActive     *bool
	SkinType     string
	Sort         string // 白名单之外回落 created_at
	Order        string // asc / desc
	Limit        int
	Offset       int
}

// ==================== 仓储实现 ====================

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Category").
		Preload("Images").
		Where("slug = ?", slug).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *productRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

func (r *productRepo) applyFilter(ctx context.Context, filter ProductFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"name LIKE ? OR description LIKE ? OR short_desc LIKE ? OR sku LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if filter.BrandID != nil {
		query = query.Where("brand_id = ?", *filter.BrandID)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.IsFeatured != nil {
		query = query.Where("is_featured = ?", *filter.IsFeatured)
	}
	if filter.IsNew != nil {
		query = query.Where("is_new = ?", *filter.IsNew)
	}
	if filter.IsBestSeller != nil {
		query = query.Where("is_best_seller = ?", *filter.IsBestSeller)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.SkinType != "" {
		query = query.Where("? = ANY(skin_types)", filter.SkinType)
	}
	return query
}

func (r *productRepo) List(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	var products []model.Product

	column, ok := productSortColumns[filter.Sort]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if filter.Order == "asc" {
		direction = "ASC"
	}

	err := r.applyFilter(ctx, filter).
		Preload("Brand").
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order(column + " " + direction).
		Limit(ClampLimit(filter.Limit)).
		Offset(filter.Offset).
		Find(&products).Error
	return products, err
}

func (r *productRepo) Count(ctx context.Context, filter ProductFilter) (int64, error) {
	var total int64
	err := r.applyFilter(ctx, filter).Count(&total).Error
	return total, err
}

func (r *productRepo) DecrementStock(ctx context.Context, id int64, quantity int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND stock_quantity >= ?", id, quantity).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	return result.RowsAffected, result.Error
}

func (r *productRepo) IncrementStock(ctx context.Context, id int64, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", quantity)).Error
}

func (r *productRepo) RefreshRatingStats(ctx context.Context, productID int64) error {
	type stats struct {
		Avg   float64
		Count int64
	}
	var s stats
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("product_id = ?", productID).
		Scan(&s).Error
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"rating":       s.Avg,
			"review_count": s.Count,
		}).Error
}

func (r *productRepo) CreateImage(ctx context.Context, image *model.ProductImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *productRepo) GetImageByID(ctx context.Context, id int64) (*model.ProductImage, error) {
	var image model.ProductImage
	if err := r.db.WithContext(ctx).First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *productRepo) ListImages(ctx context.Context, productID int64) ([]model.ProductImage, error) {
	var images []model.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("sort_order ASC").
		Find(&images).Error
	return images, err
}

func (r *productRepo) UpdateImage(ctx context.Context, image *model.ProductImage) error {
	return r.db.WithContext(ctx).Save(image).Error
}

func (r *productRepo) DeleteImage(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.ProductImage{}, id).Error
}

func (r *productRepo) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepo{db: tx}
}

func (r *productRepo) Transaction(ctx context.Context, fn func(txRepo ProductRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
