package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/justishika/DevSecOps-SweetSpot/internal/domain/model"
	repo "github.com/justishika/DevSecOps-SweetSpot/internal/repository"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 公開商品（is_active=true）のみを、検索/カテゴリ/タグ/ソート付きで返す。
func (r *ProductGormRepository) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	tx := r.db.WithContext(ctx).Model(&model.Product{}).Where("is_active = ?", true)

	if q.CategoryID != nil {
		tx = tx.Where("category_id = ?", *q.CategoryID)
	}

	// 名前・説明・タグの部分一致（大文字小文字は区別しない）
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + s + "%"
		tx = tx.Where(
			"name ILIKE ? OR description ILIKE ? OR array_to_string(tags, ',') ILIKE ?",
			like, like, like,
		)
	}

	//指定タグのいずれかを含む
	if len(q.Dietary) > 0 {
		tx = tx.Where("dietary && ?", pq.StringArray(q.Dietary))
	}
	if len(q.Tags) > 0 {
		tx = tx.Where("tags && ?", pq.StringArray(q.Tags))
	}

	switch q.Sort {
	case "price-asc":
		tx = tx.Order("price asc").Order("id asc")
	case "price-desc":
		tx = tx.Order("price desc").Order("id desc")
	case "oldest":
		tx = tx.Order("created_at asc").Order("id asc")
	default: // newest
		tx = tx.Order("created_at desc").Order("id desc")
	}

	var products []model.Product
	if err := tx.Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// ベンダー自身の商品一覧。is_activeに関わらず返し、フィルタで絞る。
func (r *ProductGormRepository) ListByVendor(ctx context.Context, q repo.VendorProductQuery) ([]model.Product, error) {
	tx := r.db.WithContext(ctx).Model(&model.Product{}).Where("vendor_id = ?", q.VendorID)

	switch q.Status {
	case "active":
		tx = tx.Where("is_active = ?", true)
	case "inactive":
		tx = tx.Where("is_active = ?", false)
	}

	switch q.Availability {
	case "in":
		tx = tx.Where("stock > 0")
	case "out":
		tx = tx.Where("stock = 0")
	}

	if q.CategoryID != nil {
		tx = tx.Where("category_id = ?", *q.CategoryID)
	}

	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}

	switch q.Sort {
	case "price-asc":
		tx = tx.Order("price asc").Order("id asc")
	case "price-desc":
		tx = tx.Order("price desc").Order("id desc")
	case "oldest":
		tx = tx.Order("updated_at asc").Order("id asc")
	default: // newest
		tx = tx.Order("updated_at desc").Order("id desc")
	}

	var products []model.Product
	if err := tx.Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}
	var products []model.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":              p.Name,
		"description":       p.Description,
		"price":             p.Price,
		"stock":             p.Stock,
		"image_url":         p.ImageURL,
		"dietary":           p.Dietary,
		"tags":              p.Tags,
		"prep_time_minutes": p.PrepTimeMinutes,
		"category_id":       p.CategoryID,
		"is_active":         p.IsActive,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) DeleteByVendor(ctx context.Context, vendorID int64) error {
	return r.db.WithContext(ctx).Where("vendor_id = ?", vendorID).Delete(&model.Product{}).Error
}

// 在庫が足りるときだけ減らす
func (r *ProductGormRepository) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

func (r *ProductGormRepository) CountActiveByVendor(ctx context.Context, vendorID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("vendor_id = ? AND is_active = ?", vendorID, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
