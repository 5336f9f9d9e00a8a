package mysql

import (
	"context"
	"errors"

	"github.com/JJ00428/market-api/internal/apperr"
	"github.com/JJ00428/market-api/internal/domain"
	"github.com/JJ00428/market-api/internal/repository"
	"gorm.io/gorm"
)

var productColumns = map[string]bool{
	"id": true, "name": true, "slug": true, "price": true, "price_discount": true,
	"quantity": true, "seller_id": true, "category": true, "ratings_average": true,
	"ratings_quantity": true, "created_at": true, "updated_at": true,
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return apperr.Wrap(apperr.KindInternal, "create product", err)
	}
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.KindInternal, "find product", err)
	}
	return &p, nil
}

func (r *productRepo) Update(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return apperr.Wrap(apperr.KindInternal, "update product", err)
	}
	return nil
}

func (r *productRepo) UpdateQuantity(ctx context.Context, id uint64, quantity int64) error {
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "update product quantity", err)
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id uint64) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Product{}, id).Error; err != nil {
		return apperr.Wrap(apperr.KindInternal, "delete product", err)
	}
	return nil
}

func (r *productRepo) List(ctx context.Context, q repository.ListQuery) ([]domain.Product, error) {
	var out []domain.Product
	db := applyListQuery(r.db.WithContext(ctx).Model(&domain.Product{}), q, productColumns)
	if err := db.Find(&out).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list products", err)
	}
	return out, nil
}
