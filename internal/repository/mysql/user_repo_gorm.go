package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/JJ00428/market-api/internal/apperr"
	"github.com/JJ00428/market-api/internal/domain"
	"github.com/JJ00428/market-api/internal/repository"
	"gorm.io/gorm"
)

var userColumns = map[string]bool{
	"id": true, "username": true, "email": true, "role": true, "active": true,
	"address": true, "created_at": true, "updated_at": true,
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepo{db: db}
}

// visible scopes lookups to accounts that should be found: anyone active,
// plus inactive Sellers still waiting for Admin approval. A deactivated
// Consumer or Admin is treated as gone.
func visible(db *gorm.DB) *gorm.DB {
	return db.Where("active = ? OR role = ?", true, domain.RoleSeller)
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("an account with this email already exists")
		}
		return apperr.Wrap(apperr.KindInternal, "create user", err)
	}
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	var u domain.User
	err := visible(r.db.WithContext(ctx)).First(&u, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.KindInternal, "find user", err)
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := visible(r.db.WithContext(ctx)).Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.KindInternal, "find user by email", err)
	}
	return &u, nil
}

func (r *userRepo) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	var u domain.User
	err := visible(r.db.WithContext(ctx)).
		Where("password_reset_token = ? AND password_reset_expires > ?", tokenHash, now).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.KindInternal, "find user by reset token", err)
	}
	return &u, nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: false}).
		Omit("Cart", "Favorites").
		Save(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("an account with this email already exists")
		}
		return apperr.Wrap(apperr.KindInternal, "update user", err)
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id uint64) error {
	if err := r.db.WithContext(ctx).Delete(&domain.User{}, id).Error; err != nil {
		return apperr.Wrap(apperr.KindInternal, "delete user", err)
	}
	return nil
}

func (r *userRepo) List(ctx context.Context, q repository.ListQuery) ([]domain.User, error) {
	var out []domain.User
	db := applyListQuery(visible(r.db.WithContext(ctx).Model(&domain.User{})), q, userColumns)
	if err := db.Find(&out).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list users", err)
	}
	return out, nil
}

func (r *userRepo) CartItems(ctx context.Context, userID uint64) ([]domain.CartItem, error) {
	var items []domain.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("added_at").
		Find(&items).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "load cart", err)
	}
	return items, nil
}

func (r *userRepo) UpsertCartLine(ctx context.Context, item *domain.CartItem) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.CartItem
		err := tx.Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
			First(&existing).Error
		switch {
		case err == nil:
			// merge quantities, keep the original snapshot
			return tx.Model(&existing).
				Update("quantity", existing.Quantity+item.Quantity).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(item).Error
		default:
			return err
		}
	})
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "save cart line", err)
	}
	return nil
}

func (r *userRepo) ClearCart(ctx context.Context, userID uint64) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.CartItem{}).Error
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "clear cart", err)
	}
	return nil
}

func (r *userRepo) RemoveProductFromCarts(ctx context.Context, productID uint64) error {
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&domain.CartItem{}).Error
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "remove product from carts", err)
	}
	return nil
}

func (r *userRepo) Favorites(ctx context.Context, userID uint64) ([]domain.Favorite, error) {
	var favs []domain.Favorite
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Find(&favs).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "load favorites", err)
	}
	return favs, nil
}

func (r *userRepo) HasFavorite(ctx context.Context, userID, productID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, apperr.Wrap(apperr.KindInternal, "check favorite", err)
	}
	return count > 0, nil
}

func (r *userRepo) AddFavorite(ctx context.Context, userID, productID uint64) error {
	fav := domain.Favorite{UserID: userID, ProductID: productID}
	if err := r.db.WithContext(ctx).Create(&fav).Error; err != nil {
		return apperr.Wrap(apperr.KindInternal, "add favorite", err)
	}
	return nil
}

func (r *userRepo) RemoveFavorite(ctx context.Context, userID, productID uint64) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.Favorite{}).Error
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "remove favorite", err)
	}
	return nil
}
