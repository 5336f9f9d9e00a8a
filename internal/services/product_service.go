package services

import (
	"context"
	"log"

	"github.com/JJ00428/market-api/internal/apperr"
	"github.com/JJ00428/market-api/internal/domain"
	"github.com/JJ00428/market-api/internal/guard"
	"github.com/JJ00428/market-api/internal/repository"
	"golang.org/x/sync/errgroup"
)

type ProductService struct {
	products repository.ProductRepository
	users    repository.UserRepository
	cache    *ProductCache
}

func NewProductService(products repository.ProductRepository, users repository.UserRepository) *ProductService {
	return &ProductService{products: products, users: users}
}

func (s *ProductService) SetCache(cache *ProductCache) {
	s.cache = cache
}

// CreateProductInput carries the seller-supplied fields; the seller itself is
// always the authenticated principal, never client input.
type CreateProductInput struct {
	Name          string
	Description   string
	Price         float64
	PriceDiscount *float64
	Quantity      int64
	Category      domain.Category
	ImageCover    string
}

func validateProductInput(in CreateProductInput) error {
	if len(in.Name) < 5 || len(in.Name) > 30 {
		return apperr.Invalid("a product name must have between 5 and 30 characters")
	}
	if in.Description == "" {
		return apperr.Invalid("product must have a description")
	}
	if in.Price <= 0 {
		return apperr.Invalid("product must have a price")
	}
	if in.PriceDiscount != nil && *in.PriceDiscount >= in.Price {
		return apperr.Invalid("discount price must be below price")
	}
	if in.Quantity < 0 {
		return apperr.Invalid("product quantity cannot be negative")
	}
	if !in.Category.Valid() {
		return apperr.Invalid("product category must be one of: Electronics, Clothing, Home & Garden, Sports & Outdoors, Books, Toys, Other")
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, sellerID uint64, in CreateProductInput) (*domain.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:          in.Name,
		Slug:          domain.Slugify(in.Name),
		Description:   in.Description,
		Price:         in.Price,
		PriceDiscount: in.PriceDiscount,
		Quantity:      in.Quantity,
		SellerID:      sellerID,
		Category:      in.Category,
		ImageCover:    in.ImageCover,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, id uint64) (*domain.Product, error) {
	if cached := s.cache.Get(ctx, id); cached != nil {
		return cached, nil
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.NotFound("product does not exist")
	}

	s.cache.Set(ctx, product)
	return product, nil
}

func (s *ProductService) List(ctx context.Context, q repository.ListQuery) ([]domain.Product, error) {
	return s.products.List(ctx, q)
}

func (s *ProductService) Update(ctx context.Context, p guard.Principal, id uint64, in CreateProductInput) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.NotFound("product does not exist")
	}
	if err := guard.RequireOwnerOrAdmin(p, product.SellerID); err != nil {
		return nil, apperr.Forbidden("you are not the seller of this product, nor an Admin")
	}
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Slug = domain.Slugify(in.Name)
	product.Description = in.Description
	product.Price = in.Price
	product.PriceDiscount = in.PriceDiscount
	product.Quantity = in.Quantity
	product.Category = in.Category
	if in.ImageCover != "" {
		product.ImageCover = in.ImageCover
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, id)
	return product, nil
}

// Delete removes the product and every cart line referencing it.
func (s *ProductService) Delete(ctx context.Context, p guard.Principal, id uint64) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperr.NotFound("product does not exist")
	}
	if err := guard.RequireOwnerOrAdmin(p, product.SellerID); err != nil {
		return apperr.Forbidden("you are not the seller of this product, nor an Admin")
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.users.RemoveProductFromCarts(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)
	return nil
}

// WarmupCache pre-loads the given products into the cache concurrently.
func (s *ProductService) WarmupCache(ctx context.Context, ids []uint64) error {
	if s.cache == nil {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			product, err := s.products.FindByID(ctx, id)
			if err != nil {
				log.Printf("failed to warm up cache for product %d: %v", id, err)
				return nil
			}
			if product != nil {
				s.cache.Set(ctx, product)
			}
			return nil
		})
	}
	return g.Wait()
}
