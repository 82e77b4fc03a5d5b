package products

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopyard/shopyard-backend/internal/reviews"
	"github.com/shopyard/shopyard-backend/pkg/db"
	"github.com/shopyard/shopyard-backend/pkg/db/models"
	pkgerrors "github.com/shopyard/shopyard-backend/pkg/errors"
	"github.com/shopyard/shopyard-backend/pkg/pagination"
	"github.com/shopyard/shopyard-backend/pkg/slugs"
)

const (
	productMissingMessage  = "Product does not exist!"
	categoryMissingMessage = "Category does not exist!"
	defaultStock           = 5
)

// catalogRepository resolves category slugs for product writes.
type catalogRepository interface {
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
}

// reviewReader supplies ratings and review listings for product payloads.
type reviewReader interface {
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
	Aggregate(ctx context.Context, productID uuid.UUID) (reviews.RatingSummary, error)
}

// Service exposes catalog reads and seller-side product management.
type Service interface {
	List(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	GetBySlug(ctx context.Context, slug string) (*ProductDetail, error)
	ListForSeller(ctx context.Context, sellerID uuid.UUID, page pagination.Params) (*ProductListResult, error)
	Create(ctx context.Context, sellerID uuid.UUID, req CreateProductRequest) (*ProductDetail, error)
	Update(ctx context.Context, sellerID uuid.UUID, slug string, req UpdateProductRequest) (*ProductDetail, error)
	Delete(ctx context.Context, sellerID uuid.UUID, slug string) error
}

// ServiceParams collects the dependencies needed to build the product service.
type ServiceParams struct {
	Repo       *Repository
	Categories catalogRepository
	Reviews    reviewReader
}

type service struct {
	repo       *Repository
	categories catalogRepository
	reviews    reviewReader
}

// NewService validates the params and builds the product service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	if params.Categories == nil {
		return nil, fmt.Errorf("category repository is required")
	}
	if params.Reviews == nil {
		return nil, fmt.Errorf("review reader is required")
	}
	return &service{
		repo:       params.Repo,
		categories: params.Categories,
		reviews:    params.Reviews,
	}, nil
}

func (s *service) List(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	if _, err := pagination.ParseCursor(input.Pagination.Cursor); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid pagination cursor")
	}

	result, err := s.repo.ListSummaries(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return result, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*ProductDetail, error) {
	product, err := s.repo.FindLiveBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, productMissingMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find product")
	}
	return s.buildDetail(ctx, product)
}

func (s *service) ListForSeller(ctx context.Context, sellerID uuid.UUID, page pagination.Params) (*ProductListResult, error) {
	return s.List(ctx, ListProductsInput{
		Pagination:     page,
		SellerID:       &sellerID,
		IncludeDeleted: true,
	})
}

func (s *service) Create(ctx context.Context, sellerID uuid.UUID, req CreateProductRequest) (*ProductDetail, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if req.PriceCurrent.IsNegative() || req.PriceCurrent.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_current must be positive")
	}

	category, err := s.resolveCategory(ctx, req.CategorySlug)
	if err != nil {
		return nil, err
	}

	slug, err := s.pickSlug(ctx, name)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		SellerID:     &sellerID,
		CategoryID:   category.ID,
		Name:         name,
		Slug:         slug,
		Description:  req.Description,
		PriceOld:     req.PriceOld,
		PriceCurrent: req.PriceCurrent,
		InStock:      defaultStock,
		Image1:       req.Image1,
		Image2:       req.Image2,
		Image3:       req.Image3,
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product slug already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}

	return s.reload(ctx, created.Slug)
}

func (s *service) Update(ctx context.Context, sellerID uuid.UUID, slug string, req UpdateProductRequest) (*ProductDetail, error) {
	product, err := s.findOwned(ctx, sellerID, slug)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		// The slug stays stable across renames so shared links keep resolving.
		product.Name = name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.CategorySlug != nil {
		category, err := s.resolveCategory(ctx, *req.CategorySlug)
		if err != nil {
			return nil, err
		}
		product.CategoryID = category.ID
		product.Category = category
	}
	if req.PriceOld != nil {
		product.PriceOld = req.PriceOld
	}
	if req.PriceCurrent != nil {
		if req.PriceCurrent.IsNegative() || req.PriceCurrent.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_current must be positive")
		}
		product.PriceCurrent = *req.PriceCurrent
	}
	if req.InStock != nil {
		if *req.InStock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "in_stock cannot be negative")
		}
		product.InStock = *req.InStock
	}
	if req.Image1 != nil {
		product.Image1 = *req.Image1
	}
	if req.Image2 != nil {
		product.Image2 = req.Image2
	}
	if req.Image3 != nil {
		product.Image3 = req.Image3
	}

	if _, err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return s.reload(ctx, product.Slug)
}

func (s *service) Delete(ctx context.Context, sellerID uuid.UUID, slug string) error {
	product, err := s.findOwned(ctx, sellerID, slug)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, product.ID, time.Now().UTC()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

func (s *service) findOwned(ctx context.Context, sellerID uuid.UUID, slug string) (*models.Product, error) {
	product, err := s.repo.FindOwnedBySlug(ctx, sellerID, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, productMissingMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find product")
	}
	if product.IsDeleted {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, productMissingMessage)
	}
	return product, nil
}

func (s *service) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, categoryMissingMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find category")
	}
	return category, nil
}

// pickSlug prefers the plain slug and falls back to a suffixed one when taken.
func (s *service) pickSlug(ctx context.Context, name string) (string, error) {
	base := slugs.Make(name)
	taken, err := s.repo.SlugExists(ctx, base)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check product slug")
	}
	if !taken {
		return base, nil
	}
	return slugs.WithSuffix(base), nil
}

func (s *service) reload(ctx context.Context, slug string) (*ProductDetail, error) {
	product, err := s.repo.FindLiveBySlug(ctx, slug)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload product")
	}
	return s.buildDetail(ctx, product)
}

func (s *service) buildDetail(ctx context.Context, product *models.Product) (*ProductDetail, error) {
	rating, err := s.reviews.Aggregate(ctx, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregate reviews")
	}
	items, err := s.reviews.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reviews")
	}

	detail := &ProductDetail{
		ProductSummary: summaryFromModel(product, rating),
		Description:    product.Description,
		Image2:         product.Image2,
		Image3:         product.Image3,
		Reviews:        reviews.FromModels(items),
	}
	return detail, nil
}

func summaryFromModel(p *models.Product, rating reviews.RatingSummary) ProductSummary {
	summary := ProductSummary{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		PriceOld:     p.PriceOld,
		PriceCurrent: p.PriceCurrent,
		InStock:      p.InStock,
		Image1:       p.Image1,
		Rating:       rating.Rating,
		NumReviews:   rating.NumReviews,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Seller != nil {
		summary.Seller = &SellerSummary{
			ID:           p.Seller.ID,
			BusinessName: p.Seller.BusinessName,
			Slug:         p.Seller.Slug,
		}
	}
	if p.Category != nil {
		summary.Category = CategorySummary{
			ID:   p.Category.ID,
			Name: p.Category.Name,
			Slug: p.Category.Slug,
		}
	}
	return summary
}
