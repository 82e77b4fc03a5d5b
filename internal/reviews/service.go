package reviews

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopyard/shopyard-backend/pkg/db"
	"github.com/shopyard/shopyard-backend/pkg/db/models"
	pkgerrors "github.com/shopyard/shopyard-backend/pkg/errors"
)

const (
	productMissingMessage = "Product does not exist!"
	reviewMissingMessage  = "Review does not exist!"
	alreadyReviewedMsg    = "You have already reviewed this product!"
)

type productFinder interface {
	FindLiveBySlug(ctx context.Context, slug string) (*models.Product, error)
}

// Service exposes the review lifecycle for buyers.
type Service interface {
	ListForProduct(ctx context.Context, productSlug string) ([]ReviewDTO, error)
	Create(ctx context.Context, userID uuid.UUID, req UpsertReviewRequest) (*ReviewDTO, error)
	Update(ctx context.Context, userID uuid.UUID, req UpsertReviewRequest) (*ReviewDTO, error)
	Delete(ctx context.Context, userID uuid.UUID, productSlug string) error
}

type service struct {
	repo     *Repository
	products productFinder
}

// ServiceParams bundles the review service dependencies.
type ServiceParams struct {
	Repo     *Repository
	Products productFinder
}

// NewService constructs the review service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("review repository is required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product finder is required")
	}
	return &service{repo: params.Repo, products: params.Products}, nil
}

func (s *service) ListForProduct(ctx context.Context, productSlug string) ([]ReviewDTO, error) {
	product, err := s.findProduct(ctx, productSlug)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reviews")
	}
	return FromModels(rows), nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req UpsertReviewRequest) (*ReviewDTO, error) {
	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}
	product, err := s.findProduct(ctx, req.ProductSlug)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindLive(ctx, userID, product.ID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, alreadyReviewedMsg)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check existing review")
	}

	review, err := s.repo.Create(ctx, &models.Review{
		UserID:    userID,
		ProductID: product.ID,
		Rating:    req.Rating,
		Text:      req.Text,
	})
	if err != nil {
		// The partial unique index closes the pre-check race.
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, alreadyReviewedMsg)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create review")
	}
	return FromModel(review), nil
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, req UpsertReviewRequest) (*ReviewDTO, error) {
	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}
	product, err := s.findProduct(ctx, req.ProductSlug)
	if err != nil {
		return nil, err
	}

	review, err := s.repo.FindLive(ctx, userID, product.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, reviewMissingMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find review")
	}

	review.Rating = req.Rating
	review.Text = req.Text
	if _, err := s.repo.Update(ctx, review); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update review")
	}
	return FromModel(review), nil
}

func (s *service) Delete(ctx context.Context, userID uuid.UUID, productSlug string) error {
	product, err := s.findProduct(ctx, productSlug)
	if err != nil {
		return err
	}

	review, err := s.repo.FindLive(ctx, userID, product.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, reviewMissingMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find review")
	}

	if err := s.repo.SoftDelete(ctx, review.ID, time.Now().UTC()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete review")
	}
	return nil
}

func (s *service) findProduct(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.products.FindLiveBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, productMissingMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find product")
	}
	return product, nil
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	return nil
}
