package sellers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/shopyard/shopyard-backend/pkg/errors"
)

const sellerMissingMessage = "Seller does not exist!"

// Service exposes public storefront reads.
type Service interface {
	List(ctx context.Context) ([]SellerDTO, error)
	GetBySlug(ctx context.Context, slug string) (*SellerDTO, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*SellerDTO, error)
}

type service struct {
	repo *Repository
}

// NewService builds a seller service on top of the repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("seller repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]SellerDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list sellers")
	}
	out := make([]SellerDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*SellerDTO, error) {
	seller, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, sellerMissingMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find seller")
	}
	return FromModel(seller), nil
}

func (s *service) GetByUserID(ctx context.Context, userID uuid.UUID) (*SellerDTO, error) {
	seller, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, sellerMissingMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find seller")
	}
	return FromModel(seller), nil
}
