package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/shopyard/shopyard-backend/pkg/errors"
)

const orderMissingMessage = "Order does not exist!"

// Service exposes order history reads for buyers and sellers.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
	GetByTxRef(ctx context.Context, userID uuid.UUID, txRef string) (*OrderDTO, error)
	ListForSeller(ctx context.Context, sellerID uuid.UUID) ([]OrderDTO, error)
}

type service struct {
	repo *Repository
}

// NewService constructs the order service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return FromModels(rows), nil
}

func (s *service) ListForSeller(ctx context.Context, sellerID uuid.UUID) ([]OrderDTO, error) {
	rows, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list seller orders")
	}
	return FromModels(rows), nil
}

func (s *service) GetByTxRef(ctx context.Context, userID uuid.UUID, txRef string) (*OrderDTO, error) {
	order, err := s.repo.FindByTxRef(ctx, userID, txRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, orderMissingMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find order")
	}
	return FromModel(order), nil
}
