package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopyard/shopyard-backend/pkg/db"
	"github.com/shopyard/shopyard-backend/pkg/db/models"
	pkgerrors "github.com/shopyard/shopyard-backend/pkg/errors"
)

const productMissingMessage = "Product does not exist!"

type productFinder interface {
	FindLiveBySlug(ctx context.Context, slug string) (*models.Product, error)
}

// Service exposes the cart read and the quantity toggle.
type Service interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	Toggle(ctx context.Context, userID uuid.UUID, req ToggleCartRequest) (*ToggleResult, error)
}

// ServiceParams bundles the cart service dependencies.
type ServiceParams struct {
	Repo     *Repository
	Products productFinder
}

type service struct {
	repo     *Repository
	products productFinder
}

// NewService constructs the cart service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product finder is required")
	}
	return &service{repo: params.Repo, products: params.Products}, nil
}

func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	lines, err := s.repo.ListLines(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart")
	}

	dto := &CartDTO{
		Items:    make([]CartItemDTO, 0, len(lines)),
		Subtotal: decimal.Zero,
	}
	for i := range lines {
		item := itemFromModel(&lines[i])
		dto.Items = append(dto.Items, *item)
		dto.TotalQuantity += item.Quantity
		dto.Subtotal = dto.Subtotal.Add(item.Total)
	}
	return dto, nil
}

// Toggle sets the absolute quantity of one product in the cart. A quantity of
// zero removes the line and is idempotent when no line exists.
func (s *service) Toggle(ctx context.Context, userID uuid.UUID, req ToggleCartRequest) (*ToggleResult, error) {
	if req.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	product, err := s.products.FindLiveBySlug(ctx, req.ProductSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, productMissingMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find product")
	}

	line, err := s.repo.FindLine(ctx, userID, product.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find cart line")
	}

	if req.Quantity == 0 {
		if line == nil {
			return &ToggleResult{Outcome: OutcomeRemoved}, nil
		}
		if err := s.repo.DeleteLine(ctx, line.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart line")
		}
		return &ToggleResult{Outcome: OutcomeRemoved}, nil
	}

	if line != nil {
		return s.updateLine(ctx, line, product, req.Quantity)
	}

	created, err := s.repo.CreateLine(ctx, &models.OrderItem{
		UserID:    userID,
		ProductID: product.ID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		// A concurrent insert hit the partial unique index first; fall
		// through to an update of the surviving line.
		if db.IsUniqueViolation(err) {
			existing, findErr := s.repo.FindLine(ctx, userID, product.ID)
			if findErr != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, findErr, "find cart line")
			}
			return s.updateLine(ctx, existing, product, req.Quantity)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add cart line")
	}

	created.Product = product
	return &ToggleResult{Outcome: OutcomeAdded, Item: itemFromModel(created)}, nil
}

func (s *service) updateLine(ctx context.Context, line *models.OrderItem, product *models.Product, quantity int) (*ToggleResult, error) {
	if err := s.repo.UpdateQuantity(ctx, line.ID, quantity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart line")
	}
	line.Quantity = quantity
	line.Product = product
	return &ToggleResult{Outcome: OutcomeUpdated, Item: itemFromModel(line)}, nil
}
