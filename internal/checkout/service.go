package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopyard/shopyard-backend/internal/cart"
	"github.com/shopyard/shopyard-backend/internal/orders"
	"github.com/shopyard/shopyard-backend/internal/profiles"
	"github.com/shopyard/shopyard-backend/pkg/db"
	"github.com/shopyard/shopyard-backend/pkg/db/models"
	pkgerrors "github.com/shopyard/shopyard-backend/pkg/errors"
	"github.com/shopyard/shopyard-backend/pkg/enums"
)

const (
	emptyCartMessage      = "Your cart is empty!"
	addressMissingMessage = "Shipping address does not exist!"
)

// Service turns a cart into an order.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*orders.OrderDTO, error)
}

// ServiceParams bundles the checkout service dependencies.
type ServiceParams struct {
	DB *db.Client
}

type service struct {
	db *db.Client
}

// NewService constructs the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("db client is required")
	}
	return &service{db: params.DB}, nil
}

// Checkout re-parents every cart line onto a new order inside one
// transaction. The shipping address is copied onto the order so later edits
// to the address never rewrite order history.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*orders.OrderDTO, error) {
	if req.ShippingID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping_id is required")
	}

	var dto *orders.OrderDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := cart.NewRepository(tx)
		orderRepo := orders.NewRepository(tx)
		addressRepo := profiles.NewRepository(tx)

		lines, err := cartRepo.ListLines(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart")
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, emptyCartMessage)
		}

		address, err := addressRepo.FindAddress(ctx, userID, *req.ShippingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, addressMissingMessage)
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find address")
		}

		order, err := s.createOrder(ctx, orderRepo, userID, address)
		if err != nil {
			return err
		}

		if _, err := cartRepo.ReparentToOrder(ctx, userID, order.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "attach cart to order")
		}

		placed, err := orderRepo.FindByTxRef(ctx, userID, order.TxRef)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
		}
		dto = orders.FromModel(placed)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) createOrder(ctx context.Context, repo *orders.Repository, userID uuid.UUID, address *models.ShippingAddress) (*models.Order, error) {
	// The reference is pre-checked for uniqueness. A concurrent claim of the
	// same 12-char reference between the check and the insert still trips the
	// unique index; the transaction rolls back and the client retries.
	txRef, err := orders.GenerateTxRef(ctx, repo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate tx_ref")
	}

	order := &models.Order{
		UserID:         userID,
		TxRef:          txRef,
		DeliveryStatus: enums.DeliveryStatusPending,
		PaymentStatus:  enums.PaymentStatusPending,
		FullName:       &address.FullName,
		Email:          &address.Email,
		Phone:          address.Phone,
		Address:        address.Address,
		City:           address.City,
		Country:        address.Country,
		Zipcode:        address.Zipcode,
	}

	created, err := repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
	}
	return created, nil
}
