package profiles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopyard/shopyard-backend/internal/users"
	"github.com/shopyard/shopyard-backend/pkg/db/models"
	pkgerrors "github.com/shopyard/shopyard-backend/pkg/errors"
)

const (
	addressMissingMessage = "Shipping address does not exist!"
	userMissingMessage    = "User does not exist!"
)

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, dto users.UpdateProfileDTO) (*models.User, error)
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
}

// Service exposes the account profile and shipping address book.
type Service interface {
	Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*users.UserDTO, error)
	DeleteMe(ctx context.Context, userID uuid.UUID) error

	ListAddresses(ctx context.Context, userID uuid.UUID) ([]ShippingAddressDTO, error)
	CreateAddress(ctx context.Context, userID uuid.UUID, req UpsertShippingAddressRequest) (*ShippingAddressDTO, error)
	UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, req UpsertShippingAddressRequest) (*ShippingAddressDTO, error)
	DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error
}

// ServiceParams bundles the profile service dependencies.
type ServiceParams struct {
	Repo  *Repository
	Users userRepository
}

type service struct {
	repo  *Repository
	users userRepository
}

// NewService constructs the profile service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("profile repository is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{repo: params.Repo, users: params.Users}, nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, userMissingMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find user")
	}
	return users.FromModel(user), nil
}

func (s *service) UpdateMe(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*users.UserDTO, error) {
	user, err := s.users.UpdateProfile(ctx, userID, users.UpdateProfileDTO{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, userMissingMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
	}
	return users.FromModel(user), nil
}

func (s *service) DeleteMe(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.SoftDelete(ctx, userID, time.Now().UTC()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete account")
	}
	return nil
}

func (s *service) ListAddresses(ctx context.Context, userID uuid.UUID) ([]ShippingAddressDTO, error) {
	rows, err := s.repo.ListAddresses(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list addresses")
	}
	return addressesFromModels(rows), nil
}

func (s *service) CreateAddress(ctx context.Context, userID uuid.UUID, req UpsertShippingAddressRequest) (*ShippingAddressDTO, error) {
	address, err := s.repo.CreateAddress(ctx, &models.ShippingAddress{
		UserID:   userID,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		Country:  req.Country,
		Zipcode:  req.Zipcode,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create address")
	}
	return addressFromModel(address), nil
}

func (s *service) UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, req UpsertShippingAddressRequest) (*ShippingAddressDTO, error) {
	address, err := s.repo.FindAddress(ctx, userID, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, addressMissingMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find address")
	}

	address.FullName = req.FullName
	address.Email = req.Email
	address.Phone = req.Phone
	address.Address = req.Address
	address.City = req.City
	address.Country = req.Country
	address.Zipcode = req.Zipcode

	if _, err := s.repo.SaveAddress(ctx, address); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update address")
	}
	return addressFromModel(address), nil
}

func (s *service) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	affected, err := s.repo.DeleteAddress(ctx, userID, addressID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete address")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, addressMissingMessage)
	}
	return nil
}
