package auth

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/shopyard/shopyard-backend/internal/sellers"
	"github.com/shopyard/shopyard-backend/internal/users"
	"github.com/shopyard/shopyard-backend/pkg/config"
	"github.com/shopyard/shopyard-backend/pkg/db"
	"github.com/shopyard/shopyard-backend/pkg/enums"
	pkgerrors "github.com/shopyard/shopyard-backend/pkg/errors"
	"github.com/shopyard/shopyard-backend/pkg/security"
	"github.com/shopyard/shopyard-backend/pkg/slugs"
)

// RegisterRequest contains the payload required for creating an account.
// Seller accounts also open a storefront, so business_name is required for them.
type RegisterRequest struct {
	FirstName    string            `json:"first_name" validate:"required"`
	LastName     string            `json:"last_name" validate:"required"`
	Email        string            `json:"email" validate:"required,email"`
	Password     string            `json:"password" validate:"required,min=8"`
	AccountType  enums.AccountType `json:"account_type" validate:"required"`
	BusinessName string            `json:"business_name,omitempty"`
	Description  *string           `json:"description,omitempty"`
}

// RegisterResponse returns the created user and, for sellers, the storefront profile.
type RegisterResponse struct {
	User   *users.UserDTO     `json:"user"`
	Seller *sellers.SellerDTO `json:"seller,omitempty"`
}

// RegisterService handles the onboarding transaction.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB             *db.Client
	PasswordConfig config.PasswordConfig
}

type registerService struct {
	db          *db.Client
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &registerService{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if !req.AccountType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid account type")
	}
	businessName := strings.TrimSpace(req.BusinessName)
	if req.AccountType == enums.AccountTypeSeller && businessName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business_name is required for seller accounts")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var resp RegisterResponse
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)
		sellerRepo := sellers.NewRepository(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: passwordHash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			AccountType:  req.AccountType,
		})
		if err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		resp.User = users.FromModel(user)

		if req.AccountType != enums.AccountTypeSeller {
			return nil
		}

		slug := slugs.Make(businessName)
		if _, err := sellerRepo.FindBySlug(ctx, slug); err == nil {
			// Slug already claimed by another storefront.
			slug = slugs.WithSuffix(businessName)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check seller slug")
		}

		seller, err := sellerRepo.Create(ctx, sellers.CreateSellerDTO{
			UserID:       user.ID,
			BusinessName: businessName,
			Slug:         slug,
			Description:  req.Description,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create seller profile")
		}
		resp.Seller = sellers.FromModel(seller)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
