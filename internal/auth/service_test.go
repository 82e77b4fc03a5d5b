package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/shopyard/shopyard-backend/pkg/auth"
	"github.com/shopyard/shopyard-backend/pkg/auth/session"
	"github.com/shopyard/shopyard-backend/pkg/config"
	"github.com/shopyard/shopyard-backend/pkg/db/models"
	"github.com/shopyard/shopyard-backend/pkg/enums"
	pkgerrors "github.com/shopyard/shopyard-backend/pkg/errors"
	"github.com/shopyard/shopyard-backend/pkg/security"
	"gorm.io/gorm"
)

func TestServiceLoginBuyer(t *testing.T) {
	password := "buyer-secret"
	hashed := mustHashPassword(t, password)
	user := &models.User{
		ID:           uuid.New(),
		Email:        "buyer@example.com",
		PasswordHash: hashed,
		FirstName:    "Billie",
		LastName:     "Buyer",
		AccountType:  enums.AccountTypeBuyer,
		IsActive:     true,
	}
	cfg := testJWTConfig()

	svc, sessionMgr, err := buildTestService(user, nil, cfg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("unexpected user id claim %s", claims.UserID)
	}
	if claims.AccountType != enums.AccountTypeBuyer {
		t.Fatalf("unexpected account type claim %s", claims.AccountType)
	}
	if resp.RefreshToken == "" {
		t.Fatalf("expected refresh token to be set")
	}
	if resp.Seller != nil {
		t.Fatalf("buyer login should not include seller profile")
	}
	if sessionMgr.generatedFor != user.ID.String() {
		t.Fatalf("session generated for wrong user %q", sessionMgr.generatedFor)
	}
	if user.LastLoginAt == nil {
		t.Fatalf("expected last login to be recorded")
	}
}

func TestServiceLoginSellerIncludesProfile(t *testing.T) {
	password := "seller-secret"
	hashed := mustHashPassword(t, password)
	user := &models.User{
		ID:           uuid.New(),
		Email:        "seller@example.com",
		PasswordHash: hashed,
		FirstName:    "Sam",
		LastName:     "Seller",
		AccountType:  enums.AccountTypeSeller,
		IsActive:     true,
	}
	seller := &models.Seller{
		ID:           uuid.New(),
		UserID:       user.ID,
		BusinessName: "Sam's Goods",
		Slug:         "sams-goods",
	}

	svc, _, err := buildTestService(user, seller, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Seller == nil || resp.Seller.Slug != "sams-goods" {
		t.Fatalf("expected seller profile in response, got %+v", resp.Seller)
	}
}

func TestServiceLoginWrongPassword(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "buyer@example.com",
		PasswordHash: mustHashPassword(t, "right"),
		AccountType:  enums.AccountTypeBuyer,
		IsActive:     true,
	}

	svc, _, err := buildTestService(user, nil, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "wrong",
	})
	if err == nil {
		t.Fatalf("expected unauthorized for wrong password")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestServiceLoginInactiveUser(t *testing.T) {
	password := "inactive"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "gone@example.com",
		PasswordHash: mustHashPassword(t, password),
		AccountType:  enums.AccountTypeBuyer,
		IsActive:     false,
	}

	svc, _, err := buildTestService(user, nil, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	if _, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: password}); err == nil {
		t.Fatalf("expected unauthorized for inactive user")
	}
}

func TestServiceRefreshRotatesSession(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:      userID,
		Email:       "buyer@example.com",
		AccountType: enums.AccountTypeBuyer,
		JTI:         "jti-old",
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	sessionMgr := &stubSessionManager{
		refreshToken:  "refresh-old",
		rotateTokenID: "jti-new",
		rotateRefresh: "refresh-new",
	}
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{},
		SellerRepo:     stubSellerRepo{},
		SessionManager: sessionMgr,
		JWTConfig:      cfg,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  token,
		RefreshToken: "refresh-old",
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if resp.RefreshToken != "refresh-new" {
		t.Fatalf("expected rotated refresh token, got %q", resp.RefreshToken)
	}
	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse rotated token: %v", err)
	}
	if claims.ID != "jti-new" {
		t.Fatalf("expected rotated jti, got %q", claims.ID)
	}
}

func TestServiceRefreshInvalidToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:      userID,
		Email:       "buyer@example.com",
		AccountType: enums.AccountTypeBuyer,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	sessionMgr := &stubSessionManager{rotateErr: session.ErrInvalidRefreshToken}
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{},
		SellerRepo:     stubSellerRepo{},
		SessionManager: sessionMgr,
		JWTConfig:      cfg,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  token,
		RefreshToken: "stolen",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestServiceLogoutRevokesSession(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:      userID,
		Email:       "buyer@example.com",
		AccountType: enums.AccountTypeBuyer,
		JTI:         "jti-logout",
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	sessionMgr := &stubSessionManager{}
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{},
		SellerRepo:     stubSellerRepo{},
		SessionManager: sessionMgr,
		JWTConfig:      cfg,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if err := svc.Logout(context.Background(), LogoutRequest{AccessToken: token}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sessionMgr.revokedTokenID != "jti-logout" {
		t.Fatalf("expected jti-logout revoked, got %q", sessionMgr.revokedTokenID)
	}
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "shopyard",
		ExpirationMinutes: 30,
	}
}

func buildTestService(user *models.User, seller *models.Seller, jwtCfg config.JWTConfig) (Service, *stubSessionManager, error) {
	sessionMgr := &stubSessionManager{refreshToken: "refresh-token"}
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SellerRepo:     stubSellerRepo{seller: seller},
		SessionManager: sessionMgr,
		JWTConfig:      jwtCfg,
	})
	return svc, sessionMgr, err
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

type stubUserRepo struct {
	user *models.User
	err  error
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if s.user != nil && s.user.ID == id {
		s.user.LastLoginAt = &at
	}
	return nil
}

type stubSellerRepo struct {
	seller *models.Seller
}

func (s stubSellerRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Seller, error) {
	if s.seller == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.seller, nil
}

type stubSessionManager struct {
	refreshToken   string
	generatedFor   string
	rotateTokenID  string
	rotateRefresh  string
	rotateErr      error
	revokedTokenID string
}

func (s *stubSessionManager) Generate(ctx context.Context, userID, tokenID string) (string, error) {
	s.generatedFor = userID
	return s.refreshToken, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, userID, oldTokenID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	return s.rotateTokenID, s.rotateRefresh, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, userID, tokenID string) error {
	s.revokedTokenID = tokenID
	return nil
}
