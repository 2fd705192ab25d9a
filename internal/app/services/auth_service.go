package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/cid2105/virtual-greek/internal/app/models"
	"github.com/cid2105/virtual-greek/internal/app/models/dto"
	"github.com/cid2105/virtual-greek/internal/pkg/apperrors"
	"github.com/cid2105/virtual-greek/internal/pkg/auth"
)

// userStore is the identity persistence surface
type userStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// authProfileStore resolves the profile owned by an identity
type authProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error)
}

// AuthService defines the interface for registration and login
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	users      userStore
	profiles   authProfileStore
	profileSvc ProfileService
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users userStore, profiles authProfileStore, profileSvc ProfileService, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		users:      users,
		profiles:   profiles,
		profileSvc: profileSvc,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates an identity, provisions its member profile and issues a
// token pair
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError("email is already registered")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Password: hashed,
		IsActive: true,
	}
	userID, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	profile, err := s.profileSvc.CreateProfileFor(ctx, userID, req.DisplayName, req.ChapterID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("userId", userID).
		Int64("profileId", profile.ID).
		Msg("User registered")

	return s.issueTokens(user, profile.ID)
}

// Login authenticates an identity and issues a token pair
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "invalid email or password")
	}
	if !user.IsActive {
		return nil, apperrors.NewCustomError(apperrors.ErrAccountDisabled, "account is disabled")
	}

	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrProfileNotFound, "profile not found")
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to record login time")
	}

	return s.issueTokens(user, profile.ID)
}

func (s *authServiceImpl) issueTokens(user *models.User, profileID int64) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		ProfileID:        profileID,
	}, nil
}
