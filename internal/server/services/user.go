package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Janxz01/PersonalNoteHub/internal/common"
	"github.com/Janxz01/PersonalNoteHub/internal/logging"
	"github.com/Janxz01/PersonalNoteHub/internal/server/auth"
	"github.com/Janxz01/PersonalNoteHub/internal/server/config"
	"github.com/Janxz01/PersonalNoteHub/internal/server/models"
	"github.com/Janxz01/PersonalNoteHub/internal/server/repositories/repomanager"
)

const minPasswordLength = 8

// UserService handles registration, credential login, social login and
// token resolution.
type UserService struct {
	repomanager                 repomanager.RepositoryManager
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewUserService(m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		repomanager:                 m,
		logger:                      logger.With("service", "users"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

func validateRegistration(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return &common.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(email) == "" {
		return &common.ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if !strings.Contains(email, "@") {
		return &common.ValidationError{Field: "email", Reason: "must be a valid address"}
	}
	if len(password) < minPasswordLength {
		return &common.ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}
	return nil
}

// Register creates a credential account and returns a signed access token
// alongside the stored user. A duplicate email surfaces as
// common.ErrorConflict from the store.
func (s *UserService) Register(ctx context.Context, name, email, password string) (string, *models.User, error) {
	if err := validateRegistration(name, email, password); err != nil {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, common.ErrorInternal
	}

	user := &models.User{
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
		PasswordHash: string(hash),
	}

	user, err = s.repomanager.Users().Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return "", nil, common.ErrorInternal
	}

	return token, user, nil
}

// Login verifies the password against the stored bcrypt hash. An unknown
// email, a social-only account without a password and a wrong password all
// map to the same error so the response does not reveal which one happened.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.repomanager.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorInvalidCredentials
		}
		return "", nil, common.ErrorInternal
	}

	if user.PasswordHash == "" {
		return "", nil, common.ErrorInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, common.ErrorInvalidCredentials
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return "", nil, common.ErrorInternal
	}

	return token, user, nil
}

// SocialLogin finds or creates the account for a verified external identity.
// Resolution order: provider identity, then email (linking the identity to
// the existing account), then a fresh credential-less account. The whole
// sequence runs in one atomic scope so two concurrent logins with the same
// identity cannot both create an account.
func (s *UserService) SocialLogin(ctx context.Context, profile *models.SocialProfile) (string, *models.User, error) {
	if profile.Provider == "" || profile.ProviderID == "" {
		return "", nil, &common.ValidationError{Field: "provider", Reason: "provider and provider id are required"}
	}
	if strings.TrimSpace(profile.Email) == "" {
		return "", nil, &common.ValidationError{Field: "email", Reason: "must not be empty"}
	}

	var user *models.User

	err := s.repomanager.WithinTx(ctx, func(ctx context.Context, m repomanager.RepositoryManager) error {
		repo := m.Users()

		found, err := repo.GetByProviderID(ctx, profile.Provider, profile.ProviderID)
		if err == nil {
			user = found
			return nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		found, err = repo.GetByEmail(ctx, profile.Email)
		if err == nil {
			if err := repo.LinkProvider(ctx, found.ID, profile.Provider, profile.ProviderID); err != nil {
				return err
			}
			user = found
			if user.ProviderIDs == nil {
				user.ProviderIDs = make(map[string]string)
			}
			user.ProviderIDs[profile.Provider] = profile.ProviderID
			return nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		created, err := repo.Create(ctx, &models.User{
			Name:        profile.Name,
			Email:       profile.Email,
			AvatarKey:   profile.AvatarKey,
			ProviderIDs: map[string]string{profile.Provider: profile.ProviderID},
		})
		if err != nil {
			return err
		}

		s.logger.Info(ctx, "created account from social profile", "provider", profile.Provider)
		user = created
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return "", nil, common.ErrorInternal
	}

	return token, user, nil
}

// Resolve validates an access token and loads the account it belongs to.
func (s *UserService) Resolve(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := auth.ParseToken(tokenString, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users().GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidToken
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

func (s *UserService) generateAccessToken(user *models.User) (string, error) {
	return auth.GenerateToken(user.ID, user.Email, user.Name, s.jwtSecret, s.accessTokenValidityDuration)
}
