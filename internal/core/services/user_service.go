package services

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/SscSPs/duebook/internal/apperrors"
	"github.com/SscSPs/duebook/internal/core/domain"
	portsrepo "github.com/SscSPs/duebook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/duebook/internal/core/ports/services"
	"github.com/SscSPs/duebook/internal/dto"
	"github.com/SscSPs/duebook/internal/utils"
	"github.com/google/uuid"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	// usernameSuffixBytes is hex encoded, so the suffix has twice as many characters.
	usernameSuffixBytes = 3
	maxUsernameAttempts = 5
)

var usernameUnsafe = regexp.MustCompile(`[^a-z0-9._-]+`)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// errInvalidCredentials is deliberately identical for unknown emails and wrong passwords.
func errInvalidCredentials() error {
	return apperrors.NewUnauthorizedError("Invalid credentials")
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user by ID", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		s.LogError(ctx, err, "Failed to check for existing user")
		return nil, err
	}
	if exists {
		return nil, apperrors.NewDuplicateError("User already exists")
	}

	hash, err := utils.HashPassword(req.Password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return nil, apperrors.NewFieldError("password", "must be at most 72 bytes")
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, apperrors.NewInternalServerError("failed to register user")
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	// A concurrent registration can still win the race; the unique index reports it as a duplicate
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save user")
		}
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.ID))
	return &user, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, req dto.LoginRequest) (*domain.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errInvalidCredentials()
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}

	if user.PasswordHash == "" || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogDebug(ctx, "Password mismatch", slog.String("user_id", user.ID))
		return nil, errInvalidCredentials()
	}
	return user, nil
}

// FindOrCreateOAuthUser links a provider sign-in to the user with the same email,
// creating one with a unique username on first sign-in.
func (s *userService) FindOrCreateOAuthUser(ctx context.Context, name, email, provider, providerUserID string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperrors.NewBadRequestError("provider did not return an email address")
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up OAuth user")
		return nil, err
	}

	base := usernameFrom(name, email)
	now := time.Now().UTC().Truncate(time.Microsecond)
	candidate := base
	for attempt := 0; attempt < maxUsernameAttempts; attempt++ {
		user := domain.User{
			ID:             uuid.NewString(),
			Username:       candidate,
			Email:          email,
			AuthProvider:   domain.AuthProvider(provider),
			ProviderUserID: providerUserID,
			Timestamps:     domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		}

		taken, err := s.userRepo.ExistsByUsernameOrEmail(ctx, candidate, email)
		if err != nil {
			return nil, err
		}
		if !taken {
			if err := s.userRepo.SaveUser(ctx, user); err == nil {
				s.LogInfo(ctx, "OAuth user created",
					slog.String("user_id", user.ID), slog.String("provider", provider))
				return &user, nil
			} else if !errors.Is(err, apperrors.ErrDuplicate) {
				s.LogError(ctx, err, "Failed to save OAuth user")
				return nil, err
			}
		}

		suffix, err := utils.RandomHex(usernameSuffixBytes)
		if err != nil {
			return nil, apperrors.NewInternalServerError("failed to create user")
		}
		candidate = truncate(base, maxUsernameLength-len(suffix)-1) + "-" + suffix
	}

	// Another sign-in may have created the same email meanwhile
	if user, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return user, nil
	}
	return nil, apperrors.NewDuplicateError("Could not allocate a username")
}

// usernameFrom derives a handle from the display name, falling back to the email's local part.
func usernameFrom(name, email string) string {
	candidate := usernameUnsafe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "")
	if len(candidate) < minUsernameLength {
		local, _, _ := strings.Cut(email, "@")
		candidate = usernameUnsafe.ReplaceAllString(local, "")
	}
	for len(candidate) < minUsernameLength {
		candidate += "0"
	}
	return truncate(candidate, maxUsernameLength)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
