package sqlstore

import (
	"context"
	"errors"

	"github.com/SscSPs/duebook/internal/apperrors"
	"github.com/SscSPs/duebook/internal/core/domain"
	portsrepo "github.com/SscSPs/duebook/internal/core/ports/repositories"
	"github.com/SscSPs/duebook/internal/models"
	"github.com/SscSPs/duebook/internal/utils/mapping"
	"github.com/SscSPs/duebook/pkg/database"
)

type UserRepository struct {
	BaseRepository
}

func newUserRepository(db database.Gateway) portsrepo.UserRepositoryFacade {
	return &UserRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure UserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := r.q(`
		INSERT INTO users (id, username, email, password_hash, auth_provider, provider_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`)

	_, err := r.DB.Exec(ctx, query,
		m.ID,
		m.Username,
		m.Email,
		m.PasswordHash,
		m.AuthProvider,
		m.ProviderUserID,
		m.CreatedAt.Time,
		m.UpdatedAt.Time,
	)
	if err != nil {
		if errors.Is(err, database.ErrUniqueViolation) {
			return apperrors.NewDuplicateError("User already exists")
		}
		return apperrors.NewStoreError("failed to save user", err)
	}
	return nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+models.UserColumns+` FROM users WHERE id = $1`, userID)
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+models.UserColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	query := r.q(`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)`)
	var exists bool
	if err := r.DB.QueryRow(ctx, query, username, email).Scan(&exists); err != nil {
		return false, apperrors.NewStoreError("failed to check existing user", err)
	}
	return exists, nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var m models.User
	if err := r.DB.QueryRow(ctx, r.q(query), arg).Scan(m.ScanTargets()...); err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, apperrors.NewStoreError("failed to find user", err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}
