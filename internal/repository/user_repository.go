package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quizmaker/internal/domain"
	"quizmaker/internal/repository/models"
	"quizmaker/internal/util"

	"github.com/jmoiron/sqlx"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
}

// sqlxUserRepository implements UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) UserRepository {
	return &sqlxUserRepository{db: db}
}

// CreateUser inserts a new user into the database.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = util.NewULID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	query := `INSERT INTO users (id, google_id, email, name, picture_url, created_at, last_login_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`

	exec := GetExecutor(ctx, r.db)
	_, err := exec.ExecContext(ctx, query,
		user.ID,
		user.GoogleID,
		user.Email,
		util.StringToNullString(user.Name),
		util.StringToNullString(user.PictureURL),
		user.CreatedAt,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByGoogleID retrieves a user by their Google ID. Returns nil, nil when
// no user exists for the given identity.
func (r *sqlxUserRepository) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	var user models.User
	query := `SELECT id, google_id, email, name, picture_url, created_at, last_login_at
	          FROM users WHERE google_id = ?`

	exec := GetExecutor(ctx, r.db)
	if err := exec.GetContext(ctx, &user, query, googleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by google_id: %w", err)
	}
	return toDomainUser(&user), nil
}

// GetUserByID retrieves a user by their internal ID.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var user models.User
	query := `SELECT id, google_id, email, name, picture_url, created_at, last_login_at
	          FROM users WHERE id = ?`

	exec := GetExecutor(ctx, r.db)
	if err := exec.GetContext(ctx, &user, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return toDomainUser(&user), nil
}

// UpdateLastLogin stamps the user's last successful sign-in.
func (r *sqlxUserRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	query := `UPDATE users SET last_login_at = ? WHERE id = ?`

	exec := GetExecutor(ctx, r.db)
	if _, err := exec.ExecContext(ctx, query, at, userID); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

func toDomainUser(m *models.User) *domain.User {
	return &domain.User{
		ID:          m.ID,
		GoogleID:    m.GoogleID,
		Email:       m.Email,
		Name:        m.Name.String,
		PictureURL:  m.PictureURL.String,
		CreatedAt:   m.CreatedAt,
		LastLoginAt: util.NullTimeToPtr(m.LastLoginAt),
	}
}
