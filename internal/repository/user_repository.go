package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/teamcal/calendar-api/internal/model"
	"github.com/teamcal/calendar-api/internal/utils"
)

const userColumns = "id,username,email,password_hash,api_key,deleted_at,created_at,updated_at"

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with a freshly issued API key and returns its ID.
func (r *UserRepo) Create(ctx context.Context, username, email, password string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, api_key) VALUES (?,?,?,?)",
		username, email, hash, utils.NewAPIKey())
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches an active user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE email=? AND deleted_at IS NULL LIMIT 1", email)
}

// GetByID fetches an active user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE id=? AND deleted_at IS NULL LIMIT 1", id)
}

// GetByAPIKey fetches an active user by its long-lived API key.
func (r *UserRepo) GetByAPIKey(ctx context.Context, apiKey string) (model.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE api_key=? AND deleted_at IS NULL LIMIT 1", apiKey)
}

// SoftDelete marks a user as deleted without removing the row.
func (r *UserRepo) SoftDelete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET deleted_at=NOW() WHERE id=? AND deleted_at IS NULL", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// RotateAPIKey replaces the user's API key, invalidating the old one.
func (r *UserRepo) RotateAPIKey(ctx context.Context, id uint64) (string, error) {
	key := utils.NewAPIKey()
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET api_key=? WHERE id=? AND deleted_at IS NULL", key, id)
	if err != nil {
		return "", err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", ErrUserNotFound
	}
	return key, nil
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (model.User, error) {
	var (
		u       model.User
		deleted sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.APIKey,
		&deleted, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	if deleted.Valid {
		t := new(time.Time)
		*t = deleted.Time
		u.DeletedAt = t
	}
	return u, nil
}
