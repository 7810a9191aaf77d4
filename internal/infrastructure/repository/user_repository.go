package repository

import (
	"database/sql"
	"fmt"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{
		db: db,
	}
}

const userColumns = `id, name, email, phone, password_hash, role, is_active, created_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*domain.User, error) {
	var u domain.User
	var phone sql.NullString

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&phone,
		&u.PasswordHash,
		&u.Role,
		&u.IsActive,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Phone = phone.String
	return &u, nil
}

// GetByID implements domain.UserRepository
func (r *userRepository) GetByID(id int) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM app_user WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	return user, nil
}

// GetByEmail implements domain.UserRepository
func (r *userRepository) GetByEmail(email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM app_user WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(query, email))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s not found", email)
	}
	if err != nil {
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}
	return user, nil
}

// Create implements domain.UserRepository
func (r *userRepository) Create(user *domain.User) error {
	query := `
		INSERT INTO app_user (name, email, phone, password_hash, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at`

	err := r.db.QueryRow(query,
		user.Name,
		user.Email,
		nullString(user.Phone),
		user.PasswordHash,
		user.Role,
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}
