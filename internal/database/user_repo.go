package database

import (
	"database/sql"
	"errors"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"catalog-backend/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepo handles user database operations
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create creates a new user. Username uniqueness is enforced by the UNIQUE
// index; a conflict surfaces as ErrUserAlreadyExists. There is no
// check-then-act pre-check.
func (r *UserRepo) Create(user *models.User) error {
	result, err := r.db.sql.Exec(`
		INSERT INTO users (username, password_hash, is_admin)
		VALUES (?, ?, ?)
	`, user.Username, user.PasswordHash, user.IsAdmin)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUserAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepo) GetByID(id int64) (*models.User, error) {
	return r.get("SELECT id, username, password_hash, is_admin, created_at, last_login FROM users WHERE id = ?", id)
}

// GetByUsername retrieves a user by username
func (r *UserRepo) GetByUsername(username string) (*models.User, error) {
	return r.get("SELECT id, username, password_hash, is_admin, created_at, last_login FROM users WHERE username = ?", username)
}

func (r *UserRepo) get(query string, arg interface{}) (*models.User, error) {
	user := &models.User{}
	var lastLogin sql.NullTime

	err := r.db.sql.QueryRow(query, arg).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin,
		&user.CreatedAt, &lastLogin,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if lastLogin.Valid {
		user.LastLogin = lastLogin.Time
	}

	return user, nil
}

// UpdateLastLogin updates the user's last login timestamp
func (r *UserRepo) UpdateLastLogin(id int64) error {
	_, err := r.db.sql.Exec("UPDATE users SET last_login = ? WHERE id = ?", time.Now(), id)
	return err
}

// Count returns the total number of users
func (r *UserRepo) Count() (int, error) {
	var count int
	err := r.db.sql.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// isUniqueViolation reports whether err is a SQLite unique-constraint error
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
