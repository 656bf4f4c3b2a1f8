package auth

import (
	"errors"
	"log"
	"time"

	"catalog-backend/internal/database"
	"catalog-backend/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrMissingFields      = errors.New("username and password are required")
)

// Service handles authentication logic
type Service struct {
	userRepo     *database.UserRepo
	sessionRepo  *database.SessionRepo
	settingsRepo *database.SettingsRepo
}

// NewService creates a new auth service
func NewService(userRepo *database.UserRepo, sessionRepo *database.SessionRepo, settingsRepo *database.SettingsRepo) *Service {
	return &Service{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		settingsRepo: settingsRepo,
	}
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Login authenticates a user and creates a session. Unknown usernames and
// wrong passwords both come back as ErrInvalidCredentials; the distinction
// is logged server-side only to avoid username enumeration.
func (s *Service) Login(req LoginRequest, ipAddress, userAgent string) (*LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			log.Printf("login failed: no such user %q", req.Username)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	valid, err := VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !valid {
		log.Printf("login failed: wrong password for %q", req.Username)
		return nil, ErrInvalidCredentials
	}

	// Create session
	token, session, err := s.sessionRepo.Create(user.ID, ipAddress, userAgent, s.sessionDuration())
	if err != nil {
		return nil, err
	}

	// Update last login
	s.userRepo.UpdateLastLogin(user.ID)

	return &LoginResponse{
		User:      user,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Signup creates a new regular user. Admin accounts are never created here.
// A duplicate username surfaces as ErrUsernameTaken via the storage layer's
// unique constraint; there is no pre-check. No session is established.
func (s *Service) Signup(username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		IsAdmin:      false,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, database.ErrUserAlreadyExists) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return user, nil
}

// Logout invalidates a session
func (s *Service) Logout(token string) error {
	return s.sessionRepo.DeleteByToken(token)
}

// ValidateToken validates a session token and returns the user. The session
// stores only the user id; the user row is fetched fresh on every call.
func (s *Service) ValidateToken(token string) (*models.User, *models.Session, error) {
	session, err := s.sessionRepo.GetByToken(token)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetByID(session.UserID)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// sessionDuration reads the session timeout from settings, defaulting to
// one hour.
func (s *Service) sessionDuration() time.Duration {
	timeoutMinutes, err := s.settingsRepo.GetInt(database.SettingSessionTimeout)
	if err != nil || timeoutMinutes <= 0 {
		timeoutMinutes = 60
	}
	return time.Duration(timeoutMinutes) * time.Minute
}
