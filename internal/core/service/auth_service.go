package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/studyshare/materials-api/internal/core/domain"
	"github.com/studyshare/materials-api/internal/core/ports"
)

const minPasswordLength = 6

// AuthService implements registration and token issuance.
type AuthService struct {
	repo      ports.AuthRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.AuthRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates an ordinary user account.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.register(ctx, name, email, password, domain.RoleUser)
}

// RegisterAdmin creates an admin account.
func (s *AuthService) RegisterAdmin(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.register(ctx, name, email, password, domain.RoleAdmin)
}

func (s *AuthService) register(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, user)
}

// Login authenticates by email and password and returns a signed token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.verify(ctx, email, password)
	if err != nil {
		return "", err
	}
	return s.generateToken(user)
}

// LoginAdmin is Login restricted to admin accounts. A non-admin with the
// correct password receives the same invalid-credentials error as a wrong
// password, so the response does not reveal account existence or role.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (string, error) {
	user, err := s.verify(ctx, email, password)
	if err != nil {
		return "", err
	}
	if !user.IsAdmin() {
		return "", domain.ErrInvalidCredentials
	}
	return s.generateToken(user)
}

func (s *AuthService) verify(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
