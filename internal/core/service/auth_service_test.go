package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/studyshare/materials-api/internal/core/domain"
)

func TestAuthService_Register_Success(t *testing.T) {
	repo := newMemAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role %s, got %s", domain.RoleUser, user.Role)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newMemAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "Bob", "not-an-email", "pass123"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad email, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "Bob", "bob@example.com", "short"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for short password, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("expected no users persisted, got %d", len(repo.users))
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newMemAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "Bob", "bob@example.com", "pass123"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "Bobby", "bob@example.com", "pass456"); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_RegisterAdmin_Role(t *testing.T) {
	repo := newMemAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	admin, err := svc.RegisterAdmin(context.Background(), "Root", "root@example.com", "pass123")
	if err != nil {
		t.Fatalf("RegisterAdmin returned error: %v", err)
	}
	if !admin.IsAdmin() {
		t.Fatalf("expected admin role, got %s", admin.Role)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newMemAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	created, err := svc.Register(context.Background(), "Carol", "carol@example.com", "s3cret99")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, err := svc.Login(context.Background(), "carol@example.com", "s3cret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != created.ID {
		t.Fatalf("expected sub %q, got %v", created.ID, claims["sub"])
	}
	if claims["role"] != domain.RoleUser {
		t.Fatalf("expected role %s, got %v", domain.RoleUser, claims["role"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatalf("expected exp claim")
	}
}

// Wrong password and unknown email must be indistinguishable to the caller.
func TestAuthService_Login_GenericInvalidCredentials(t *testing.T) {
	repo := newMemAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "Dave", "dave@example.com", "goodpass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, wrongPass := svc.Login(context.Background(), "dave@example.com", "badpass")
	_, unknownUser := svc.Login(context.Background(), "nobody@example.com", "whatever")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPass)
	}
	if !errors.Is(unknownUser, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknownUser)
	}
	if wrongPass.Error() != unknownUser.Error() {
		t.Fatalf("expected identical errors, got %q vs %q", wrongPass, unknownUser)
	}
}

func TestAuthService_LoginAdmin_RejectsNonAdmin(t *testing.T) {
	repo := newMemAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "Eve", "eve@example.com", "goodpass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Correct password, but not an admin: same generic error as a bad password.
	if _, err := svc.LoginAdmin(context.Background(), "eve@example.com", "goodpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_LoginAdmin_Success(t *testing.T) {
	repo := newMemAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.RegisterAdmin(context.Background(), "Root", "root@example.com", "goodpass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, err := svc.LoginAdmin(context.Background(), "root@example.com", "goodpass")
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleAdmin {
		t.Fatalf("expected admin role in token, got %v", claims["role"])
	}
}
