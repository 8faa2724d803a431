package ports

import (
	"context"

	"github.com/studyshare/materials-api/internal/core/domain"
)

// AuthService defines registration and token issuance for users and admins.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	RegisterAdmin(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login authenticates a user and returns a signed bearer token. Unknown
	// email and wrong password both yield domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, error)
	// LoginAdmin is Login restricted to admin accounts: a correct password on
	// a non-admin account still yields domain.ErrInvalidCredentials.
	LoginAdmin(ctx context.Context, email, password string) (string, error)
}
