package auth

import (
	"context"

	"github.com/mealwright/mealwright/internal/models"
)

// Authenticator abstracts the credential check so the service layer does not
// depend on a concrete scheme.
type Authenticator interface {
	// Register creates a new user account with the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if
	// successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}
