package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/wcontent-api/internal/domain"
	"google.golang.org/api/idtoken"
)

// Identity holds the verified claims of a Google ID token.
type Identity struct {
	Sub           string
	Email         string
	EmailVerified bool
	Name          string
}

// Verifier verifies Google ID tokens issued for one OAuth client.
type Verifier struct {
	clientID string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewVerifier(clientID string) *Verifier {
	return &Verifier{clientID: clientID, validate: idtoken.Validate}
}

// Verify validates the token signature and audience and extracts the identity.
// Tokens for unverified emails are rejected.
func (v *Verifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if v.clientID == "" {
		return nil, errors.New("google sign-in is not configured")
	}
	p, err := v.validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid google token: %w", domain.ErrUnauthorized)
	}
	email, _ := p.Claims["email"].(string)
	verified, _ := p.Claims["email_verified"].(bool)
	name, _ := p.Claims["name"].(string)
	if email == "" || !verified {
		return nil, fmt.Errorf("google account email is not verified: %w", domain.ErrUnauthorized)
	}
	return &Identity{Sub: p.Subject, Email: email, EmailVerified: verified, Name: name}, nil
}
