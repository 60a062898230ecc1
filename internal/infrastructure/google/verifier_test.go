package google

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcontent-api/internal/domain"
	"google.golang.org/api/idtoken"
)

func stubVerifier(p *idtoken.Payload, err error) *Verifier {
	return &Verifier{clientID: "client-1", validate: func(_ context.Context, _, aud string) (*idtoken.Payload, error) {
		if aud != "client-1" {
			return nil, errors.New("audience mismatch")
		}
		return p, err
	}}
}

func TestVerify_ExtractsIdentity(t *testing.T) {
	v := stubVerifier(&idtoken.Payload{Subject: "g-123", Claims: map[string]interface{}{
		"email": "creator@gmail.com", "email_verified": true, "name": "Creator One",
	}}, nil)

	id, err := v.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, &Identity{Sub: "g-123", Email: "creator@gmail.com", EmailVerified: true, Name: "Creator One"}, id)
}

func TestVerify_InvalidToken(t *testing.T) {
	_, err := stubVerifier(nil, errors.New("bad signature")).Verify(context.Background(), "tok")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestVerify_UnverifiedEmail(t *testing.T) {
	v := stubVerifier(&idtoken.Payload{Subject: "g-1", Claims: map[string]interface{}{"email": "x@gmail.com", "email_verified": false}}, nil)
	_, err := v.Verify(context.Background(), "tok")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestVerify_NotConfigured(t *testing.T) {
	_, err := NewVerifier("").Verify(context.Background(), "tok")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrUnauthorized))
}
