package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("Username is required: %w", ErrBadRequest), KindValidation},
		{fmt.Errorf("account exists: %w", ErrConflict), KindDuplicateAccount},
		{fmt.Errorf("User not found: %w", ErrNotFound), KindNotFound},
		{fmt.Errorf("Invalid password: %w", ErrUnauthorized), KindInvalidCredentials},
		{fmt.Errorf("otp rejected: %w", ErrInvalidOTP), KindInvalidOTP},
		{ErrForbidden, KindForbidden},
		{errors.New("dynamo timeout"), KindInternal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Kind(tc.err), tc.err.Error())
	}
}
