//go:build unit

package password_test

import (
	"testing"

	"slot-booking/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher(t *testing.T) {
	h := password.NewHasher(bcrypt.MinCost)

	hashed, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hashed)

	assert.NoError(t, h.Compare(hashed, "password123"))
	assert.ErrorIs(t, h.Compare(hashed, "wrong-password"), password.ErrMismatch)
	assert.ErrorIs(t, h.Compare("", "password123"), password.ErrMismatch)

	_, err = h.Hash("")
	assert.ErrorIs(t, err, password.ErrInvalidPassword)
}
