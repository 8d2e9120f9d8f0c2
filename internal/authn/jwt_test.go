package authn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpcs-reservation/internal/staffdir"
)

func TestIssueAndValidateRoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	token, err := issuer.Issue("s1", staffdir.RoleAdmin)
	require.NoError(t, err)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "s1", claims.StaffID)
	assert.Equal(t, staffdir.RoleAdmin, claims.Role)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Hour)
	token, err := issuer.Issue("s1", staffdir.RoleRegular)
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateRejectsTamperedSecret(t *testing.T) {
	issuer := NewIssuer("secret-a", time.Hour)
	token, err := issuer.Issue("s1", staffdir.RoleRegular)
	require.NoError(t, err)

	other := NewIssuer("secret-b", time.Hour)
	_, err = other.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
