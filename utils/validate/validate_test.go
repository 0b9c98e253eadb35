package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	for _, email := range []string{"jane@example.com", "a@b.co", "  padded@example.com  "} {
		require.NoError(t, Email(email), email)
	}
	for _, email := range []string{"", "plain", "missing@tld", "two words@example.com", "@example.com"} {
		err := Email(email)
		require.Error(t, err, email)

		var vErr *Error
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "email", vErr.Field)
		require.Equal(t, "Please enter a valid email address", vErr.Message)
	}
}

func TestPassword(t *testing.T) {
	require.NoError(t, Password("secret"))
	require.NoError(t, Password("123456"))

	err := Password("12345")
	require.Error(t, err)

	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "password", vErr.Field)
	require.Equal(t, "Password must be at least 6 characters long", vErr.Message)
}

func TestName(t *testing.T) {
	require.NoError(t, Name("Jo"))
	require.NoError(t, Name("  Jo  "))

	for _, name := range []string{"", "J", "   J   "} {
		err := Name(name)
		require.Error(t, err, name)

		var vErr *Error
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "name", vErr.Field)
		require.Equal(t, "Name must be at least 2 characters long", vErr.Message)
	}
}
