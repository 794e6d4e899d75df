package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	encoded, err := Hash("hunter22")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))

	require.True(t, Verify("hunter22", encoded))
	require.False(t, Verify("hunter23", encoded))
}

func TestHashIsSalted(t *testing.T) {
	a, err := Hash("hunter22")
	require.NoError(t, err)
	b, err := Hash("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	require.True(t, Verify("hunter22", a))
	require.True(t, Verify("hunter22", b))
}

func TestVerifyRejectsMalformedEncodings(t *testing.T) {
	encoded, err := Hash("hunter22")
	require.NoError(t, err)

	cases := []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=abc,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$!!$aGFzaA",
		strings.TrimSuffix(encoded, encoded[len(encoded)-4:]),
	}
	for _, enc := range cases {
		require.False(t, Verify("hunter22", enc), "encoding %q should not verify", enc)
	}
}
