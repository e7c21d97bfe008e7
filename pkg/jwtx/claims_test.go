package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T, kid string) (*EdDSASigner, *KeySet) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	keys := NewKeySet()
	keys.Add(kid, pub)

	return NewSignerEdDSAFromKey(kid, priv), keys
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	signer, keys := newTestSigner(t, "test-key")
	verifier := NewCommonEdDSA(keys, "admissions-test", nil)

	claims := NewAccessClaims(
		"01JMFAKEACTOR0000000000000",
		"counselor",
		"tenant-1",
		[]string{"team-a", "team-b"},
		DefaultAccessTokenTTL,
		"admissions-test",
		nil,
		time.Now().UTC(),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "01JMFAKEACTOR0000000000000", got.Subject)
	require.Equal(t, "counselor", got.Role)
	require.Equal(t, "tenant-1", got.TenantID)
	require.Equal(t, []string{"team-a", "team-b"}, got.TeamIDs)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	signer, keys := newTestSigner(t, "test-key")
	verifier := NewCommonEdDSA(keys, "expected-issuer", nil)

	claims := NewAccessClaims(
		"sub", "admin", "tenant-1", nil,
		DefaultAccessTokenTTL, "other-issuer", nil, time.Now().UTC(),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	signer, keys := newTestSigner(t, "test-key")
	verifier := NewCommonEdDSA(keys, "", nil)

	claims := NewAccessClaims(
		"sub", "admin", "tenant-1", nil,
		time.Minute, "", nil, time.Now().UTC().Add(-time.Hour),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsUnknownKid(t *testing.T) {
	t.Parallel()

	signer, _ := newTestSigner(t, "key-a")
	_, otherKeys := newTestSigner(t, "key-b")
	verifier := NewCommonEdDSA(otherKeys, "", nil)

	claims := NewAccessClaims(
		"sub", "admin", "tenant-1", nil,
		DefaultAccessTokenTTL, "", nil, time.Now().UTC(),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestValidateAudience(t *testing.T) {
	t.Parallel()

	c := NewAccessClaims(
		"sub", "admin", "tenant-1", nil,
		DefaultAccessTokenTTL, "", []string{"admissions"}, time.Now().UTC(),
	)

	require.NoError(t, c.ValidateAudience(nil))
	require.NoError(t, c.ValidateAudience([]string{"admissions", "other"}))
	require.ErrorIs(t, c.ValidateAudience([]string{"other"}), ErrAudience)
}
