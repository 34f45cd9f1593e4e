package services

import (
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// personalSign signs message the way wallets do, with v = 27/28.
func personalSign(t *testing.T, message string) (address, signature string) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27
	return crypto.PubkeyToAddress(key.PublicKey).Hex(), hexutil.Encode(sig)
}

func newTestAuth() *JWTAuthService {
	log, _ := testLogger()
	return NewJWTAuthService("test-secret", time.Hour, log)
}

func TestVerifySignature(t *testing.T) {
	svc := newTestAuth()
	msg := "Sign in to IdeaForge\nNonce: 42"
	addr, sig := personalSign(t, msg)

	assert.NoError(t, svc.VerifySignature(addr, msg, sig))
	assert.NoError(t, svc.VerifySignature(strings.ToLower(addr), msg, sig))

	assert.ErrorIs(t, svc.VerifySignature(addr, msg+"!", sig), ErrSignatureMismatch)

	other, _ := personalSign(t, msg)
	assert.ErrorIs(t, svc.VerifySignature(other, msg, sig), ErrSignatureMismatch)
}

func TestRecoverAddressAcceptsRawRecoveryID(t *testing.T) {
	msg := "hello"
	addr, sig := personalSign(t, msg)
	raw, err := hexutil.Decode(sig)
	require.NoError(t, err)
	raw[crypto.RecoveryIDOffset] -= 27

	got, err := RecoverAddress(msg, hexutil.Encode(raw))
	require.NoError(t, err)
	assert.Equal(t, addr, got.Hex())

	_, err = RecoverAddress(msg, "0x1234")
	assert.Error(t, err)
	_, err = RecoverAddress(msg, "not-hex")
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestAuth()
	addr := "0xAbCdEf0123456789aBcDeF0123456789AbCdEf01"

	token, err := svc.IssueToken(addr)
	require.NoError(t, err)

	sub, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(addr), sub)
}

func TestTokenRejections(t *testing.T) {
	svc := newTestAuth()
	addr := "0x1111111111111111111111111111111111111111"
	token, err := svc.IssueToken(addr)
	require.NoError(t, err)

	_, err = svc.VerifyToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	log, _ := testLogger()
	other := NewJWTAuthService("other-secret", time.Hour, log)
	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	svc := newTestAuth()
	claims := jwt.RegisteredClaims{
		Subject:   "0x1111111111111111111111111111111111111111",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
