package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

var (
	ErrSignatureMismatch = errors.New("signature does not match address")
	ErrInvalidToken      = errors.New("invalid token")
)

// AuthService authenticates wallets by personal_sign signature and issues bearer tokens.
type AuthService interface {
	// VerifySignature reports whether signature over message was produced by address.
	VerifySignature(address, message, signature string) error
	IssueToken(address string) (string, error)
	// VerifyToken returns the lower-cased address the token was issued to.
	VerifyToken(token string) (string, error)
}

var _ AuthService = (*JWTAuthService)(nil)

type JWTAuthService struct {
	secret    []byte
	expiresIn time.Duration
	now       func() time.Time
	log       *logrus.Entry
}

func NewJWTAuthService(secret string, expiresIn time.Duration, log *logrus.Entry) *JWTAuthService {
	return &JWTAuthService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		now:       time.Now,
		log:       log,
	}
}

// RecoverAddress returns the signer of an EIP-191 personal message. v may be 0/1 or 27/28.
func RecoverAddress(message, signature string) (common.Address, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid signature encoding: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("signature must be %d bytes, got %d", crypto.SignatureLength, len(sig))
	}
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

func (s *JWTAuthService) VerifySignature(address, message, signature string) error {
	signer, err := RecoverAddress(message, signature)
	if err != nil {
		return err
	}
	if !strings.EqualFold(signer.Hex(), address) {
		s.log.WithFields(logrus.Fields{"address": address, "signer": signer.Hex()}).Warn("Wallet signature mismatch")
		return ErrSignatureMismatch
	}
	return nil
}

func (s *JWTAuthService) IssueToken(address string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strings.ToLower(address),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiresIn)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (s *JWTAuthService) VerifyToken(token string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !common.IsHexAddress(claims.Subject) {
		return "", fmt.Errorf("%w: subject is not an address", ErrInvalidToken)
	}
	return claims.Subject, nil
}
