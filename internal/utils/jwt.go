package utils

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-fin-tracker/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidAuthorizationHeader is returned by ParseBearerToken when the
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")
	// ErrUnexpectedTokenKind is returned when a refresh token is presented
	// where an access token is expected, or vice versa.
	ErrUnexpectedTokenKind = errors.New("unexpected token kind")
)

// Signer holds the key material used to sign and verify JWT tokens.
//
// HMAC signers use one shared secret (HS256); RSA signers sign with the
// private key and verify with the public key (RS256).
type Signer struct {
	method    jwt.SigningMethod
	signKey   any
	verifyKey any
}

// NewHMACSigner returns an HS256 [Signer] for the given secret.
func NewHMACSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("empty HMAC secret")
	}

	return &Signer{
		method:    jwt.SigningMethodHS256,
		signKey:   []byte(secret),
		verifyKey: []byte(secret),
	}, nil
}

// NewRSASigner returns an RS256 [Signer] for a PEM encoded key pair.
func NewRSASigner(privatePEM, publicPEM []byte) (*Signer, error) {
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("error parsing RSA private key: %w", err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicPEM)
	if err != nil {
		return nil, fmt.Errorf("error parsing RSA public key: %w", err)
	}

	return newRSASigner(privateKey, publicKey), nil
}

// LoadRSASigner reads a PEM key pair from disk and returns an RS256 [Signer].
func LoadRSASigner(privateKeyPath, publicKeyPath string) (*Signer, error) {
	privatePEM, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("error reading RSA private key: %w", err)
	}

	publicPEM, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("error reading RSA public key: %w", err)
	}

	return NewRSASigner(privatePEM, publicPEM)
}

func newRSASigner(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey) *Signer {
	return &Signer{
		method:    jwt.SigningMethodRS256,
		signKey:   privateKey,
		verifyKey: publicKey,
	}
}

// Algorithm returns the JWS "alg" value of the signer.
func (s *Signer) Algorithm() string {
	return s.method.Alg()
}

// GenerateJWTToken creates a signed JWT token with the given parameters.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a string
//   - IssuedAt  (iat): now
//   - ExpiresAt (exp): now plus tokenDuration
//   - type           : the token kind (access or refresh)
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken(signer, "fin-tracker", 42, models.TokenKindAccess, 15*time.Minute, time.Now())
func GenerateJWTToken(signer *Signer, issuer string, userID int64, kind models.TokenKind, tokenDuration time.Duration, now time.Time) (models.Token, error) {
	if signer == nil || issuer == "" || tokenDuration <= 0 {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	expiresAt := now.Add(tokenDuration)
	claims := &models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Type: kind,
	}

	tokenString, err := jwt.NewWithClaims(signer.method, claims).SignedString(signer.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{
		SignedString: tokenString,
		UserID:       userID,
		Kind:         kind,
		IssuedAt:     claims.IssuedAt.Time,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - Signature verification with the signer's key, rejecting any other algorithm
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim presence and check
//   - Subject (sub) claim presence and conversion to int64 UserID
//   - "type" claim equal to expectedKind
func ValidateAndParseJWTToken(tokenString string, signer *Signer, tokenIssuer string, expectedKind models.TokenKind) (models.Token, error) {
	claims := &models.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return signer.verifyKey, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{signer.method.Alg()}),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	userID, err := claims.UserID()
	if err != nil {
		return models.Token{}, err
	}

	if claims.Type != expectedKind {
		return models.Token{}, fmt.Errorf("%w: got %q, want %q", ErrUnexpectedTokenKind, claims.Type, expectedKind)
	}

	token := models.Token{
		SignedString: tokenString,
		UserID:       userID,
		Kind:         claims.Type,
		ExpiresAt:    claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		token.IssuedAt = claims.IssuedAt.Time
	}

	return token, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}
