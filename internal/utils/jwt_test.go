package utils

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-fin-tracker/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIssuer = "test-issuer"

func hmacSigner(t *testing.T) *Signer {
	t.Helper()
	signer, err := NewHMACSigner("secret-key")
	require.NoError(t, err)
	return signer
}

func rsaKeyPairPEM(t *testing.T) (privatePEM, publicPEM []byte) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privatePEM = pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})

	return privatePEM, publicPEM
}

func TestGenerateJWTToken_RoundTrip(t *testing.T) {
	signer := hmacSigner(t)
	now := time.Now()

	token, err := GenerateJWTToken(signer, testIssuer, 123, models.TokenKindAccess, 15*time.Minute, now)
	require.NoError(t, err)
	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, int64(123), token.UserID)
	assert.Equal(t, models.TokenKindAccess, token.Kind)
	assert.WithinDuration(t, now.Add(15*time.Minute), token.ExpiresAt, time.Second)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, signer, testIssuer, models.TokenKindAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(123), parsed.UserID)
	assert.Equal(t, models.TokenKindAccess, parsed.Kind)
	assert.Equal(t, token.SignedString, parsed.SignedString)
}

func TestGenerateJWTToken_ClaimsLayout(t *testing.T) {
	signer := hmacSigner(t)

	token, err := GenerateJWTToken(signer, testIssuer, 7, models.TokenKindRefresh, time.Hour, time.Now())
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token.SignedString, claims)
	require.NoError(t, err)

	assert.Equal(t, "7", claims["sub"])
	assert.Equal(t, "refresh", claims["type"])
	assert.Equal(t, testIssuer, claims["iss"])
	assert.Contains(t, claims, "exp")
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	signer := hmacSigner(t)

	tests := []struct {
		name     string
		signer   *Signer
		issuer   string
		duration time.Duration
	}{
		{"nil signer", nil, testIssuer, time.Hour},
		{"empty issuer", signer, "", time.Hour},
		{"zero duration", signer, testIssuer, 0},
		{"negative duration", signer, testIssuer, -time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.signer, tt.issuer, 1, models.TokenKindAccess, tt.duration, time.Now())
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	signer := hmacSigner(t)

	token, err := GenerateJWTToken(signer, testIssuer, 1, models.TokenKindAccess, time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, signer, testIssuer, models.TokenKindAccess)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateAndParseJWTToken_WrongKey(t *testing.T) {
	token, err := GenerateJWTToken(hmacSigner(t), testIssuer, 1, models.TokenKindAccess, time.Hour, time.Now())
	require.NoError(t, err)

	other, err := NewHMACSigner("another-key")
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, other, testIssuer, models.TokenKindAccess)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	signer := hmacSigner(t)
	token, err := GenerateJWTToken(signer, "someone-else", 1, models.TokenKindAccess, time.Hour, time.Now())
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, signer, testIssuer, models.TokenKindAccess)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestValidateAndParseJWTToken_WrongKind(t *testing.T) {
	signer := hmacSigner(t)
	token, err := GenerateJWTToken(signer, testIssuer, 1, models.TokenKindRefresh, time.Hour, time.Now())
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, signer, testIssuer, models.TokenKindAccess)
	assert.ErrorIs(t, err, ErrUnexpectedTokenKind)
}

func TestValidateAndParseJWTToken_MissingExpiry(t *testing.T) {
	signer := hmacSigner(t)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: testIssuer, Subject: "1"},
		Type:             models.TokenKindAccess,
	}).SignedString([]byte("secret-key"))
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(raw, signer, testIssuer, models.TokenKindAccess)
	assert.ErrorIs(t, err, jwt.ErrTokenRequiredClaimMissing)
}

func TestValidateAndParseJWTToken_MissingSubject(t *testing.T) {
	signer := hmacSigner(t)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Type: models.TokenKindAccess,
	}).SignedString([]byte("secret-key"))
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(raw, signer, testIssuer, models.TokenKindAccess)
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_Malformed(t *testing.T) {
	_, err := ValidateAndParseJWTToken("not.a.token", hmacSigner(t), testIssuer, models.TokenKindAccess)
	assert.ErrorIs(t, err, jwt.ErrTokenMalformed)
}

func TestRSASigner_RoundTrip(t *testing.T) {
	privatePEM, publicPEM := rsaKeyPairPEM(t)

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")
	require.NoError(t, os.WriteFile(privatePath, privatePEM, 0o600))
	require.NoError(t, os.WriteFile(publicPath, publicPEM, 0o600))

	signer, err := LoadRSASigner(privatePath, publicPath)
	require.NoError(t, err)
	assert.Equal(t, "RS256", signer.Algorithm())

	token, err := GenerateJWTToken(signer, testIssuer, 5, models.TokenKindAccess, time.Hour, time.Now())
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, signer, testIssuer, models.TokenKindAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(5), parsed.UserID)
}

func TestRSASigner_RejectsHMACToken(t *testing.T) {
	privatePEM, publicPEM := rsaKeyPairPEM(t)
	rsaSigner, err := NewRSASigner(privatePEM, publicPEM)
	require.NoError(t, err)

	token, err := GenerateJWTToken(hmacSigner(t), testIssuer, 5, models.TokenKindAccess, time.Hour, time.Now())
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, rsaSigner, testIssuer, models.TokenKindAccess)
	assert.Error(t, err)
}

func TestNewRSASigner_InvalidPEM(t *testing.T) {
	_, err := NewRSASigner([]byte("garbage"), []byte("garbage"))
	assert.Error(t, err)
}

func TestNewHMACSigner_EmptySecret(t *testing.T) {
	_, err := NewHMACSigner("")
	assert.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "extra spaces", header: "  Bearer   abc  ", want: "abc"},
		{name: "empty", header: "", wantErr: true},
		{name: "scheme only", header: "Bearer", wantErr: true},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantErr: true},
		{name: "too many parts", header: "Bearer a b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAuthorizationHeader)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
