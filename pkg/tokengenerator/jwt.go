package tokengenerator

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultBearerTokenExpiry is the lifetime of issued bearer tokens.
const DefaultBearerTokenExpiry = 24 * time.Hour

// Claims carries the public user representation alongside the registered claims.
type Claims struct {
	User interface{} `json:"user,omitempty"`
	jwt.RegisteredClaims
}

// JwtService issues HS256 bearer tokens and exposes a verifier for route
// middleware sharing the same secret.
type JwtService struct {
	secret   string
	issuer   string
	audience string
	expiry   time.Duration
	auth     *jwtauth.JWTAuth
}

// JwtServiceOption is a function that configures a JwtService.
type JwtServiceOption func(*JwtService)

// WithExpiry sets the bearer token expiry duration.
func WithExpiry(expiry time.Duration) JwtServiceOption {
	return func(js *JwtService) {
		js.expiry = expiry
	}
}

// WithIssuer sets the token issuer claim.
func WithIssuer(issuer string) JwtServiceOption {
	return func(js *JwtService) {
		js.issuer = issuer
	}
}

// WithAudience sets the token audience claim.
func WithAudience(audience string) JwtServiceOption {
	return func(js *JwtService) {
		js.audience = audience
	}
}

// NewJwtService creates a new JwtService.
func NewJwtService(secret string, options ...JwtServiceOption) *JwtService {
	js := &JwtService{
		secret: secret,
		expiry: DefaultBearerTokenExpiry,
	}

	for _, option := range options {
		option(js)
	}

	js.auth = jwtauth.New("HS256", []byte(secret), nil)
	return js
}

// GenerateToken creates a signed bearer token for the given subject, with the
// public user representation embedded as the "user" claim.
func (js *JwtService) GenerateToken(subject string, user interface{}) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(js.expiry)

	claims := Claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-5 * time.Minute)),
			Issuer:    js.issuer,
			Subject:   subject,
			ID:        uuid.New().String(),
		},
	}
	if js.audience != "" {
		claims.Audience = jwt.ClaimStrings{js.audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(js.secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// ParseToken parses and validates a token string.
func (js *JwtService) ParseToken(tokenStr string) (*jwt.Token, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(js.secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return token, nil
}

// Auth returns the jwtauth verifier for use with route middleware.
func (js *JwtService) Auth() *jwtauth.JWTAuth {
	return js.auth
}
