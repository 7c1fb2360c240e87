package api

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Auth mints and validates the HS256 bearer tokens issued on signup and
// login.
type Auth struct {
	secret []byte
	issuer string
	ttl    time.Duration

	parser *jwt.Parser
}

// NewAuth creates a new Auth instance. The secret signs every issued
// token; ttl bounds its lifetime.
func NewAuth(secret []byte, issuer string, ttl time.Duration) *Auth {
	if len(secret) == 0 {
		panic("api.NewAuth: empty signing secret")
	}
	return &Auth{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{"HS256"})),
	}
}

// IssueToken mints a signed token carrying the user id as subject.
func (a *Auth) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": now.Add(a.ttl).Unix(),
	}
	if a.issuer != "" {
		claims["iss"] = a.issuer
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// UserIDFromAuthHeader extracts the user identifier from the Authorization header.
func (a *Auth) UserIDFromAuthHeader(h string) (string, error) {
	if h == "" {
		return "", errMissingAuthorization
	}
	token, err := bearerTokenFromString(h)
	if err != nil {
		return "", err
	}
	return a.UserIDFromBearer(token)
}

// UserIDFromBearer extracts the user identifier from a bearer token
// presented as raw bytes.
func (a *Auth) UserIDFromBearer(token []byte) (string, error) {
	if len(token) == 0 {
		return "", errBadAuthorization
	}

	parsedToken, err := a.parser.Parse(readOnlyString(token), func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return a.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	now := time.Now().Unix()
	if !claims.VerifyExpiresAt(now, true) {
		return "", errors.New("token expired")
	}
	if !claims.VerifyNotBefore(now, false) {
		return "", errors.New("token not valid yet")
	}
	if !claims.VerifyIssuedAt(now, false) {
		return "", errors.New("token used before issued")
	}
	if a.issuer != "" && !claims.VerifyIssuer(a.issuer, false) {
		return "", errors.New("invalid issuer")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("missing sub")
	}

	return sub, nil
}
