package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nvalverde/adminerp/internal/models"
)

// AccessClaims is the validated claim set of an access token.
type AccessClaims struct {
	UserName string `json:"userName"`
	RoleID   string `json:"roleId"`
	jwt.RegisteredClaims
}

// RefreshClaims is the validated claim set of a refresh token. IDRefreshToken
// is the primary key of the persisted RefreshToken row.
type RefreshClaims struct {
	IDRefreshToken string `json:"idRefreshToken"`
	jwt.RegisteredClaims
}

// SignAccessToken mints an HS256 access token for the user.
func SignAccessToken(user *models.User, secret []byte, now time.Time, expiry time.Duration) (string, error) {
	claims := AccessClaims{
		UserName: user.UserName,
		RoleID:   user.RoleID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// SignRefreshToken mints an HS256 refresh token carrying the persisted row id.
func SignRefreshToken(userID, tokenID uuid.UUID, secret []byte, now time.Time, expiry time.Duration) (string, error) {
	claims := RefreshClaims{
		IDRefreshToken: tokenID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseHS256(raw string, claims jwt.Claims, secret []byte) error {
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrInvalidToken
	}
	if !tkn.Valid {
		return ErrInvalidToken
	}
	return nil
}

// checkExpiry re-validates the expiry claim against the current clock. The
// library already enforces exp during parsing; this second pass guards the
// clock-skew and claim-tampering edge cases.
func checkExpiry(exp *jwt.NumericDate) error {
	if exp == nil {
		return ErrInvalidToken
	}
	if exp.Before(time.Now()) {
		return ErrTokenExpired
	}
	return nil
}

// AccessVerifier validates access tokens. It is stateless: validity is purely
// cryptographic plus expiry, so no storage is consulted.
type AccessVerifier struct {
	secret []byte
}

func NewAccessVerifier(secret []byte) *AccessVerifier {
	return &AccessVerifier{secret: secret}
}

func (v *AccessVerifier) Verify(raw string) (*AccessClaims, error) {
	var claims AccessClaims
	if err := parseHS256(raw, &claims, v.secret); err != nil {
		return nil, err
	}
	if err := checkExpiry(claims.ExpiresAt); err != nil {
		return nil, err
	}
	if claims.Subject == "" || claims.RoleID == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// RefreshVerifier validates refresh tokens. Validity requires both a correct
// signature and a live, non-revoked persisted record, so revocation takes
// effect immediately even before natural expiry.
type RefreshVerifier struct {
	secret []byte
	store  Store
}

func NewRefreshVerifier(secret []byte, store Store) *RefreshVerifier {
	return &RefreshVerifier{secret: secret, store: store}
}

// Verify checks signature, claim shape and expiry, then resolves the token id
// against storage. A missing or soft-deleted record yields ErrTokenRevoked;
// storage failures are returned as-is so callers can surface them as internal
// errors rather than authentication failures.
func (v *RefreshVerifier) Verify(ctx context.Context, raw string) (*models.RefreshToken, error) {
	var claims RefreshClaims
	if err := parseHS256(raw, &claims, v.secret); err != nil {
		return nil, err
	}
	tokenID, err := uuid.Parse(claims.IDRefreshToken)
	if err != nil || tokenID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	if err := checkExpiry(claims.ExpiresAt); err != nil {
		return nil, err
	}

	record, err := v.store.FindRefreshToken(ctx, tokenID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrTokenRevoked
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}
