package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nvalverde/adminerp/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func testUser() *models.User {
	return &models.User{
		ID:       uuid.New(),
		UserName: "jdoe",
		RoleID:   uuid.New(),
	}
}

func TestAccessVerifier_ValidToken(t *testing.T) {
	t.Parallel()

	user := testUser()
	raw, err := SignAccessToken(user, testSecret, time.Now(), 15*time.Minute)
	require.NoError(t, err)

	claims, err := NewAccessVerifier(testSecret).Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, user.UserName, claims.UserName)
	assert.Equal(t, user.RoleID.String(), claims.RoleID)
}

func TestAccessVerifier_ExpiredToken(t *testing.T) {
	t.Parallel()

	raw, err := SignAccessToken(testUser(), testSecret, time.Now().Add(-time.Hour), 15*time.Minute)
	require.NoError(t, err)

	_, err = NewAccessVerifier(testSecret).Verify(raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAccessVerifier_WrongSecret(t *testing.T) {
	t.Parallel()

	raw, err := SignAccessToken(testUser(), testSecret, time.Now(), 15*time.Minute)
	require.NoError(t, err)

	_, err = NewAccessVerifier([]byte("other-secret")).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessVerifier_Garbage(t *testing.T) {
	t.Parallel()

	_, err := NewAccessVerifier(testSecret).Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

type stubTokenStore struct {
	tokens map[uuid.UUID]*models.RefreshToken
	err    error
	calls  int
}

func (s *stubTokenStore) FindUserByField(ctx context.Context, field, value string) (*models.User, error) {
	return nil, ErrNotFound
}

func (s *stubTokenStore) FindRefreshToken(ctx context.Context, id uuid.UUID) (*models.RefreshToken, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if tok, ok := s.tokens[id]; ok {
		return tok, nil
	}
	return nil, ErrNotFound
}

func (s *stubTokenStore) FindRolePermissions(ctx context.Context, roleID uuid.UUID) ([]string, error) {
	return nil, nil
}

func TestRefreshVerifier_ValidToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	tokenID := uuid.New()
	raw, err := SignRefreshToken(userID, tokenID, testSecret, time.Now(), 24*time.Hour)
	require.NoError(t, err)

	store := &stubTokenStore{tokens: map[uuid.UUID]*models.RefreshToken{
		tokenID: {ID: tokenID, UserID: userID, ExpiresAt: time.Now().Add(24 * time.Hour)},
	}}

	record, err := NewRefreshVerifier(testSecret, store).Verify(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, tokenID, record.ID)
	assert.Equal(t, userID, record.UserID)
	assert.Equal(t, 1, store.calls)
}

func TestRefreshVerifier_UnknownRecordIsRevoked(t *testing.T) {
	t.Parallel()

	raw, err := SignRefreshToken(uuid.New(), uuid.New(), testSecret, time.Now(), 24*time.Hour)
	require.NoError(t, err)

	store := &stubTokenStore{tokens: map[uuid.UUID]*models.RefreshToken{}}
	_, err = NewRefreshVerifier(testSecret, store).Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRefreshVerifier_ExpiredSkipsStorage(t *testing.T) {
	t.Parallel()

	raw, err := SignRefreshToken(uuid.New(), uuid.New(), testSecret, time.Now().Add(-48*time.Hour), 24*time.Hour)
	require.NoError(t, err)

	store := &stubTokenStore{}
	_, err = NewRefreshVerifier(testSecret, store).Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Zero(t, store.calls)
}

func TestRefreshVerifier_StoreErrorPassesThrough(t *testing.T) {
	t.Parallel()

	raw, err := SignRefreshToken(uuid.New(), uuid.New(), testSecret, time.Now(), 24*time.Hour)
	require.NoError(t, err)

	storeErr := errors.New("connection refused")
	store := &stubTokenStore{err: storeErr}
	_, err = NewRefreshVerifier(testSecret, store).Verify(context.Background(), raw)
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrTokenRevoked)
}
