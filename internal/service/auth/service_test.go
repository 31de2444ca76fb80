package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beautycare/scheduling-api/internal/model"
	"github.com/beautycare/scheduling-api/pkg/auth"
	apperrors "github.com/beautycare/scheduling-api/pkg/errors"
)

type fakeUserRepo struct {
	users map[string]string // username -> password
}

func (r *fakeUserRepo) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	if pw, ok := r.users[username]; ok && pw == password {
		return &model.User{ID: 1, Username: username, Role: "admin"}, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) List(ctx context.Context, filters *model.UserFilters) ([]*model.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Get(ctx context.Context, id int) (*model.User, error) { return nil, nil }

func (r *fakeUserRepo) Create(ctx context.Context, username, passwordHash, role string) (int, error) {
	return 0, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, id int, username, passwordHash, role *string) (int, error) {
	return 0, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int) (int, error) { return 0, nil }

func newTestService() *Service {
	jwtSvc := auth.NewJWTService("test-secret", time.Hour, "scheduling-api")
	return NewService(&fakeUserRepo{users: map[string]string{"ana": "secret123"}}, jwtSvc)
}

func TestLoginIssuesToken(t *testing.T) {
	svc := newTestService()

	resp, err := svc.Login(context.Background(), &model.LoginRequest{Username: "ana", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.UserID)
	assert.Equal(t, "ana", resp.Username)
	assert.NotEmpty(t, resp.Token)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService()

	_, err := svc.Login(context.Background(), &model.LoginRequest{Username: "ana", Password: "wrong"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
}
