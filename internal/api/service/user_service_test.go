package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"titlehub/internal/api/models"
)

func newTestUserService() (UserService, *fakeUserRepo) {
	users := newFakeUserRepo()
	return NewUserService(users), users
}

func TestUserCreate(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	user, err := svc.Create(ctx, UserInput{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEmpty(t, user.ID)

	_, err = svc.Create(ctx, UserInput{Username: "alice", Email: "other@example.com"})
	assert.ErrorIs(t, err, ErrNameInUse)
	_, err = svc.Create(ctx, UserInput{Username: "bob", Email: "alice@example.com"})
	assert.ErrorIs(t, err, ErrEmailInUse)
	_, err = svc.Create(ctx, UserInput{Username: "bob", Email: "bob@example.com", Role: "king"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUserUpdateRole(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	_, err := svc.Create(ctx, UserInput{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	role := models.RoleModerator
	user, err := svc.Update(ctx, "alice", UserUpdate{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, user.Role)

	bad := "king"
	_, err = svc.Update(ctx, "alice", UserUpdate{Role: &bad})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUserUpdateEmailUniqueness(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	_, err := svc.Create(ctx, UserInput{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, UserInput{Username: "bob", Email: "bob@example.com"})
	require.NoError(t, err)

	taken := "alice@example.com"
	_, err = svc.Update(ctx, "bob", UserUpdate{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailInUse)

	// keeping your own address is not a conflict
	own := "bob@example.com"
	_, err = svc.Update(ctx, "bob", UserUpdate{Email: &own})
	assert.NoError(t, err)
}

func TestUserUpdateSelfDropsRole(t *testing.T) {
	svc, users := newTestUserService()
	ctx := context.Background()

	actor, err := svc.Create(ctx, UserInput{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	role := models.RoleAdmin
	bio := "hi"
	updated, err := svc.UpdateSelf(ctx, actor, UserUpdate{Role: &role, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, updated.Role)
	assert.Equal(t, "hi", updated.Bio)

	// a privileged caller can change their own role
	admin := &models.User{Username: "root", Email: "root@example.com", Role: models.RoleAdmin}
	require.NoError(t, users.Create(ctx, admin))
	demoted := models.RoleModerator
	updated, err = svc.UpdateSelf(ctx, admin, UserUpdate{Role: &demoted})
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, updated.Role)
}

func TestUserDelete(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	_, err := svc.Create(ctx, UserInput{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice"))
	assert.ErrorIs(t, svc.Delete(ctx, "alice"), ErrNotFound)
	_, err = svc.Get(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}
