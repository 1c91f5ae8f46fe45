package actions

import (
	"context"
	"testing"

	"github.com/geocoder89/mocktail/internal/domain/role"
	"github.com/geocoder89/mocktail/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	rows     map[string]user.User
	createFn func(ctx context.Context, u user.User) (user.User, error)
	deleted  []string
	updated  []user.User
}

func newFakeUsers(rows ...user.User) *fakeUsers {
	f := &fakeUsers{rows: map[string]user.User{}}
	for _, u := range rows {
		f.rows[u.ID] = u
	}
	return f
}

func (f *fakeUsers) List(context.Context) ([]user.User, error) {
	out := make([]user.User, 0, len(f.rows))
	for _, u := range f.rows {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.rows[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) Create(ctx context.Context, u user.User) (user.User, error) {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	f.rows[u.ID] = u
	return u, nil
}

func (f *fakeUsers) Update(_ context.Context, u user.User) (user.User, error) {
	f.updated = append(f.updated, u)
	f.rows[u.ID] = u
	return u, nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	if _, ok := f.rows[id]; !ok {
		return user.ErrNotFound
	}
	f.deleted = append(f.deleted, id)
	delete(f.rows, id)
	return nil
}

func newUsers(store UserStore) *Users {
	a := NewUsers(store, newTestDeps().Deps)
	a.hash = func(p string) (string, error) { return "hashed:" + p, nil }
	return a
}

func TestUsers_SelfDeleteRejected(t *testing.T) {
	store := newFakeUsers(user.User{ID: "root", Role: role.SuperAdmin})
	a := newUsers(store)

	res := a.Delete(as("root", role.SuperAdmin), "root")

	assert.False(t, res.Success)
	assert.Equal(t, CodeSelfAction, res.Code)
	assert.Equal(t, MsgSelfDelete, res.Error)
	assert.Empty(t, store.deleted)
}

func TestUsers_SelfDemotionRejected(t *testing.T) {
	store := newFakeUsers(user.User{ID: "root", Email: "root@mocktail.test", Role: role.SuperAdmin})
	a := newUsers(store)

	for _, target := range []string{"ADMIN", "EDITOR", "bogus"} {
		res := a.Update(as("root", role.SuperAdmin), "root", user.UpdateUserRequest{
			Email: "root@mocktail.test",
			Role:  target,
		})
		assert.Equal(t, MsgSelfDemote, res.Error, "role %s", target)
		assert.Equal(t, CodeSelfAction, res.Code)
	}
	assert.Empty(t, store.updated)

	res := a.Update(as("root", role.SuperAdmin), "root", user.UpdateUserRequest{
		Email: "root@mocktail.test",
		Name:  "Root",
		Role:  "SUPERADMIN",
	})
	require.True(t, res.Success)
	assert.Equal(t, role.SuperAdmin, res.Data.Role)
}

func TestUsers_OnlySuperAdminManages(t *testing.T) {
	store := newFakeUsers(user.User{ID: "victim", Role: role.Editor})
	a := newUsers(store)

	for _, r := range []role.Role{role.Admin, role.Editor} {
		ctx := as("someone", r)

		assert.Equal(t, CodeUnauthorized, a.List(ctx).Code)
		assert.Equal(t, CodeUnauthorized, a.Delete(ctx, "victim").Code)
		assert.Equal(t, CodeUnauthorized, a.Create(ctx, user.CreateUserRequest{}).Code)
		assert.Equal(t, CodeUnauthorized, a.Update(ctx, "victim", user.UpdateUserRequest{}).Code)
	}
	assert.Empty(t, store.deleted)
	assert.Empty(t, store.updated)
}

func TestUsers_Create(t *testing.T) {
	store := newFakeUsers()
	a := newUsers(store)

	res := a.Create(as("root", role.SuperAdmin), user.CreateUserRequest{
		Email:    " New.Editor@Mocktail.test ",
		Password: "long-enough",
		Role:     "EDITOR",
	})

	require.True(t, res.Success, res.Error)
	assert.Equal(t, "new.editor@mocktail.test", res.Data.Email)
	assert.Equal(t, role.Editor, res.Data.Role)
	require.NotNil(t, res.Data.PasswordHash)
	assert.Equal(t, "hashed:long-enough", *res.Data.PasswordHash)
}

func TestUsers_CreateValidationAndConflict(t *testing.T) {
	store := newFakeUsers()
	a := newUsers(store)
	ctx := as("root", role.SuperAdmin)

	res := a.Create(ctx, user.CreateUserRequest{Email: "x@mocktail.test", Password: "short", Role: "EDITOR"})
	assert.Equal(t, CodeValidation, res.Code)
	assert.Equal(t, "password must be at least 8", res.Error)

	res = a.Create(ctx, user.CreateUserRequest{Email: "x@mocktail.test", Password: "long-enough", Role: "OWNER"})
	assert.Equal(t, "role must be one of SUPERADMIN, ADMIN, EDITOR", res.Error)

	store.createFn = func(context.Context, user.User) (user.User, error) {
		return user.User{}, user.ErrEmailTaken
	}
	res = a.Create(ctx, user.CreateUserRequest{Email: "x@mocktail.test", Password: "long-enough", Role: "ADMIN"})
	assert.Equal(t, CodeConflict, res.Code)
	assert.Equal(t, "User with this email already exists", res.Error)
}

func TestUsers_UpdateKeepsPasswordWhenBlank(t *testing.T) {
	store := newFakeUsers(user.User{ID: "ed", Email: "ed@mocktail.test", Role: role.Editor, PasswordHash: strPtr("old")})
	a := newUsers(store)

	res := a.Update(as("root", role.SuperAdmin), "ed", user.UpdateUserRequest{Email: "ed@mocktail.test", Role: "ADMIN"})

	require.True(t, res.Success, res.Error)
	require.Len(t, store.updated, 1)
	assert.Nil(t, store.updated[0].PasswordHash, "blank password must not overwrite the stored hash")
	assert.Equal(t, role.Admin, store.updated[0].Role)
}

func TestUsers_DeleteOther(t *testing.T) {
	store := newFakeUsers(user.User{ID: "ed", Role: role.Editor})
	a := newUsers(store)

	res := a.Delete(as("root", role.SuperAdmin), "ed")
	require.True(t, res.Success)
	assert.Equal(t, []string{"ed"}, store.deleted)

	res = a.Delete(as("root", role.SuperAdmin), "ed")
	assert.Equal(t, CodeNotFound, res.Code)
}
