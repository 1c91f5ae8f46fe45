package memory

import (
	"context"
	"testing"
	"time"

	"github.com/geocoder89/mocktail/internal/domain/product"
	"github.com/geocoder89/mocktail/internal/domain/role"
	"github.com/geocoder89/mocktail/internal/domain/user"
	"github.com/stretchr/testify/require"
)

func TestUsersRepo_EmailIsCaseInsensitiveAndUnique(t *testing.T) {
	ctx := context.Background()
	r := NewUsersRepo()

	_, err := r.Create(ctx, user.User{ID: "u1", Email: "Ed@Mocktail.test", Role: role.Editor})
	require.NoError(t, err)

	got, err := r.GetByEmail(ctx, " ed@MOCKTAIL.test ")
	require.NoError(t, err)
	require.Equal(t, "u1", got.ID)

	_, err = r.Create(ctx, user.User{ID: "u2", Email: "ED@mocktail.test"})
	require.ErrorIs(t, err, user.ErrEmailTaken)

	rl, err := r.RoleByEmail(ctx, "ed@mocktail.test")
	require.NoError(t, err)
	require.Equal(t, role.Editor, rl)
}

func TestUsersRepo_UpdateKeepsHashWithoutNewPassword(t *testing.T) {
	ctx := context.Background()
	hash := "$2a$12$abc"
	r := NewUsersRepo(user.User{ID: "u1", Email: "a@mocktail.test", PasswordHash: &hash, Role: role.Editor})

	updated, err := r.Update(ctx, user.User{ID: "u1", Email: "a@mocktail.test", Role: role.Admin})
	require.NoError(t, err)
	require.Equal(t, role.Admin, updated.Role)
	require.True(t, updated.HasPassword())

	require.ErrorIs(t, r.Delete(ctx, "missing"), user.ErrNotFound)
	require.NoError(t, r.Delete(ctx, "u1"))
	_, err = r.GetByID(ctx, "u1")
	require.ErrorIs(t, err, user.ErrNotFound)
}

func TestProductsRepo_SlugAndOrdering(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	r := NewProductsRepo(
		product.Product{ID: "p1", Slug: "a", SortOrder: 2, CreatedAt: now},
		product.Product{ID: "p2", Slug: "b", SortOrder: 1, CreatedAt: now},
	)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"p2", "p1"}, []string{list[0].ID, list[1].ID})

	_, err = r.Create(ctx, product.Product{ID: "p3", Slug: "a"})
	require.ErrorIs(t, err, product.ErrSlugTaken)

	deleted, err := r.Delete(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "a", deleted.Slug)

	_, err = r.GetBySlug(ctx, "a")
	require.ErrorIs(t, err, product.ErrNotFound)
}

func TestAccountsRepo_UpsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	r := NewAccountsRepo()

	acc := user.Account{ID: "a1", UserID: "u1", Type: "oauth", Provider: "google", ProviderAccountID: "10987"}
	require.NoError(t, r.Upsert(ctx, acc))

	relinked := acc
	relinked.ID = "a2"
	relinked.UserID = "u9"
	relinked.AccessToken = strPtr("at-2")
	require.NoError(t, r.Upsert(ctx, relinked))

	got, err := r.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "a1", got[0].ID)
	require.Equal(t, "at-2", *got[0].AccessToken)

	moved, err := r.ListByUser(ctx, "u9")
	require.NoError(t, err)
	require.Empty(t, moved)

	none, err := r.ListByUser(ctx, "u2")
	require.NoError(t, err)
	require.Empty(t, none)
}

func strPtr(s string) *string { return &s }
