package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/geocoder89/mocktail/internal/domain/role"
	"github.com/geocoder89/mocktail/internal/domain/user"
)

// UsersRepo keeps users in a map. It backs local runs without Postgres and
// the HTTP integration tests.
type UsersRepo struct {
	mu    sync.RWMutex
	items map[string]user.User // {"id": user}
}

func NewUsersRepo(seed ...user.User) *UsersRepo {
	r := &UsersRepo{items: make(map[string]user.User)}
	for _, u := range seed {
		u.Email = strings.ToLower(u.Email)
		r.items[u.ID] = u
	}
	return r
}

func (r *UsersRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.byEmail(email); ok {
		return u, nil
	}
	return user.User{}, user.ErrNotFound
}

func (r *UsersRepo) RoleByEmail(ctx context.Context, email string) (role.Role, error) {
	u, err := r.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

func (r *UsersRepo) GetByID(_ context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *UsersRepo) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.items))
	for _, u := range r.items {
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b user.User) int { return a.CreatedAt.Compare(b.CreatedAt) })

	return out, nil
}

func (r *UsersRepo) Create(_ context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if _, taken := r.byEmail(u.Email); taken {
		return user.User{}, user.ErrEmailTaken
	}

	r.items[u.ID] = u
	return u, nil
}

func (r *UsersRepo) Update(_ context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.items[u.ID]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	if other, taken := r.byEmail(u.Email); taken && other.ID != u.ID {
		return user.User{}, user.ErrEmailTaken
	}

	cur.Email = strings.ToLower(strings.TrimSpace(u.Email))
	cur.Name = u.Name
	cur.Role = u.Role
	cur.UpdatedAt = u.UpdatedAt
	if u.HasPassword() {
		cur.PasswordHash = u.PasswordHash
	}

	r.items[u.ID] = cur
	return cur, nil
}

func (r *UsersRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return user.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// byEmail expects the caller to hold the lock.
func (r *UsersRepo) byEmail(email string) (user.User, bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.items {
		if u.Email == email {
			return u, true
		}
	}
	return user.User{}, false
}

// AccountsRepo records OAuth links.
type AccountsRepo struct {
	mu    sync.Mutex
	items map[string]user.Account // {"provider:accountID": account}
}

func NewAccountsRepo() *AccountsRepo {
	return &AccountsRepo{items: make(map[string]user.Account)}
}

// Upsert links a provider account. A repeated link keeps the stored id and
// user and only refreshes the tokens.
func (r *AccountsRepo) Upsert(_ context.Context, a user.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := a.Provider + ":" + a.ProviderAccountID
	if prev, ok := r.items[key]; ok {
		a.ID = prev.ID
		a.UserID = prev.UserID
		a.Type = prev.Type
		if a.RefreshToken == nil {
			a.RefreshToken = prev.RefreshToken
		}
	}
	r.items[key] = a

	return nil
}

func (r *AccountsRepo) ListByUser(_ context.Context, userID string) ([]user.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []user.Account{}
	for _, a := range r.items {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b user.Account) int { return strings.Compare(a.Provider, b.Provider) })

	return out, nil
}
