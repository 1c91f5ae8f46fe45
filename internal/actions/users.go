package actions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/geocoder89/mocktail/internal/domain/role"
	"github.com/geocoder89/mocktail/internal/domain/user"
	"github.com/geocoder89/mocktail/internal/security"
	"github.com/google/uuid"
)

const msgEmailTaken = "User with this email already exists"

type UserStore interface {
	List(ctx context.Context) ([]user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	Create(ctx context.Context, u user.User) (user.User, error)
	Update(ctx context.Context, u user.User) (user.User, error)
	Delete(ctx context.Context, id string) error
}

// Users manages dashboard accounts. Only SUPERADMIN may use it.
type Users struct {
	store UserStore
	deps  Deps
	hash  func(string) (string, error)
}

func NewUsers(store UserStore, deps Deps) *Users {
	return &Users{store: store, deps: deps, hash: security.HashPassword}
}

func (a *Users) List(ctx context.Context) Result[[]user.User] {
	const action = "users.list"

	if _, ok := authorize(ctx, role.CanManageUsers); !ok {
		return finish(a.deps, action, Unauthorized[[]user.User]())
	}

	users, err := a.store.List(ctx)
	if err != nil {
		return finish(a.deps, action, storeFailure[[]user.User](ctx, a.deps, action, err))
	}

	return finish(a.deps, action, OK(users))
}

func (a *Users) Create(ctx context.Context, req user.CreateUserRequest) Result[user.User] {
	const action = "users.create"

	if _, ok := authorize(ctx, role.CanManageUsers); !ok {
		return finish(a.deps, action, Unauthorized[user.User]())
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if msg := Validate(req); msg != "" {
		return finish(a.deps, action, Invalid[user.User](msg))
	}

	hash, err := a.hash(req.Password)
	if err != nil {
		return finish(a.deps, action, storeFailure[user.User](ctx, a.deps, action, err))
	}

	now := time.Now().UTC()
	u := user.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(req.Email),
		Name:         optionalString(req.Name),
		PasswordHash: &hash,
		Role:         role.Role(req.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := a.store.Create(ctx, u)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return finish(a.deps, action, Conflict[user.User](msgEmailTaken))
		}
		return finish(a.deps, action, storeFailure[user.User](ctx, a.deps, action, err))
	}

	return finish(a.deps, action, OK(created))
}

func (a *Users) Update(ctx context.Context, id string, req user.UpdateUserRequest) Result[user.User] {
	const action = "users.update"

	s, ok := a.deps.session(ctx)
	if !ok {
		return finish(a.deps, action, Unauthorized[user.User]())
	}

	// a SUPERADMIN editing themselves keeps SUPERADMIN
	if s.UserID == id && s.Role == role.SuperAdmin && req.Role != string(role.SuperAdmin) {
		return finish(a.deps, action, Fail[user.User](CodeSelfAction, MsgSelfDemote))
	}

	if !role.CanManageUsers(s.Role) {
		return finish(a.deps, action, Unauthorized[user.User]())
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if msg := Validate(req); msg != "" {
		return finish(a.deps, action, Invalid[user.User](msg))
	}

	existing, err := a.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return finish(a.deps, action, NotFound[user.User]("User not found"))
		}
		return finish(a.deps, action, storeFailure[user.User](ctx, a.deps, action, err))
	}

	existing.Email = strings.ToLower(req.Email)
	existing.Name = optionalString(req.Name)
	existing.Role = role.Role(req.Role)
	existing.PasswordHash = nil

	if req.Password != "" {
		hash, err := a.hash(req.Password)
		if err != nil {
			return finish(a.deps, action, storeFailure[user.User](ctx, a.deps, action, err))
		}
		existing.PasswordHash = &hash
	}

	updated, err := a.store.Update(ctx, existing)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			return finish(a.deps, action, NotFound[user.User]("User not found"))
		case errors.Is(err, user.ErrEmailTaken):
			return finish(a.deps, action, Conflict[user.User](msgEmailTaken))
		}
		return finish(a.deps, action, storeFailure[user.User](ctx, a.deps, action, err))
	}

	return finish(a.deps, action, OK(updated))
}

func (a *Users) Delete(ctx context.Context, id string) Result[bool] {
	const action = "users.delete"

	s, ok := a.deps.session(ctx)
	if !ok {
		return finish(a.deps, action, Unauthorized[bool]())
	}

	if s.UserID == id {
		return finish(a.deps, action, Fail[bool](CodeSelfAction, MsgSelfDelete))
	}

	if !role.CanManageUsers(s.Role) {
		return finish(a.deps, action, Unauthorized[bool]())
	}

	if err := a.store.Delete(ctx, id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return finish(a.deps, action, NotFound[bool]("User not found"))
		}
		return finish(a.deps, action, storeFailure[bool](ctx, a.deps, action, err))
	}

	return finish(a.deps, action, OK(true))
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
