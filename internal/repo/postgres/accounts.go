package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/geocoder89/mocktail/internal/domain/user"
	"github.com/geocoder89/mocktail/internal/observability"
	"github.com/georgysavva/scany/v2/pgxscan"
)

var accountColumns = []string{
	"id", "user_id", "type", "provider", "provider_account_id",
	"access_token", "refresh_token", "expires_at", "token_type", "scope", "id_token",
}

type AccountsRepo struct {
	db   DB
	prom *observability.Prom
}

func NewAccountsRepo(db DB, prom *observability.Prom) *AccountsRepo {
	return &AccountsRepo{db: db, prom: prom}
}

// Upsert links a provider account to a user. Signing in again with the same
// provider account refreshes the stored tokens instead of adding a row.
func (r *AccountsRepo) Upsert(ctx context.Context, a user.Account) error {
	query, args, err := psql.Insert("accounts").
		Columns(accountColumns...).
		Values(a.ID, a.UserID, a.Type, a.Provider, a.ProviderAccountID,
			a.AccessToken, a.RefreshToken, a.ExpiresAt, a.TokenType, a.Scope, a.IDToken).
		Suffix(`ON CONFLICT (provider, provider_account_id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = COALESCE(EXCLUDED.refresh_token, accounts.refresh_token),
			expires_at = EXCLUDED.expires_at,
			token_type = EXCLUDED.token_type,
			scope = EXCLUDED.scope,
			id_token = EXCLUDED.id_token`).
		ToSql()
	if err != nil {
		return fmt.Errorf("building upsert query: %w", err)
	}

	err = r.prom.ObserveDB("accounts.upsert", func() error {
		_, err := r.db.Exec(ctx, query, args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("upserting account: %w", err)
	}

	return nil
}

func (r *AccountsRepo) ListByUser(ctx context.Context, userID string) ([]user.Account, error) {
	query, args, err := psql.Select(accountColumns...).From("accounts").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("provider ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	accounts := []user.Account{}
	err = r.prom.ObserveDB("accounts.list_by_user", func() error {
		return pgxscan.Select(ctx, r.db, &accounts, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("scanning accounts: %w", err)
	}

	return accounts, nil
}
