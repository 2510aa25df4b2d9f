package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dotojr123/ads-agent-base/internal/crypto"
	"github.com/dotojr123/ads-agent-base/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const adAccountColumns = `id, workspace_id, platform, name, external_id, access_token, created_at, updated_at`

func scanAdAccount(row pgx.Row) (domain.AdAccount, error) {
	var acc domain.AdAccount
	err := row.Scan(
		&acc.ID,
		&acc.WorkspaceID,
		&acc.Platform,
		&acc.Name,
		&acc.ExternalID,
		&acc.AccessToken,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		return domain.AdAccount{}, err
	}
	return acc, nil
}

// UpsertAdAccount encrypts the token and stores the account. Reconnecting
// the same external account on the same platform replaces the token.
func (s *DBStore) UpsertAdAccount(ctx context.Context, arg UpsertAdAccountParams) (domain.AdAccount, error) {
	encryptedToken, err := crypto.Encrypt([]byte(arg.AccessToken))
	if err != nil {
		return domain.AdAccount{}, fmt.Errorf("could not encrypt access token: %w", err)
	}

	query := `
    INSERT INTO ad_accounts (workspace_id, platform, name, external_id, access_token)
    VALUES ($1, $2, $3, $4, $5)
    ON CONFLICT (workspace_id, platform, external_id)
    DO UPDATE SET
        name = EXCLUDED.name,
        access_token = EXCLUDED.access_token,
        updated_at = now()
    RETURNING ` + adAccountColumns + `;
    `

	row := s.db.QueryRow(ctx, query,
		arg.WorkspaceID,
		arg.Platform,
		arg.Name,
		arg.ExternalID,
		encryptedToken,
	)

	acc, err := scanAdAccount(row)
	if err != nil {
		return domain.AdAccount{}, fmt.Errorf("db scan error: %w", err)
	}
	return acc, nil
}

// GetAdAccountsForWorkspace lists a workspace's connected accounts.
func (s *DBStore) GetAdAccountsForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.AdAccount, error) {
	query := `
    SELECT ` + adAccountColumns + `
    FROM ad_accounts
    WHERE workspace_id = $1
    ORDER BY created_at DESC;
    `

	rows, err := s.db.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("db query error: %w", err)
	}
	defer rows.Close()

	var accounts []domain.AdAccount
	for rows.Next() {
		acc, err := scanAdAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("db scan error: %w", err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

// GetAdAccountForPlatform returns the workspace's account for the platform,
// or ErrNotFound when none is connected. The most recently connected
// account wins when there are several.
func (s *DBStore) GetAdAccountForPlatform(ctx context.Context, workspaceID uuid.UUID, platform domain.Platform) (domain.AdAccount, error) {
	query := `
    SELECT ` + adAccountColumns + `
    FROM ad_accounts
    WHERE workspace_id = $1 AND platform = $2
    ORDER BY created_at DESC
    LIMIT 1;
    `

	acc, err := scanAdAccount(s.db.QueryRow(ctx, query, workspaceID, platform))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.AdAccount{}, ErrNotFound
	}
	if err != nil {
		return domain.AdAccount{}, fmt.Errorf("db scan error: %w", err)
	}
	return acc, nil
}

// DeleteAdAccount removes the account, scoped to the workspace.
func (s *DBStore) DeleteAdAccount(ctx context.Context, accountID, workspaceID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `
    DELETE FROM ad_accounts WHERE id = $1 AND workspace_id = $2;
    `, accountID, workspaceID)
	if err != nil {
		return fmt.Errorf("db exec error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DecryptedToken returns the account's plaintext access token.
func DecryptedToken(acc domain.AdAccount) (string, error) {
	plaintext, err := crypto.Decrypt(acc.AccessToken)
	if err != nil {
		return "", fmt.Errorf("could not decrypt access token: %w", err)
	}
	return string(plaintext), nil
}
