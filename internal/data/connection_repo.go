package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/skipflow/skipflow-go/internal/data/cryptoutil"
	"github.com/skipflow/skipflow-go/internal/data/pgxutil"
	"github.com/skipflow/skipflow-go/internal/domain/model"
)

// ConnectionRepo stores per-tenant external accounting credentials. Token
// values are encrypted before they reach the database and decrypted on read.
type ConnectionRepo struct {
	DB        *sql.DB
	Encryptor cryptoutil.Encryptor
}

// NewConnectionRepo creates a new ConnectionRepo.
func NewConnectionRepo(db *sql.DB, enc cryptoutil.Encryptor) *ConnectionRepo {
	return &ConnectionRepo{DB: db, Encryptor: enc}
}

// Get retrieves and decrypts a tenant's accounting connection.
func (r *ConnectionRepo) Get(ctx context.Context, tenantID string) (*model.AccountingConnection, error) {
	var (
		out          model.AccountingConnection
		accessToken  string
		refreshToken string
	)
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `
			SELECT tenant_id, access_token, refresh_token, expires_at, org_id, updated_at
			FROM accounting_connections
			WHERE tenant_id = $1
		`, tenantID).Scan(
			&out.TenantID, &accessToken, &refreshToken,
			&out.ExpiresAt, &out.OrgID, &out.UpdatedAt,
		)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrConnectionNotFound
		}
		return nil, fmt.Errorf("failed to get accounting connection: %w", err)
	}

	access, err := r.Encryptor.Decrypt(accessToken)
	if err != nil {
		return nil, fmt.Errorf("decrypt access token: %w", err)
	}
	refresh, err := r.Encryptor.Decrypt(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("decrypt refresh token: %w", err)
	}
	out.AccessToken = string(access)
	out.RefreshToken = string(refresh)
	return &out, nil
}

// Save encrypts and upserts the connection. Callers persist refreshed
// credentials before using them, so a crash after refresh never strands a
// consumed refresh token.
func (r *ConnectionRepo) Save(ctx context.Context, conn *model.AccountingConnection) error {
	if conn == nil {
		return errors.New("accounting connection is required")
	}
	access, err := r.Encryptor.Encrypt([]byte(conn.AccessToken))
	if err != nil {
		return fmt.Errorf("encrypt access token: %w", err)
	}
	refresh, err := r.Encryptor.Encrypt([]byte(conn.RefreshToken))
	if err != nil {
		return fmt.Errorf("encrypt refresh token: %w", err)
	}

	return pgxutil.WithPgxConn(ctx, r.DB, func(pc *pgx.Conn) error {
		_, execErr := pc.Exec(ctx, `
			INSERT INTO accounting_connections (
				tenant_id, access_token, refresh_token, expires_at, org_id, updated_at
			) VALUES ($1, $2, $3, $4, $5, NOW())
			ON CONFLICT (tenant_id) DO UPDATE SET
				access_token = EXCLUDED.access_token,
				refresh_token = EXCLUDED.refresh_token,
				expires_at = EXCLUDED.expires_at,
				org_id = EXCLUDED.org_id,
				updated_at = NOW()
		`, conn.TenantID, access, refresh, conn.ExpiresAt.UTC(), conn.OrgID)
		if execErr != nil {
			return fmt.Errorf("failed to save accounting connection: %w", execErr)
		}
		return nil
	})
}
