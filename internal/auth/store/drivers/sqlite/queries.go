package sqlite

import (
	"context"
	"database/sql"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	db dbtx
}

func newQueries(db dbtx) *queries { return &queries{db: db} }

type refreshTokenRow struct {
	TokenID       string
	ClientID      string
	CreatedAt     int64
	ExpiresAt     int64
	Active        bool
	Reason        string
	ReplacedBy    string
	DeactivatedAt sql.NullInt64
}

const refreshTokenColumns = `token_id, client_id, created_at, expires_at, active, reason, replaced_by, deactivated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRefreshToken(s rowScanner) (refreshTokenRow, error) {
	var r refreshTokenRow
	err := s.Scan(
		&r.TokenID,
		&r.ClientID,
		&r.CreatedAt,
		&r.ExpiresAt,
		&r.Active,
		&r.Reason,
		&r.ReplacedBy,
		&r.DeactivatedAt,
	)
	return r, err
}

const insertRefreshToken = `
INSERT INTO refresh_tokens (` + refreshTokenColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (token_id) DO NOTHING`

// InsertRefreshToken reports false when the token id already exists.
func (q *queries) InsertRefreshToken(ctx context.Context, r refreshTokenRow) (bool, error) {
	res, err := q.db.ExecContext(ctx, insertRefreshToken,
		r.TokenID, r.ClientID, r.CreatedAt, r.ExpiresAt, r.Active, r.Reason, r.ReplacedBy, r.DeactivatedAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

const getRefreshToken = `SELECT ` + refreshTokenColumns + ` FROM refresh_tokens WHERE token_id = ?`

func (q *queries) GetRefreshToken(ctx context.Context, tokenID string) (refreshTokenRow, error) {
	return scanRefreshToken(q.db.QueryRowContext(ctx, getRefreshToken, tokenID))
}

const deactivateRefreshToken = `
UPDATE refresh_tokens
SET active = 0, reason = ?, replaced_by = ?, deactivated_at = ?
WHERE token_id = ? AND active = 1`

func (q *queries) DeactivateRefreshToken(ctx context.Context, tokenID, reason, replacedBy string, at int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deactivateRefreshToken, reason, replacedBy, at, tokenID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deactivateClientRefreshTokens = `
UPDATE refresh_tokens
SET active = 0, reason = ?, replaced_by = '', deactivated_at = ?
WHERE client_id = ? AND active = 1`

func (q *queries) DeactivateClientRefreshTokens(ctx context.Context, clientID, reason string, at int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deactivateClientRefreshTokens, reason, at, clientID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteExpiredRefreshTokens = `DELETE FROM refresh_tokens WHERE expires_at < ?`

func (q *queries) DeleteExpiredRefreshTokens(ctx context.Context, now int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteExpiredRefreshTokens, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listActiveRefreshTokens = `
SELECT ` + refreshTokenColumns + `
FROM refresh_tokens
WHERE active = 1 AND expires_at > ?
ORDER BY created_at, token_id`

func (q *queries) ListActiveRefreshTokens(ctx context.Context, now int64) ([]refreshTokenRow, error) {
	rows, err := q.db.QueryContext(ctx, listActiveRefreshTokens, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []refreshTokenRow
	for rows.Next() {
		r, err := scanRefreshToken(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
