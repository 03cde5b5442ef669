// Package repository implements data persistence for access grants.
// Repositories support both PostgreSQL and MySQL. Single-use redemption is
// enforced by the database itself (conditional update on the used flag), so
// the guarantee holds across horizontally scaled process instances.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/allisson/grants/internal/database"
	apperrors "github.com/allisson/grants/internal/errors"
	grantsDomain "github.com/allisson/grants/internal/grants/domain"
)

const pgUniqueViolation = "23505"

// PostgreSQLGrantRepository implements AccessGrant persistence for PostgreSQL.
type PostgreSQLGrantRepository struct {
	db *sql.DB
}

// Create inserts a new access grant. The unique constraints on payment_id and
// token make this an insert-if-absent: a redelivered payment event maps to
// ErrDuplicatePayment and a token collision to ErrTokenCollision.
func (p *PostgreSQLGrantRepository) Create(ctx context.Context, grant *grantsDomain.AccessGrant) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO access_grants (id, token, owner_email, payment_id, tier, issued_at, expires_at, used, used_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(
		ctx,
		query,
		grant.ID,
		grant.Token,
		grant.OwnerEmail,
		grant.PaymentID,
		grant.Tier,
		grant.IssuedAt,
		grant.ExpiresAt,
		grant.Used,
		grant.UsedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			if pqErr.Constraint == "access_grants_token_key" {
				return grantsDomain.ErrTokenCollision
			}
			return grantsDomain.ErrDuplicatePayment
		}
		return apperrors.Wrap(err, "failed to create grant")
	}
	return nil
}

// GetByToken retrieves a grant by its token.
func (p *PostgreSQLGrantRepository) GetByToken(
	ctx context.Context,
	token string,
) (*grantsDomain.AccessGrant, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, token, owner_email, payment_id, tier, issued_at, expires_at, used, used_at
			  FROM access_grants
			  WHERE token = $1`

	return scanGrant(querier.QueryRowContext(ctx, query, token), "failed to get grant by token")
}

// GetByPaymentID retrieves the grant issued for an upstream payment event.
func (p *PostgreSQLGrantRepository) GetByPaymentID(
	ctx context.Context,
	paymentID string,
) (*grantsDomain.AccessGrant, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, token, owner_email, payment_id, tier, issued_at, expires_at, used, used_at
			  FROM access_grants
			  WHERE payment_id = $1`

	return scanGrant(querier.QueryRowContext(ctx, query, paymentID), "failed to get grant by payment id")
}

// Redeem atomically consumes a grant. The read-check-mark sequence is a single
// conditional UPDATE: only a grant that is still unused and unexpired at the
// time of the update is marked used, so two concurrent calls carrying the
// same token can never both win. On rejection the row is re-read to classify
// the outcome (ErrGrantNotFound / ErrGrantAlreadyUsed / ErrGrantExpired).
func (p *PostgreSQLGrantRepository) Redeem(
	ctx context.Context,
	token string,
	now time.Time,
) (*grantsDomain.AccessGrant, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE access_grants
			  SET used = true, used_at = $1
			  WHERE token = $2 AND used = false AND expires_at >= $1`

	result, err := querier.ExecContext(ctx, query, now, token)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to redeem grant")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read redeem result")
	}

	if affected == 0 {
		return nil, p.classifyRejection(ctx, token, now)
	}

	return p.GetByToken(ctx, token)
}

// classifyRejection maps a lost conditional update to its terminal outcome.
func (p *PostgreSQLGrantRepository) classifyRejection(
	ctx context.Context,
	token string,
	now time.Time,
) error {
	grant, err := p.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if grant.Used {
		return grantsDomain.ErrGrantAlreadyUsed
	}
	if grant.Expired(now) {
		return grantsDomain.ErrGrantExpired
	}
	// The conditional update said no but the row looks redeemable: another
	// writer must have raced in between; treat as already used.
	return grantsDomain.ErrGrantAlreadyUsed
}

// List retrieves grants ordered by issuance time with pagination.
func (p *PostgreSQLGrantRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*grantsDomain.AccessGrant, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, token, owner_email, payment_id, tier, issued_at, expires_at, used, used_at
			  FROM access_grants
			  ORDER BY issued_at DESC
			  OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list grants")
	}
	defer rows.Close()

	return collectGrants(rows)
}

// DeleteExpired removes grants whose validity window ended before the cutoff.
// With dryRun it only counts the rows that would be deleted.
func (p *PostgreSQLGrantRepository) DeleteExpired(
	ctx context.Context,
	before time.Time,
	dryRun bool,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	if dryRun {
		var count int64
		query := `SELECT COUNT(*) FROM access_grants WHERE expires_at < $1`
		if err := querier.QueryRowContext(ctx, query, before).Scan(&count); err != nil {
			return 0, apperrors.Wrap(err, "failed to count expired grants")
		}
		return count, nil
	}

	query := `DELETE FROM access_grants WHERE expires_at < $1`
	result, err := querier.ExecContext(ctx, query, before)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired grants")
	}

	return result.RowsAffected()
}

// NewPostgreSQLGrantRepository creates a new PostgreSQL AccessGrant repository.
func NewPostgreSQLGrantRepository(db *sql.DB) *PostgreSQLGrantRepository {
	return &PostgreSQLGrantRepository{db: db}
}

// scanGrant scans a single grant row, mapping sql.ErrNoRows to ErrGrantNotFound.
func scanGrant(row *sql.Row, wrapMsg string) (*grantsDomain.AccessGrant, error) {
	var grant grantsDomain.AccessGrant

	err := row.Scan(
		&grant.ID,
		&grant.Token,
		&grant.OwnerEmail,
		&grant.PaymentID,
		&grant.Tier,
		&grant.IssuedAt,
		&grant.ExpiresAt,
		&grant.Used,
		&grant.UsedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, grantsDomain.ErrGrantNotFound
		}
		return nil, apperrors.Wrap(err, wrapMsg)
	}

	return &grant, nil
}

// collectGrants scans all grant rows from a query result.
func collectGrants(rows *sql.Rows) ([]*grantsDomain.AccessGrant, error) {
	grants := []*grantsDomain.AccessGrant{}

	for rows.Next() {
		var grant grantsDomain.AccessGrant
		err := rows.Scan(
			&grant.ID,
			&grant.Token,
			&grant.OwnerEmail,
			&grant.PaymentID,
			&grant.Tier,
			&grant.IssuedAt,
			&grant.ExpiresAt,
			&grant.Used,
			&grant.UsedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan grant")
		}
		grants = append(grants, &grant)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate grants")
	}

	return grants, nil
}
