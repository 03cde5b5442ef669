package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/allisson/grants/internal/database"
	apperrors "github.com/allisson/grants/internal/errors"
	grantsDomain "github.com/allisson/grants/internal/grants/domain"
)

const mysqlDuplicateEntry = 1062

// MySQLGrantRepository implements AccessGrant persistence for MySQL.
type MySQLGrantRepository struct {
	db *sql.DB
}

// Create inserts a new access grant. Duplicate key errors map to
// ErrDuplicatePayment or ErrTokenCollision depending on the violated index.
func (m *MySQLGrantRepository) Create(ctx context.Context, grant *grantsDomain.AccessGrant) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO access_grants (id, token, owner_email, payment_id, tier, issued_at, expires_at, used, used_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		grant.ID.String(),
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
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			if strings.Contains(mysqlErr.Message, "idx_access_grants_token") {
				return grantsDomain.ErrTokenCollision
			}
			return grantsDomain.ErrDuplicatePayment
		}
		return apperrors.Wrap(err, "failed to create grant")
	}
	return nil
}

// GetByToken retrieves a grant by its token.
func (m *MySQLGrantRepository) GetByToken(
	ctx context.Context,
	token string,
) (*grantsDomain.AccessGrant, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, token, owner_email, payment_id, tier, issued_at, expires_at, used, used_at
			  FROM access_grants
			  WHERE token = ?`

	return scanMySQLGrant(querier.QueryRowContext(ctx, query, token), "failed to get grant by token")
}

// GetByPaymentID retrieves the grant issued for an upstream payment event.
func (m *MySQLGrantRepository) GetByPaymentID(
	ctx context.Context,
	paymentID string,
) (*grantsDomain.AccessGrant, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, token, owner_email, payment_id, tier, issued_at, expires_at, used, used_at
			  FROM access_grants
			  WHERE payment_id = ?`

	return scanMySQLGrant(querier.QueryRowContext(ctx, query, paymentID), "failed to get grant by payment id")
}

// Redeem atomically consumes a grant via a conditional update; see the
// PostgreSQL implementation for the single-winner contract.
func (m *MySQLGrantRepository) Redeem(
	ctx context.Context,
	token string,
	now time.Time,
) (*grantsDomain.AccessGrant, error) {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE access_grants
			  SET used = true, used_at = ?
			  WHERE token = ? AND used = false AND expires_at >= ?`

	result, err := querier.ExecContext(ctx, query, now, token, now)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to redeem grant")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read redeem result")
	}

	if affected == 0 {
		return nil, m.classifyRejection(ctx, token, now)
	}

	return m.GetByToken(ctx, token)
}

// classifyRejection maps a lost conditional update to its terminal outcome.
func (m *MySQLGrantRepository) classifyRejection(
	ctx context.Context,
	token string,
	now time.Time,
) error {
	grant, err := m.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if grant.Used {
		return grantsDomain.ErrGrantAlreadyUsed
	}
	if grant.Expired(now) {
		return grantsDomain.ErrGrantExpired
	}
	return grantsDomain.ErrGrantAlreadyUsed
}

// List retrieves grants ordered by issuance time with pagination.
func (m *MySQLGrantRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*grantsDomain.AccessGrant, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, token, owner_email, payment_id, tier, issued_at, expires_at, used, used_at
			  FROM access_grants
			  ORDER BY issued_at DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list grants")
	}
	defer rows.Close()

	return collectMySQLGrants(rows)
}

// DeleteExpired removes grants whose validity window ended before the cutoff.
// With dryRun it only counts the rows that would be deleted.
func (m *MySQLGrantRepository) DeleteExpired(
	ctx context.Context,
	before time.Time,
	dryRun bool,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	if dryRun {
		var count int64
		query := `SELECT COUNT(*) FROM access_grants WHERE expires_at < ?`
		if err := querier.QueryRowContext(ctx, query, before).Scan(&count); err != nil {
			return 0, apperrors.Wrap(err, "failed to count expired grants")
		}
		return count, nil
	}

	query := `DELETE FROM access_grants WHERE expires_at < ?`
	result, err := querier.ExecContext(ctx, query, before)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired grants")
	}

	return result.RowsAffected()
}

// NewMySQLGrantRepository creates a new MySQL AccessGrant repository.
func NewMySQLGrantRepository(db *sql.DB) *MySQLGrantRepository {
	return &MySQLGrantRepository{db: db}
}

// scanMySQLGrant scans a single grant row. MySQL stores the UUID as CHAR(36),
// so the id is scanned through a string.
func scanMySQLGrant(row *sql.Row, wrapMsg string) (*grantsDomain.AccessGrant, error) {
	var grant grantsDomain.AccessGrant
	var id string

	err := row.Scan(
		&id,
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

	parsed, err := parseGrantID(id)
	if err != nil {
		return nil, err
	}
	grant.ID = parsed

	return &grant, nil
}

// collectMySQLGrants scans all grant rows from a query result.
func collectMySQLGrants(rows *sql.Rows) ([]*grantsDomain.AccessGrant, error) {
	grants := []*grantsDomain.AccessGrant{}

	for rows.Next() {
		var grant grantsDomain.AccessGrant
		var id string

		err := rows.Scan(
			&id,
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

		parsed, err := parseGrantID(id)
		if err != nil {
			return nil, err
		}
		grant.ID = parsed

		grants = append(grants, &grant)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate grants")
	}

	return grants, nil
}
