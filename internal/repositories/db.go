package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalogadmin/internal/common"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock pools.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// notFound maps pgx.ErrNoRows onto a not-found error for resource.
func notFound(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return common.NewNotFoundError(resource)
	}
	return err
}

// requireAffected reports a not-found error when a write matched no row.
func requireAffected(tag pgconn.CommandTag, resource string) error {
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError(resource)
	}
	return nil
}

// searchClause builds a WHERE clause matching term against any of columns
// with ILIKE. The pattern is bound as $1.
func searchClause(term string, columns ...string) (string, []any) {
	if term == "" {
		return "", nil
	}
	conds := make([]string, len(columns))
	for i, col := range columns {
		conds[i] = col + ` ILIKE $1 ESCAPE '\'`
	}
	return "WHERE (" + strings.Join(conds, " OR ") + ")", []any{common.SearchPattern(term)}
}

// pageClause appends LIMIT/OFFSET placeholders after args.
func pageClause(args []any, params common.ListParams) (string, []any) {
	n := len(args)
	clause := fmt.Sprintf("LIMIT $%d OFFSET $%d", n+1, n+2)
	return clause, append(args, params.Limit, params.Offset())
}

func count(ctx context.Context, db DBTX, query string, args ...any) (int, error) {
	var total int
	if err := db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
