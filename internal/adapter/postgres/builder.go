package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
)

// Builder returns a squirrel statement builder with $n placeholders.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// SelectAll runs the query built by b and scans every row into a T.
func SelectAll[T any](ctx context.Context, q Querier, b squirrel.Sqlizer) ([]T, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var dst []T
	if err := pgxscan.Select(ctx, q, &dst, sql, args...); err != nil {
		return nil, err
	}
	if dst == nil {
		dst = []T{}
	}
	return dst, nil
}

// SelectOne runs the query built by b and scans exactly one row into a T.
// No row yields pgx.ErrNoRows.
func SelectOne[T any](ctx context.Context, q Querier, b squirrel.Sqlizer) (*T, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var dst T
	if err := pgxscan.Get(ctx, q, &dst, sql, args...); err != nil {
		return nil, err
	}
	return &dst, nil
}

// Exec runs the statement built by b and returns the affected row count.
func Exec(ctx context.Context, q Querier, b squirrel.Sqlizer) (int64, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// UpsertSuffix returns an "ON CONFLICT (conflict) DO UPDATE" clause that
// overwrites cols with the proposed row.
func UpsertSuffix(conflict string, cols ...string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c + " = EXCLUDED." + c
	}
	return "ON CONFLICT (" + conflict + ") DO UPDATE SET " + strings.Join(parts, ", ")
}
