package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core"
)

// where accumulates the conditions of a filtered query.
type where struct {
	conds []string
	args  []interface{}
}

// ilike adds a case-insensitive "contains" condition when val is set.
func (w *where) ilike(col, val string) {
	if val == "" {
		return
	}
	w.conds = append(w.conds, col+" ILIKE ?")
	w.args = append(w.args, "%"+escapeLike(val)+"%")
}

// eq adds an equality condition when val is set.
func (w *where) eq(col string, val interface{}, set bool) {
	if !set {
		return
	}
	w.conds = append(w.conds, col+" = ?")
	w.args = append(w.args, val)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func newID() string { return uuid.NewString() }

// selectRows runs a filtered SELECT; query must end right before the WHERE clause.
func selectRows(ctx context.Context, db sqlx.QueryerContext, dest interface{}, query string, w *where, orderBy string) error {
	q := sqlx.Rebind(sqlx.DOLLAR, query+w.String()+" ORDER BY "+orderBy)
	return sqlx.SelectContext(ctx, db, dest, q, w.args...)
}

func getRow(ctx context.Context, db sqlx.QueryerContext, dest interface{}, query string, args ...interface{}) error {
	if err := sqlx.GetContext(ctx, db, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.ErrNotFound
		}
		return err
	}
	return nil
}

// checkAffected returns core.ErrNotFound when res affected no row.
func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
