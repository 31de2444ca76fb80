package mysql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/beautycare/scheduling-api/internal/repository/sproc"
	"github.com/beautycare/scheduling-api/pkg/metrics"
)

// Store dispatches stored-procedure calls over a sqlx connection pool. It is
// the only path to the database; there are no direct table queries.
type Store struct {
	db      *sqlx.DB
	metrics *metrics.Metrics
}

// NewStore creates a Store. metrics may be nil.
func NewStore(db *sqlx.DB, m *metrics.Metrics) *Store {
	return &Store{db: db, metrics: m}
}

func (s *Store) Call(ctx context.Context, proc string, op sproc.OpCode, args ...any) (*sproc.Result, error) {
	return s.session(s.db).Call(ctx, proc, op, args...)
}

func (s *Store) CallDirect(ctx context.Context, proc string, args ...any) (*sproc.Result, error) {
	return s.session(s.db).CallDirect(ctx, proc, args...)
}

// WithTx runs fn with a Session bound to one transaction. Any error or panic
// rolls the transaction back before it propagates.
func (s *Store) WithTx(ctx context.Context, fn func(sproc.Session) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(s.session(tx)); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (s *Store) session(ext sqlx.ExtContext) *session {
	return &session{ext: ext, metrics: s.metrics}
}

// session executes calls against either the pool or an open transaction,
// whichever it was built around.
type session struct {
	ext     sqlx.ExtContext
	metrics *metrics.Metrics
}

func (s *session) Call(ctx context.Context, proc string, op sproc.OpCode, args ...any) (*sproc.Result, error) {
	all := make([]any, 0, len(args)+1)
	all = append(all, uint8(op))
	all = append(all, args...)
	return s.dispatch(ctx, proc, all)
}

func (s *session) CallDirect(ctx context.Context, proc string, args ...any) (*sproc.Result, error) {
	return s.dispatch(ctx, proc, args)
}

// dispatch is one network round trip: build the CALL, execute it, drain
// every result set, and release the rows on all exit paths. Nil pointer
// arguments reach the driver as SQL NULL.
func (s *session) dispatch(ctx context.Context, proc string, args []any) (*sproc.Result, error) {
	query := callStatement(proc, len(args))

	start := time.Now()
	rows, err := s.ext.QueryxContext(ctx, query, args...)
	if s.metrics != nil {
		s.metrics.ObserveDispatch(proc, time.Since(start), err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", proc, err)
	}
	defer rows.Close()

	return collect(rows)
}

func callStatement(proc string, argc int) string {
	if argc == 0 {
		return "CALL " + proc + "()"
	}
	placeholders := strings.Repeat("?, ", argc-1) + "?"
	return "CALL " + proc + "(" + placeholders + ")"
}

func collect(rows *sqlx.Rows) (*sproc.Result, error) {
	res := &sproc.Result{}
	for {
		cols, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read result columns: %w", err)
		}

		table := sproc.Table{Columns: cols}
		for rows.Next() {
			row := sproc.Row{}
			if err := rows.MapScan(row); err != nil {
				return nil, fmt.Errorf("failed to scan result row: %w", err)
			}
			table.Rows = append(table.Rows, row)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to read result rows: %w", err)
		}

		// CALL emits a trailing empty OK set; skip column-less tables.
		if len(cols) > 0 {
			res.Tables = append(res.Tables, table)
		}

		if !rows.NextResultSet() {
			break
		}
	}
	return res, nil
}
