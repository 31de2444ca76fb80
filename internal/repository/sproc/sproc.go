// Package sproc is the generic stored-procedure dispatch layer. Every table
// in the legacy store is managed by one multiplexed procedure that selects
// its behavior from a small integer operation code passed as the leading
// parameter; results come back as loosely-typed tabular data that callers
// decode defensively.
package sproc

import "context"

// OpCode selects which logical action a multiplexed procedure performs.
type OpCode uint8

const (
	OpInsert OpCode = 1
	OpUpdate OpCode = 2
	OpDelete OpCode = 3
	OpList   OpCode = 90

	// Detail-procedure extensions.
	OpListDetailed OpCode = 91
	OpTotal        OpCode = 92
)

// Session executes stored-procedure calls against the store. A Session is
// either the auto-commit connection pool or one open transaction; repositories
// receive it explicitly instead of sharing ambient connection state.
type Session interface {
	// Call invokes proc with op as its leading parameter. Nil pointer
	// arguments are transmitted as SQL NULL. One call is one round trip;
	// there is no retry.
	Call(ctx context.Context, proc string, op OpCode, args ...any) (*Result, error)

	// CallDirect invokes a procedure that takes no operation code.
	CallDirect(ctx context.Context, proc string, args ...any) (*Result, error)
}

// Store is a Session that can also scope a group of calls to a single
// transaction. Calls made through the Store itself auto-commit.
type Store interface {
	Session

	// WithTx runs fn inside one transaction. The transaction is rolled back
	// if fn returns an error or panics, committed otherwise.
	WithTx(ctx context.Context, fn func(Session) error) error
}
