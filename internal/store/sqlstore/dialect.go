package sqlstore

import "database/sql"

// Dialect isolates the engine-specific corners of the store. Queries
// are written once with ? placeholders and rebound per engine.
type Dialect interface {
	// Name reports the engine name used in logs and errors.
	Name() string

	// Open opens a database handle for the given DSN.
	Open(dsn string) (*sql.DB, error)

	// Migrate applies all pending schema migrations for this engine.
	Migrate(dsn string) error

	// Rebind rewrites ? placeholders into the engine's native style.
	Rebind(query string) string

	// UseReturning reports whether INSERTs must use RETURNING to
	// obtain generated ids instead of Result.LastInsertId.
	UseReturning() bool

	// IsUniqueViolation reports whether err is a unique-constraint
	// violation from this engine.
	IsUniqueViolation(err error) bool
}

// rebindDollar rewrites ? placeholders to $1..$N, skipping nothing
// else: the store never embeds literal question marks in SQL text.
func rebindDollar(query string) string {
	buf := make([]byte, 0, len(query)+8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			buf = append(buf, query[i])
			continue
		}
		n++
		buf = append(buf, '$')
		buf = appendInt(buf, n)
	}
	return string(buf)
}

func appendInt(buf []byte, n int) []byte {
	if n >= 10 {
		buf = appendInt(buf, n/10)
	}
	return append(buf, byte('0'+n%10))
}
