package sqlstore

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Dialect selects the SQL flavour and database/sql driver.
type Dialect string

// Supported dialects.
const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect validates a configured driver name.
func ParseDialect(name string) (Dialect, error) {
	switch Dialect(name) {
	case DialectSQLite, DialectPostgres:
		return Dialect(name), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q (must be sqlite or postgres)", name)
	}
}

// driverName is the database/sql driver registered for the dialect.
func (d Dialect) driverName() string {
	return string(d)
}

func (d Dialect) placeholder() squirrel.PlaceholderFormat {
	if d == DialectPostgres {
		return squirrel.Dollar
	}
	return squirrel.Question
}

// containsFold matches rows whose column contains term, ignoring case.
func (d Dialect) containsFold(column, term string) squirrel.Sqlizer {
	pattern := "%" + term + "%"
	if d == DialectPostgres {
		return squirrel.ILike{column: pattern}
	}
	// SQLite LIKE folds ASCII case; LOWER on both sides covers the rest
	// of what the roster needs.
	return squirrel.Expr("LOWER("+column+") LIKE LOWER(?)", pattern)
}
