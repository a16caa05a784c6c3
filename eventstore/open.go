package eventstore

import (
	"database/sql"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/stdlib"
	"github.com/pkg/errors"
)

// Open creates a connection pool for the driver. Nothing is dialed until the pool is used.
func Open(driver SQLDriver, dsn string) (*sql.DB, error) {
	switch driver {
	case MYSQLDriver:
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, errors.Wrap(err, "parsing mysql dsn")
		}
		// created_at is scanned into time.Time
		cfg.ParseTime = true

		connector, err := mysql.NewConnector(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "creating mysql connector")
		}

		return sql.OpenDB(connector), nil
	case PGDriver:
		cfg, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, errors.Wrap(err, "parsing postgres dsn")
		}

		return stdlib.OpenDB(*cfg), nil
	}

	return nil, errors.Errorf("unsupported driver %q", driver)
}
