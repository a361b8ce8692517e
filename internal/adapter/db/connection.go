package db

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"schedsync/internal/config"
)

const connectAttempts = 6

func DSN(conf *config.Config) string {
	params := conf.DbParams
	if params == "" {
		params = "parseTime=true&multiStatements=true"
	}

	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?%s",
		conf.DbUser,
		conf.DbPassword,
		conf.DbHost,
		conf.DbPort,
		conf.DbName,
		params,
	)
}

// ConnectDB opens the MySQL pool, retrying while the server is still starting.
func ConnectDB(ctx context.Context, conf *config.Config) (*sqlx.DB, error) {
	dsn := DSN(conf)

	var db *sqlx.DB
	connect := func() error {
		conn, err := sqlx.ConnectContext(ctx, "mysql", dsn)
		if err != nil {
			zap.L().Warn("mysql not reachable yet", zap.String("host", conf.DbHost), zap.Error(err))
			return err
		}
		db = conn
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxInterval = 5 * time.Second
	if err := backoff.Retry(connect, backoff.WithContext(backoff.WithMaxRetries(policy, connectAttempts), ctx)); err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
