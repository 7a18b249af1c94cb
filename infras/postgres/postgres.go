package postgres

//nolint:revive
import (
	"context"
	"fmt"
	"net"
	"net/url"
	"sitterhub/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxIdleConnections = 10
	maxOpenConnections = 10
	connMaxLifetime    = 30 * time.Minute
)

// Connection splits reads and writes. Status transitions and cost freezing always go through Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type node struct {
	name     string
	host     string
	port     string
	user     string
	password string
	database string
	sslMode  string
}

func (n node) dsn() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(n.user, n.password),
		Host:     net.JoinHostPort(n.host, n.port),
		Path:     "/" + n.database,
		RawQuery: url.Values{"sslmode": []string{n.sslMode}}.Encode(),
	}

	return u.String()
}

func New(config *config.Config) *Connection {
	pg := config.DB.Postgres

	read := node{
		name:     "read",
		host:     pg.Read.Host,
		port:     pg.Read.Port,
		user:     pg.Read.Username,
		password: pg.Read.Password,
		database: pg.Prefix + pg.Read.Name,
		sslMode:  pg.Read.SSLMode,
	}

	write := node{
		name:     "write",
		host:     pg.Write.Host,
		port:     pg.Write.Port,
		user:     pg.Write.Username,
		password: pg.Write.Password,
		database: pg.Prefix + pg.Write.Name,
		sslMode:  pg.Write.SSLMode,
	}

	retries := max(pg.MaxRetry, 1)
	wait := time.Duration(pg.RetryWaitTime) * time.Second

	return &Connection{
		Read:  connect(read, retries, wait),
		Write: connect(write, retries, wait),
	}
}

// connect retries until the node answers and exits the process once retries run out.
func connect(n node, retries int, wait time.Duration) *sqlx.DB {
	var lastErr error

	for attempt := 1; attempt <= retries; attempt++ {
		db, err := sqlx.Connect("postgres", n.dsn())
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			log.Info().
				Str("name", n.name).
				Str("host", n.host).
				Str("port", n.port).
				Str("dbName", n.database).
				Msg("Connected to database")

			return db
		}

		lastErr = err

		log.Error().
			Err(err).
			Str("name", n.name).
			Str("host", n.host).
			Int("attempt", attempt).
			Msg("Failed connecting to database, retrying")

		time.Sleep(wait)
	}

	log.Fatal().Err(lastErr).Str("name", n.name).Int("attempts", retries).Msg("Giving up connecting to database")

	return nil
}

// WithTx runs fn inside a write transaction. The transaction is committed when fn returns nil
// and rolled back otherwise.
func (c *Connection) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := c.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("Failed to rollback transaction")
			}

			return
		}

		if err = tx.Commit(); err != nil {
			err = fmt.Errorf("failed to commit transaction: %w", err)
		}
	}()

	return fn(tx)
}
