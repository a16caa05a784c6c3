package eventstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/go-foreman/cqrs/pubsub/message"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	MYSQLDriver SQLDriver = "mysql"
	PGDriver    SQLDriver = "pg"
)

// AnyVersion disables the optimistic concurrency check of a commit
const AnyVersion int64 = -1

const eventsTableName = "cqrs_events"

type SQLDriver string

type Option func(c *sqlConnection)

// WithCommitDispatcher publishes every committed batch, usually the CommitDispatcher given to a Wireup
func WithCommitDispatcher(dispatcher CommitDispatcher) Option {
	return func(c *sqlConnection) {
		c.dispatcher = dispatcher
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *sqlConnection) {
		c.now = now
	}
}

type sqlConnection struct {
	db         *sql.DB
	driver     SQLDriver
	marshaller message.Marshaller
	dispatcher CommitDispatcher
	now        func() time.Time
}

// NewSQLConnection creates an event store on top of mysql or postgres, the events table is created if it doesn't exist.
// Stream versions start from 1.
func NewSQLConnection(db *sql.DB, driver SQLDriver, marshaller message.Marshaller, opts ...Option) (Connection, error) {
	c := &sqlConnection{db: db, driver: driver, marshaller: marshaller, now: time.Now}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.initTables(); err != nil {
		return nil, errors.Wrapf(err, "initializing tables for SQL event store, driver %s", driver)
	}

	return c, nil
}

func (c *sqlConnection) Append(ctx context.Context, commit Commit) ([]Record, error) {
	if len(commit.Events) == 0 {
		return nil, nil
	}

	payloads := make([][]byte, len(commit.Events))
	for i, ev := range commit.Events {
		payload, err := c.marshaller.Marshal(ev)
		if err != nil {
			return nil, errors.Wrapf(err, "marshaling event %d of stream %s", i, commit.StreamID)
		}
		payloads[i] = payload
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "beginning a transaction for stream %s", commit.StreamID)
	}

	var current int64
	err = tx.QueryRowContext(ctx, c.prepQuery(fmt.Sprintf("SELECT COALESCE(MAX(version), 0) FROM %s WHERE stream_id=?;", eventsTableName)), commit.StreamID).Scan(&current)
	if err != nil {
		return nil, rollback(tx, errors.Wrapf(err, "querying version of stream %s", commit.StreamID))
	}

	if commit.ExpectedVersion != AnyVersion && commit.ExpectedVersion != current {
		return nil, rollback(tx, errors.Wrapf(ErrConcurrencyViolation, "stream %s is at version %d, expected %d", commit.StreamID, current, commit.ExpectedVersion))
	}

	createdAt := c.now().UTC()
	records := make([]Record, len(commit.Events))

	for i, ev := range commit.Events {
		record := Record{
			UID:       uuid.New().String(),
			StreamID:  commit.StreamID,
			Version:   current + int64(i) + 1,
			Payload:   ev,
			CreatedAt: createdAt,
		}

		_, err = tx.ExecContext(ctx, c.prepQuery(fmt.Sprintf("INSERT INTO %s (uid, stream_id, version, name, payload, created_at) VALUES (?, ?, ?, ?, ?, ?);", eventsTableName)),
			record.UID,
			record.StreamID,
			record.Version,
			ev.GroupKind().String(),
			payloads[i],
			record.CreatedAt,
		)
		if err != nil {
			return nil, rollback(tx, errors.Wrapf(err, "inserting event %d of stream %s", record.Version, commit.StreamID))
		}

		records[i] = record
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrapf(err, "committing events of stream %s", commit.StreamID)
	}

	if c.dispatcher != nil {
		if err := c.dispatcher.DispatchCommit(ctx, records); err != nil {
			return records, errors.Wrapf(err, "dispatching commit of stream %s", commit.StreamID)
		}
	}

	return records, nil
}

func (c *sqlConnection) ReadStream(ctx context.Context, streamID string) ([]Record, error) {
	rows, err := c.db.QueryContext(ctx, c.prepQuery(fmt.Sprintf("SELECT uid, stream_id, version, payload, created_at FROM %s WHERE stream_id=? ORDER BY version;", eventsTableName)), streamID)
	if err != nil {
		return nil, errors.Wrapf(err, "querying stream %s", streamID)
	}

	return c.scanRecords(rows)
}

func (c *sqlConnection) ReadSince(ctx context.Context, from time.Time) ([]Record, error) {
	rows, err := c.db.QueryContext(ctx, c.prepQuery(fmt.Sprintf("SELECT uid, stream_id, version, payload, created_at FROM %s WHERE created_at>=? ORDER BY created_at, stream_id, version;", eventsTableName)), from.UTC())
	if err != nil {
		return nil, errors.Wrapf(err, "querying events since %s", from)
	}

	return c.scanRecords(rows)
}

func (c *sqlConnection) scanRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()

	var records []Record

	for rows.Next() {
		var (
			record  Record
			payload []byte
		)

		if err := rows.Scan(&record.UID, &record.StreamID, &record.Version, &payload, &record.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scanning row")
		}

		obj, err := c.marshaller.Unmarshal(payload)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding event %s", record.UID)
		}

		record.Payload = obj
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	return records, nil
}

func (c *sqlConnection) initTables() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return errors.WithStack(err)
	}

	_, err = tx.ExecContext(ctx, fmt.Sprintf("create table if not exists %s ( uid varchar(255) not null primary key, stream_id varchar(255) not null, version bigint not null, name varchar(255) not null, payload text not null, created_at timestamp not null, constraint %s_stream_version_uq unique (stream_id, version) );", eventsTableName, eventsTableName))
	if err != nil {
		return rollback(tx, err)
	}

	if err := tx.Commit(); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (c *sqlConnection) prepQuery(query string) string {
	if c.driver != PGDriver {
		return query
	}

	var res []byte
	counter := 1

	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			res = append(append(res, '$'), []byte(strconv.Itoa(counter))...)
			counter++
			continue
		}
		res = append(res, query[i])
	}

	return string(res)
}

func rollback(tx *sql.Tx, err error) error {
	if rErr := tx.Rollback(); rErr != nil {
		return errors.Wrapf(rErr, "rollback when %s", err)
	}

	return err
}
