// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package eventlog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/talentmatch/internal/logging"
	"github.com/tomtom215/talentmatch/internal/metrics"
	"github.com/tomtom215/talentmatch/internal/recommend"
)

// ErrClosed is returned by operations on a closed log.
var ErrClosed = errors.New("event log is closed")

const keyPrefix = "interaction:"

// Config configures the event log.
type Config struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps all data in RAM.
	InMemory bool

	// SyncWrites fsyncs every append.
	SyncWrites bool
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !c.InMemory && c.Path == "" {
		return fmt.Errorf("eventlog.path is required unless in_memory is set")
	}
	return nil
}

// Log is an append-only interaction log. It is safe for concurrent use.
type Log struct {
	db     *badger.DB
	logger zerolog.Logger
	count  atomic.Int64

	mu     sync.RWMutex
	closed bool

	now func() time.Time
}

// Open opens or creates the log and counts the stored events.
func Open(cfg Config) (*Log, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid event log config: %w", err)
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	l := &Log{
		db:     db,
		logger: logging.WithComponent("eventlog"),
		now:    time.Now,
	}

	n, err := l.countKeys()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	l.count.Store(n)

	l.logger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Int64("events", n).
		Msg("event log opened")
	return l, nil
}

// Append validates and persists one interaction. An empty ID is filled with
// a UUID and a zero Timestamp with the current time; the stored copy is
// returned.
func (l *Log) Append(ctx context.Context, in recommend.Interaction) (recommend.Interaction, error) {
	if err := ctx.Err(); err != nil {
		return in, err
	}
	if err := in.Validate(); err != nil {
		return in, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return in, ErrClosed
	}

	now := l.now().UTC()
	if in.ID == "" {
		in.ID = uuid.New().String()
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = now
	}

	data, err := json.Marshal(&in)
	if err != nil {
		return in, fmt.Errorf("marshal interaction: %w", err)
	}

	key := []byte(fmt.Sprintf("%s%020d:%s", keyPrefix, now.UnixNano(), in.ID))
	if err := l.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(key, data))
	}); err != nil {
		return in, fmt.Errorf("write to BadgerDB: %w", err)
	}

	l.count.Add(1)
	metrics.RecordEventLogAppend()
	return in, nil
}

// Replay calls fn for every stored interaction in append order. Undecodable
// records are logged and skipped. An error from fn stops the replay and is
// returned.
func (l *Log) Replay(ctx context.Context, fn func(recommend.Interaction) error) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return ErrClosed
	}

	skipped := 0
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			item := it.Item()
			var in recommend.Interaction
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &in)
			}); err != nil {
				l.logger.Warn().Err(err).Str("key", string(item.Key())).Msg("skipping undecodable interaction")
				skipped++
				continue
			}
			if err := fn(in); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replay interactions: %w", err)
	}
	if skipped > 0 {
		l.logger.Warn().Int("skipped", skipped).Msg("replay skipped records")
	}
	return nil
}

// All replays the log into a slice.
func (l *Log) All(ctx context.Context) ([]recommend.Interaction, error) {
	var out []recommend.Interaction
	err := l.Replay(ctx, func(in recommend.Interaction) error {
		out = append(out, in)
		return nil
	})
	return out, err
}

// Count returns the number of stored records.
func (l *Log) Count() int64 {
	return l.count.Load()
}

// Close closes the database. It is safe to call more than once.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true

	if err := l.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	l.logger.Info().Int64("events", l.count.Load()).Msg("event log closed")
	return nil
}

func (l *Log) countKeys() (int64, error) {
	var n int64
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count interactions: %w", err)
	}
	return n, nil
}
