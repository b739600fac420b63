package local

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/timshannon/badgerhold/v4"
)

var (
	ErrNotFound = errors.New("record not found")
)

const valueLogGCInterval = 30 * time.Minute

// Service is the embedded badgerhold store of the wallet: accounts, resolved addresses,
// per-network derive type overrides and the all-networks settings.
type Service struct {
	store    *badgerhold.Store
	inMemory bool
	stopGC   chan struct{}
}

// NewService opens (or creates) the store in dir. An empty dir keeps everything in memory.
func NewService(dir string) (*Service, error) {
	inMemory := len(dir) == 0

	opts := badger.DefaultOptions(dir)
	opts.Logger = badgerLogger{log.With().Str("component", "badger").Logger()}

	if inMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	store, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open local store")
	}

	s := &Service{
		store:    store,
		inMemory: inMemory,
		stopGC:   make(chan struct{}),
	}

	if !inMemory {
		go s.runValueLogGC()
	}

	return s, nil
}

func (s *Service) runValueLogGC() {
	ticker := time.NewTicker(valueLogGCInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopGC:
			return
		case <-ticker.C:
			if err := s.store.Badger().RunValueLogGC(0.5); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				log.Error().Err(err).Msg("Failed to run badger value log GC")
			}
		}
	}
}

// Ping reports whether the store still accepts reads.
func (s *Service) Ping(_ context.Context) error {
	if s.store.Badger().IsClosed() {
		return errors.New("local store is closed")
	}

	return nil
}

// InMemory reports whether the store was opened without a directory.
func (s *Service) InMemory() bool {
	return s.inMemory
}

func (s *Service) Close() error {
	if !s.inMemory {
		close(s.stopGC)
	}

	return s.store.Close()
}

type badgerLogger struct {
	zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.Error().Msg(trimLine(format, args...))
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.Warn().Msg(trimLine(format, args...))
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.Debug().Msg(trimLine(format, args...))
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.Trace().Msg(trimLine(format, args...))
}

func trimLine(format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	for len(msg) > 0 && msg[len(msg)-1] == '\n' {
		msg = msg[:len(msg)-1]
	}

	return msg
}

func txFromContext(ctx context.Context) *badger.Txn {
	tx, _ := ctx.Value(util.CTXKeyLocalTx).(*badger.Txn)
	return tx
}

// WithTransaction runs fn inside a read-write badger transaction. Repository calls made
// with the passed context join the transaction.
func (s *Service) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	return s.store.Badger().Update(func(tx *badger.Txn) error {
		return fn(context.WithValue(ctx, util.CTXKeyLocalTx, tx))
	})
}
