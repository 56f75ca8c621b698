package state

import (
	"fmt"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"

	"protod.szuro.net/internal/logger"
)

// BadgerStore keeps state in a BadgerDB instance shared by all targets, one
// key per metric path under a "<target>/" prefix.
type BadgerStore struct {
	db     *badger.DB
	prefix string
}

func NewBadgerStore(dir, target string) (*BadgerStore, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(logger.Default()))
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", dir, err)
	}
	return &BadgerStore{db: db, prefix: target + "/"}, nil
}

func (b *BadgerStore) Load() (map[string]MetricState, error) {
	states := map[string]MetricState{}
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(b.prefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			var ms MetricState
			if err := json.Unmarshal(val, &ms); err != nil {
				return err
			}
			states[strings.TrimPrefix(string(item.Key()), b.prefix)] = ms
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return states, nil
}

func (b *BadgerStore) Save(states map[string]MetricState) error {
	stale, err := b.stalePaths(states)
	if err != nil {
		return err
	}

	txn := b.db.NewTransaction(true)
	defer txn.Discard()
	set := func(key []byte, value []byte) error {
		if err := txn.Set(key, value); err == badger.ErrTxnTooBig {
			if err := txn.Commit(); err != nil {
				return err
			}
			txn = b.db.NewTransaction(true)
			return txn.Set(key, value)
		} else if err != nil {
			return err
		}
		return nil
	}

	for path, ms := range states {
		value, err := json.Marshal(ms)
		if err != nil {
			return fmt.Errorf("encode state for %s: %w", path, err)
		}
		if err := set([]byte(b.prefix+path), value); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
	}
	for _, path := range stale {
		if err := txn.Delete([]byte(b.prefix + path)); err != nil {
			return fmt.Errorf("drop stale state: %w", err)
		}
	}
	if err := txn.Commit(); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// stalePaths lists persisted paths absent from the state being saved.
func (b *BadgerStore) stalePaths(states map[string]MetricState) ([]string, error) {
	var stale []string
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(b.prefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			path := strings.TrimPrefix(string(it.Item().Key()), b.prefix)
			if _, ok := states[path]; !ok {
				stale = append(stale, path)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan state: %w", err)
	}
	return stale, nil
}

func (b *BadgerStore) Close() error {
	return b.db.Close()
}
