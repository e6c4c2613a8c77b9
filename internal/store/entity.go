package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"iter"
	"strings"

	"github.com/dgraph-io/badger/v4"

	domainerrors "github.com/feliperussi/medwrite-server/internal/errors"
)

// Entity provides generic CRUD operations for one domain type under a
// key prefix.
type Entity[T any] struct {
	store   *Store
	prefix  string
	indexes []index[T]
}

type index[T any] struct {
	name   string
	keyGen func(*T) []string
}

func NewEntity[T any](s *Store, prefix string) *Entity[T] {
	return &Entity[T]{store: s, prefix: prefix}
}

// WithIndex adds a secondary index. Index keys must be unique across
// entities; Create and Update fail with an ALREADY_EXISTS error on
// conflict.
func (e *Entity[T]) WithIndex(name string, keyGen func(*T) []string) *Entity[T] {
	e.indexes = append(e.indexes, index[T]{name: name, keyGen: keyGen})
	return e
}

func (e *Entity[T]) indexKey(name, value string) []byte {
	return []byte(e.prefix + "idx:" + name + ":" + value)
}

// Create stores a new entity under id. Returns an ALREADY_EXISTS error
// if the id or any index key is taken.
func (e *Entity[T]) Create(ctx context.Context, id string, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "marshaling entity")
	}
	key := []byte(e.prefix + id)

	return e.store.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return domainerrors.AlreadyExists("entity already exists").WithDetails(map[string]any{"id": id})
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return domainerrors.Wrap(err, domainerrors.CodeInternal, "checking existing key")
		}

		for _, idx := range e.indexes {
			for _, value := range idx.keyGen(entity) {
				if _, err := txn.Get(e.indexKey(idx.name, value)); err == nil {
					return domainerrors.AlreadyExists("index conflict").WithDetails(map[string]any{
						"index": idx.name,
						"key":   value,
					})
				} else if !errors.Is(err, badger.ErrKeyNotFound) {
					return domainerrors.Wrap(err, domainerrors.CodeInternal, "checking index key")
				}
			}
		}

		if err := txn.Set(key, data); err != nil {
			return domainerrors.Wrap(err, domainerrors.CodeInternal, "setting key")
		}
		for _, idx := range e.indexes {
			for _, value := range idx.keyGen(entity) {
				if err := txn.Set(e.indexKey(idx.name, value), []byte(id)); err != nil {
					return domainerrors.Wrap(err, domainerrors.CodeInternal, "setting index key")
				}
			}
		}
		return nil
	})
}

// Get retrieves an entity by id. Returns a NOT_FOUND error when absent.
func (e *Entity[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entity T
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(e.prefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domainerrors.NotFound("entity not found").WithDetails(map[string]any{"id": id})
		}
		if err != nil {
			return domainerrors.Wrap(err, domainerrors.CodeInternal, "getting key")
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entity)
		})
	})
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// GetByIndex retrieves an entity through a secondary index.
func (e *Entity[T]) GetByIndex(ctx context.Context, indexName, value string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var id string
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(e.indexKey(indexName, value))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domainerrors.NotFound("entity not found").WithDetails(map[string]any{
				"index": indexName,
				"key":   value,
			})
		}
		if err != nil {
			return domainerrors.Wrap(err, domainerrors.CodeInternal, "getting index key")
		}
		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return e.Get(ctx, id)
}

// Exists reports whether an entity exists under id.
func (e *Entity[T]) Exists(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	err := e.store.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(e.prefix + id))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, domainerrors.Wrap(err, domainerrors.CodeInternal, "checking key")
	}
	return true, nil
}

// Update replaces an existing entity. Returns a NOT_FOUND error when the
// entity does not exist. Index keys are migrated from the old value.
func (e *Entity[T]) Update(ctx context.Context, id string, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "marshaling entity")
	}
	key := []byte(e.prefix + id)

	return e.store.db.Update(func(txn *badger.Txn) error {
		var old T
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domainerrors.NotFound("entity not found").WithDetails(map[string]any{"id": id})
		}
		if err != nil {
			return domainerrors.Wrap(err, domainerrors.CodeInternal, "getting existing key")
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &old)
		}); err != nil {
			return domainerrors.Wrap(err, domainerrors.CodeInternal, "unmarshaling old entity")
		}

		for _, idx := range e.indexes {
			oldKeys := make(map[string]bool)
			for _, value := range idx.keyGen(&old) {
				oldKeys[value] = true
				if err := txn.Delete(e.indexKey(idx.name, value)); err != nil {
					return domainerrors.Wrap(err, domainerrors.CodeInternal, "deleting old index key")
				}
			}
			for _, value := range idx.keyGen(entity) {
				if oldKeys[value] {
					continue
				}
				if _, err := txn.Get(e.indexKey(idx.name, value)); err == nil {
					return domainerrors.AlreadyExists("index conflict").WithDetails(map[string]any{
						"index": idx.name,
						"key":   value,
					})
				} else if !errors.Is(err, badger.ErrKeyNotFound) {
					return domainerrors.Wrap(err, domainerrors.CodeInternal, "checking index key")
				}
			}
		}

		if err := txn.Set(key, data); err != nil {
			return domainerrors.Wrap(err, domainerrors.CodeInternal, "setting key")
		}
		for _, idx := range e.indexes {
			for _, value := range idx.keyGen(entity) {
				if err := txn.Set(e.indexKey(idx.name, value), []byte(id)); err != nil {
					return domainerrors.Wrap(err, domainerrors.CodeInternal, "setting index key")
				}
			}
		}
		return nil
	})
}

// Delete removes an entity by id. Idempotent.
func (e *Entity[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := []byte(e.prefix + id)

	return e.store.db.Update(func(txn *badger.Txn) error {
		var entity T
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return domainerrors.Wrap(err, domainerrors.CodeInternal, "getting key")
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entity)
		}); err != nil {
			return domainerrors.Wrap(err, domainerrors.CodeInternal, "unmarshaling entity")
		}

		for _, idx := range e.indexes {
			for _, value := range idx.keyGen(&entity) {
				if err := txn.Delete(e.indexKey(idx.name, value)); err != nil {
					return domainerrors.Wrap(err, domainerrors.CodeInternal, "deleting index key")
				}
			}
		}
		return txn.Delete(key)
	})
}

// List iterates all entities under the prefix.
func (e *Entity[T]) List(ctx context.Context) iter.Seq2[*T, error] {
	return e.ListPrefix(ctx, "")
}

// ListPrefix iterates entities whose id starts with idPrefix, in key
// order. For draft keys this is submission order.
func (e *Entity[T]) ListPrefix(ctx context.Context, idPrefix string) iter.Seq2[*T, error] {
	scanPrefix := []byte(e.prefix + idPrefix)
	return func(yield func(*T, error) bool) {
		_ = e.store.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = scanPrefix
			opts.PrefetchValues = true

			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek(scanPrefix); it.ValidForPrefix(scanPrefix); it.Next() {
				if err := ctx.Err(); err != nil {
					yield(nil, err)
					return err
				}

				// Skip index keys.
				remainder := strings.TrimPrefix(string(it.Item().Key()), e.prefix)
				if strings.HasPrefix(remainder, "idx:") {
					continue
				}

				var entity T
				err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &entity)
				})
				if err != nil {
					yield(nil, err)
					return err
				}
				if !yield(&entity, nil) {
					return nil
				}
			}
			return nil
		})
	}
}
