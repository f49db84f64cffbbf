// Copyright 2026 Tessera Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/tessera-app/tessera/core"
	"github.com/tessera-app/tessera/storage"
)

// NodeRepository implements storage.NodeRepository for BadgerDB.
type NodeRepository struct {
	backend *Backend
}

var _ storage.NodeRepository = (*NodeRepository)(nil)

// NewNodeRepository creates a new NodeRepository.
func NewNodeRepository(backend *Backend) *NodeRepository {
	return &NodeRepository{backend: backend}
}

// Close is a no-op; the Backend owns the database handle.
func (r *NodeRepository) Close() error {
	return nil
}

// PutNodes inserts or replaces nodes by ID.
func (r *NodeRepository) PutNodes(ctx context.Context, nodes ...*core.Node) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		for _, node := range nodes {
			if err := core.ValidateNode(node); err != nil {
				return err
			}

			key := makeNodeKey(node.Id)
			old, err := r.readNode(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				node.CreatedAt = now
			} else {
				node.CreatedAt = old.CreatedAt
			}
			node.UpdatedAt = now

			if err := tx.Set(key, storage.MarshalNode(node)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// DeleteNodes removes nodes by their IDs.
func (r *NodeRepository) DeleteNodes(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeNodeKey(id)
			if _, err := tx.Get(key); err != nil {
				if err == badger.ErrKeyNotFound {
					return storage.ErrNotFound
				}
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetNode retrieves a single node by ID.
func (r *NodeRepository) GetNode(ctx context.Context, id core.ID) (*core.Node, error) {
	var result *core.Node
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readNode(tx, makeNodeKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetNodes retrieves multiple nodes by their IDs.
// Missing nodes are skipped silently.
func (r *NodeRepository) GetNodes(ctx context.Context, ids ...core.ID) ([]*core.Node, error) {
	var result []*core.Node
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			node, err := r.readNode(tx, makeNodeKey(id))
			if err != nil {
				return err
			}
			if node != nil {
				result = append(result, node)
			}
		}
		return nil
	}, false)
	return result, err
}

// AllNodes retrieves every stored node, in key order.
func (r *NodeRepository) AllNodes(ctx context.Context) ([]*core.Node, error) {
	var results []*core.Node
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(nodeRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var node *core.Node
			err := iter.Item().Value(func(val []byte) error {
				var err error
				node, err = storage.UnmarshalNode(val)
				return err
			})
			if err != nil {
				return err
			}
			if node != nil {
				results = append(results, node)
			}
		}
		return nil
	}, false)
	return results, err
}

// CountNodes returns the number of stored nodes.
func (r *NodeRepository) CountNodes(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(nodeRecordPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// readNode reads a node from the transaction. Returns nil, nil when absent.
func (r *NodeRepository) readNode(tx *badger.Txn, key []byte) (*core.Node, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var node *core.Node
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		node, unmarshalErr = storage.UnmarshalNode(val)
		return unmarshalErr
	})
	return node, err
}
