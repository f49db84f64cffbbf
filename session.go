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


package tessera

import (
	"context"
	"log/slog"

	"github.com/panjf2000/ants/v2"
	"github.com/tessera-app/tessera/core"
	"github.com/tessera-app/tessera/index"
	"github.com/tessera-app/tessera/query"
	"github.com/tessera-app/tessera/storage"
	"github.com/tessera-app/tessera/storage/badger"
)

// Session wires the node repository, the search index, and the query
// controller together for one open canvas. Node mutations go through the
// Session so the index stays consistent with storage.
type Session struct {
	backend    *badger.Backend
	repo       storage.NodeRepository
	index      *index.Store
	controller *query.Controller
	pool       *ants.Pool
	logger     *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	inMemory  bool
	queryOpts []query.Option
}

// WithInMemoryStorage uses an in-memory BadgerDB instead of an on-disk one.
func WithInMemoryStorage() SessionOption {
	return func(o *sessionOptions) {
		o.inMemory = true
	}
}

// WithQueryOptions passes options through to the session's query controller.
func WithQueryOptions(opts ...query.Option) SessionOption {
	return func(o *sessionOptions) {
		o.queryOpts = append(o.queryOpts, opts...)
	}
}

// NewSession opens the node store at filePath and builds an empty index.
// Call Start to load the stored nodes into the index.
func NewSession(filePath string, opts ...SessionOption) (*Session, error) {
	options := &sessionOptions{}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}
	repo := badger.NewNodeRepository(backend)

	store, err := index.NewStore()
	if err != nil {
		backend.Close()
		return nil, err
	}

	controller, err := query.NewController(store, options.queryOpts...)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Single worker keeps index updates in submission order.
	pool, err := ants.NewPool(1)
	if err != nil {
		controller.Stop()
		backend.Close()
		return nil, err
	}

	return &Session{
		backend:    backend,
		repo:       repo,
		index:      store,
		controller: controller,
		pool:       pool,
		logger:     slog.Default(),
	}, nil
}

// Start loads every stored node and rebuilds the search index from them.
func (s *Session) Start(ctx context.Context) error {
	nodes, err := s.repo.AllNodes(ctx)
	if err != nil {
		return err
	}
	s.index.Rebuild(nodes)
	s.logger.Info("session started", "nodes", len(nodes))
	return nil
}

// SaveNode persists a node and refreshes its index entries.
func (s *Session) SaveNode(ctx context.Context, node *core.Node) error {
	if err := s.repo.PutNodes(ctx, node); err != nil {
		return err
	}
	snapshot := *node
	s.submit(func() {
		s.index.IndexNode(&snapshot)
	})
	return nil
}

// MoveNode updates a node's canvas position. Position changes don't touch
// the node's text, so only the index metadata cache is refreshed.
func (s *Session) MoveNode(ctx context.Context, id core.ID, position core.Point) error {
	node, err := s.repo.GetNode(ctx, id)
	if err != nil {
		return err
	}
	node.Position = position
	if err := s.repo.PutNodes(ctx, node); err != nil {
		return err
	}
	s.submit(func() {
		s.index.UpdateNodeMetadata(node)
	})
	return nil
}

// DeleteNode removes a node from storage and from the index.
func (s *Session) DeleteNode(ctx context.Context, id core.ID) error {
	if err := s.repo.DeleteNodes(ctx, id); err != nil {
		return err
	}
	s.submit(func() {
		s.index.RemoveNode(id)
	})
	return nil
}

// Flush blocks until all pending index updates have been applied.
func (s *Session) Flush() {
	done := make(chan struct{})
	if err := s.pool.Submit(func() { close(done) }); err != nil {
		return
	}
	<-done
}

// Nodes returns the underlying node repository.
func (s *Session) Nodes() storage.NodeRepository {
	return s.repo
}

// Index returns the search index.
func (s *Session) Index() *index.Store {
	return s.index
}

// Controller returns the debounced query controller bound to this session.
func (s *Session) Controller() *query.Controller {
	return s.controller
}

// Close stops the controller, drains pending index updates, and closes storage.
func (s *Session) Close() error {
	s.controller.Stop()
	s.Flush()
	s.pool.Release()

	if err := s.repo.Close(); err != nil {
		s.logger.Error("error closing node repository", "err", err)
		return err
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (s *Session) submit(task func()) {
	if err := s.pool.Submit(task); err != nil {
		s.logger.Error("index update dropped", "err", err)
	}
}
