package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Wolfram-St/db-builder-prototype-prop/internal/repositories"
	"github.com/Wolfram-St/db-builder-prototype-prop/internal/schema"
)

// ErrWorkspaceNotFound is returned by every workspace-scoped operation when
// the workspace ID is unknown.
var ErrWorkspaceNotFound = errors.New("workspace not found")

const persistTimeout = 5 * time.Second

// Workspace is one editing session: a name, timestamps, and its own schema
// graph. The lock serializes mutations per workspace; sessions never share
// a graph, so there is no global lock. Readers that escape the service (the
// transport layer) must go through View/ListViews, which copy the graph
// under the read lock instead of handing out the live pointer.
type Workspace struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Graph     *schema.Graph `json:"graph"`

	mu sync.RWMutex
}

// WorkspaceView is a self-contained copy of a workspace safe to serialize or
// traverse while the live workspace keeps mutating.
type WorkspaceView struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Graph     *schema.Graph `json:"graph"`
}

// WorkspaceService owns the workspace registry and is the single entry point
// for mutating schema graphs. Snapshot persistence and action history are
// optional collaborators; a nil repository disables that concern.
type WorkspaceService struct {
	mu         sync.RWMutex
	workspaces map[string]*Workspace

	toolkit  *schema.Toolkit
	resolver *schema.Resolver

	snapshotRepo *repositories.SnapshotRepository
	historyRepo  *repositories.RedisRepository
}

func NewWorkspaceService(toolkit *schema.Toolkit, snapshotRepo *repositories.SnapshotRepository, historyRepo *repositories.RedisRepository) *WorkspaceService {
	return &WorkspaceService{
		workspaces:   make(map[string]*Workspace),
		toolkit:      toolkit,
		resolver:     schema.NewResolver(toolkit),
		snapshotRepo: snapshotRepo,
		historyRepo:  historyRepo,
	}
}

// Create registers a new workspace with an empty graph.
func (s *WorkspaceService) Create(name string) *Workspace {
	now := time.Now().UTC()
	ws := &Workspace{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Graph:     schema.NewGraph(),
	}

	s.mu.Lock()
	s.workspaces[ws.ID] = ws
	s.mu.Unlock()

	return ws
}

// Get returns the workspace or nil when unknown.
func (s *WorkspaceService) Get(id string) *Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workspaces[id]
}

// List returns all registered workspaces.
func (s *WorkspaceService) List() []*Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*Workspace, 0, len(s.workspaces))
	for _, ws := range s.workspaces {
		list = append(list, ws)
	}
	return list
}

// View returns a copy of the workspace taken under its read lock, or nil
// when unknown.
func (s *WorkspaceService) View(id string) *WorkspaceView {
	ws := s.Get(id)
	if ws == nil {
		return nil
	}
	return ws.view()
}

// ListViews returns read-locked copies of all registered workspaces.
func (s *WorkspaceService) ListViews() []*WorkspaceView {
	workspaces := s.List()
	views := make([]*WorkspaceView, 0, len(workspaces))
	for _, ws := range workspaces {
		views = append(views, ws.view())
	}
	return views
}

func (ws *Workspace) view() *WorkspaceView {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return &WorkspaceView{
		ID:        ws.ID,
		Name:      ws.Name,
		CreatedAt: ws.CreatedAt,
		UpdatedAt: ws.UpdatedAt,
		Graph:     ws.Graph.Clone(),
	}
}

// Delete removes a workspace and its persisted snapshots. Returns false when
// the workspace does not exist.
func (s *WorkspaceService) Delete(id string) bool {
	s.mu.Lock()
	_, ok := s.workspaces[id]
	if ok {
		delete(s.workspaces, id)
	}
	s.mu.Unlock()

	if ok && s.snapshotRepo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := s.snapshotRepo.DeleteByWorkspace(ctx, id); err != nil {
			log.Printf("failed to delete snapshots for workspace %s: %v", id, err)
		}
	}
	return ok
}

// CreateTable applies a direct structural edit from the canvas.
func (s *WorkspaceService) CreateTable(workspaceID, name string, columns []schema.ColumnSpec, position *schema.Position) (*schema.Table, error) {
	ws := s.Get(workspaceID)
	if ws == nil {
		return nil, ErrWorkspaceNotFound
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	table := s.toolkit.CreateTable(ws.Graph, name, columns, position)
	s.touch(ws)
	return table, nil
}

// AddColumn appends a column; a nil result means the table was not found.
func (s *WorkspaceService) AddColumn(workspaceID, tableID string, spec schema.ColumnSpec) (*schema.Column, error) {
	ws := s.Get(workspaceID)
	if ws == nil {
		return nil, ErrWorkspaceNotFound
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	column := s.toolkit.AddColumn(ws.Graph, tableID, spec)
	if column != nil {
		s.touch(ws)
	}
	return column, nil
}

// CreateRelation connects two columns by concrete IDs; nil means an endpoint
// was not found.
func (s *WorkspaceService) CreateRelation(workspaceID, fromTableID, fromColumnID, toTableID, toColumnID string, cardinality schema.Cardinality, deleteRule, updateRule schema.ReferentialRule) (*schema.Relation, error) {
	ws := s.Get(workspaceID)
	if ws == nil {
		return nil, ErrWorkspaceNotFound
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	relation := s.toolkit.CreateRelation(ws.Graph, fromTableID, fromColumnID, toTableID, toColumnID, cardinality, deleteRule, updateRule)
	if relation != nil {
		s.touch(ws)
	}
	return relation, nil
}

// RenameTable renames a table; false means the table was not found.
func (s *WorkspaceService) RenameTable(workspaceID, tableID, newName string) (bool, error) {
	ws := s.Get(workspaceID)
	if ws == nil {
		return false, ErrWorkspaceNotFound
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	ok := s.toolkit.UpdateTableName(ws.Graph, tableID, newName)
	if ok {
		s.touch(ws)
	}
	return ok, nil
}

// DeleteTable removes a table and cascades its relations; false means the
// table was not found.
func (s *WorkspaceService) DeleteTable(workspaceID, tableID string) (bool, error) {
	ws := s.Get(workspaceID)
	if ws == nil {
		return false, ErrWorkspaceNotFound
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	ok := s.toolkit.DeleteTable(ws.Graph, tableID)
	if ok {
		s.touch(ws)
	}
	return ok, nil
}

// ApplyActions runs an interpreter batch to completion under the workspace
// lock and returns the subsequence of actions that was actually applied.
func (s *WorkspaceService) ApplyActions(workspaceID string, actions []schema.Action) ([]schema.Action, error) {
	ws := s.Get(workspaceID)
	if ws == nil {
		return nil, ErrWorkspaceNotFound
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	applied := s.resolver.Apply(ws.Graph, actions)
	if len(applied) > 0 {
		s.touch(ws)
	}
	s.recordHistory(ws.ID, applied)
	return applied, nil
}

// Import merges a foreign graph into the workspace. Existing entities win;
// the result reports whether a re-layout is warranted.
func (s *WorkspaceService) Import(workspaceID string, foreign *schema.Graph) (schema.MergeResult, error) {
	ws := s.Get(workspaceID)
	if ws == nil {
		return schema.MergeResult{}, ErrWorkspaceNotFound
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	result := schema.Merge(ws.Graph, foreign)
	if result.AddedTables > 0 || result.AddedRelations > 0 {
		s.touch(ws)
	}
	return result, nil
}

// RestoreSnapshot replaces the workspace graph with its latest persisted
// snapshot. Returns false when no snapshot exists.
func (s *WorkspaceService) RestoreSnapshot(workspaceID string) (bool, error) {
	ws := s.Get(workspaceID)
	if ws == nil {
		return false, ErrWorkspaceNotFound
	}
	if s.snapshotRepo == nil {
		return false, errors.New("snapshot persistence is not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	raw, err := s.snapshotRepo.Latest(ctx, workspaceID)
	if err != nil {
		return false, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if raw == nil {
		return false, nil
	}

	var g schema.Graph
	if err := json.Unmarshal(raw, &g); err != nil {
		return false, fmt.Errorf("corrupt snapshot for workspace %s: %w", workspaceID, err)
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.Graph = &g
	ws.UpdatedAt = time.Now().UTC()
	return true, nil
}

// History returns the most recent applied-action batches for a workspace,
// oldest first. Returns an empty history when the cache is not configured.
func (s *WorkspaceService) History(workspaceID string, n int64) ([]json.RawMessage, error) {
	if s.Get(workspaceID) == nil {
		return nil, ErrWorkspaceNotFound
	}
	if s.historyRepo == nil {
		return []json.RawMessage{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	entries, err := s.historyRepo.RecentApplied(ctx, workspaceID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to load action history: %w", err)
	}

	batches := make([]json.RawMessage, 0, len(entries))
	for _, entry := range entries {
		batches = append(batches, json.RawMessage(entry))
	}
	return batches, nil
}

// touch bumps the workspace timestamp and persists a snapshot when
// persistence is configured. Persistence failures are logged, never
// surfaced: the in-memory graph is the source of truth for a session.
// Callers hold the workspace lock.
func (s *WorkspaceService) touch(ws *Workspace) {
	ws.UpdatedAt = time.Now().UTC()

	if s.snapshotRepo == nil {
		return
	}
	raw, err := json.Marshal(ws.Graph)
	if err != nil {
		log.Printf("failed to encode graph for workspace %s: %v", ws.ID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := s.snapshotRepo.Save(ctx, ws.ID, raw); err != nil {
		log.Printf("failed to persist snapshot for workspace %s: %v", ws.ID, err)
	}
}

func (s *WorkspaceService) recordHistory(workspaceID string, applied []schema.Action) {
	if s.historyRepo == nil || len(applied) == 0 {
		return
	}
	raw, err := json.Marshal(applied)
	if err != nil {
		log.Printf("failed to encode action history for workspace %s: %v", workspaceID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := s.historyRepo.PushApplied(ctx, workspaceID, raw); err != nil {
		log.Printf("failed to record action history for workspace %s: %v", workspaceID, err)
	}
}
