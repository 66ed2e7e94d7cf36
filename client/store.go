package client

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/homedash/homedash-services/internal/position"
	"github.com/homedash/homedash-services/models"
)

// Store keeps a local copy of one user's dashboard and mutates it
// optimistically: reorder and move intents are applied to the local state
// first, then persisted. When persistence fails the store refetches the
// server's view so the two never drift apart for long.
//
// Store is safe for concurrent use.
type Store struct {
	client *Client

	mu          sync.Mutex
	username    string
	groups      []models.Group
	tiles       []models.Tile
	activeGroup *int64
}

// NewStore creates a Store backed by the given authenticated client. Call
// Load before reading state.
func NewStore(c *Client) *Store {
	return &Store{client: c}
}

// Load replaces the local state with the server's current dashboard.
func (s *Store) Load(ctx context.Context) error {
	dash, err := s.client.Dashboard(ctx)
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = dash.Username
	s.groups = dash.Groups
	s.tiles = dash.Tiles
	return nil
}

// Snapshot returns a copy of the current local state.
func (s *Store) Snapshot() models.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	dash := models.Dashboard{
		Username: s.username,
		Groups:   make([]models.Group, len(s.groups)),
		Tiles:    make([]models.Tile, len(s.tiles)),
	}
	copy(dash.Groups, s.groups)
	copy(dash.Tiles, s.tiles)
	return dash
}

// SetActiveGroup selects the partition a consumer is currently viewing
// (nil = uncategorized). It only affects ActiveTiles.
func (s *Store) SetActiveGroup(groupID *int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeGroup = groupID
}

// ActiveGroup returns the currently selected partition.
func (s *Store) ActiveGroup() *int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeGroup
}

// ActiveTiles returns the tiles of the selected partition sorted by
// position.
func (s *Store) ActiveTiles() []models.Tile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tilesInGroupLocked(s.activeGroup)
}

// TilesInGroup returns the tiles of one partition (nil = uncategorized)
// sorted by position.
func (s *Store) TilesInGroup(groupID *int64) []models.Tile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tilesInGroupLocked(groupID)
}

func (s *Store) tilesInGroupLocked(groupID *int64) []models.Tile {
	var out []models.Tile
	for _, t := range s.tiles {
		if samePartition(t.GroupID, groupID) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// ReorderTiles applies a complete ordering for one partition locally, then
// persists it. On a persistence failure the local state is reloaded from the
// server and the error is returned.
func (s *Store) ReorderTiles(ctx context.Context, groupID *int64, orderedIDs []int64) error {
	s.mu.Lock()
	index := position.Reindex(orderedIDs)
	for i := range s.tiles {
		if !samePartition(s.tiles[i].GroupID, groupID) {
			continue
		}
		if p, ok := index[s.tiles[i].ID]; ok {
			s.tiles[i].Position = p
		}
	}
	s.mu.Unlock()

	if err := s.client.ReorderTiles(ctx, groupID, orderedIDs); err != nil {
		return s.reconcile(ctx, err)
	}
	return nil
}

// MoveTile moves a tile to destIndex inside the partition named by destGroup
// (nil = uncategorized), applying the change locally before persisting. The
// source partition's gap is closed and the destination slot is opened, same
// as the server does.
func (s *Store) MoveTile(ctx context.Context, tileID int64, destGroup *int64, destIndex int) error {
	s.mu.Lock()
	moving := -1
	for i := range s.tiles {
		if s.tiles[i].ID == tileID {
			moving = i
			break
		}
	}
	if moving < 0 {
		s.mu.Unlock()
		return fmt.Errorf("tile %d not found in local state", tileID)
	}

	oldGroup := s.tiles[moving].GroupID
	oldPos := s.tiles[moving].Position
	sameGroup := samePartition(oldGroup, destGroup)

	if sameGroup {
		for i := range s.tiles {
			if i != moving && samePartition(s.tiles[i].GroupID, oldGroup) &&
				position.ShiftForRemove(s.tiles[i].Position, oldPos) {
				s.tiles[i].Position--
			}
		}
	}
	n := len(s.tilesInGroupLocked(destGroup))
	if !sameGroup {
		n++ // moving tile not yet counted in the destination
	}
	destIndex = position.Clamp(destIndex, n-1)
	for i := range s.tiles {
		if i != moving && samePartition(s.tiles[i].GroupID, destGroup) &&
			position.ShiftForInsert(s.tiles[i].Position, destIndex) {
			s.tiles[i].Position++
		}
	}
	s.tiles[moving].GroupID = destGroup
	s.tiles[moving].Position = destIndex
	s.mu.Unlock()

	if err := s.client.MoveTile(ctx, tileID, destGroup, destIndex); err != nil {
		return s.reconcile(ctx, err)
	}
	return nil
}

// ReorderGroups applies a complete group ordering locally, then persists it.
func (s *Store) ReorderGroups(ctx context.Context, orderedIDs []int64) error {
	s.mu.Lock()
	index := position.Reindex(orderedIDs)
	for i := range s.groups {
		if p, ok := index[s.groups[i].ID]; ok {
			s.groups[i].Position = p
		}
	}
	sort.SliceStable(s.groups, func(i, j int) bool { return s.groups[i].Position < s.groups[j].Position })
	s.mu.Unlock()

	if err := s.client.ReorderGroups(ctx, orderedIDs); err != nil {
		return s.reconcile(ctx, err)
	}
	return nil
}

// reconcile refetches the server state after a failed write so the
// optimistic local mutation does not linger. The original write error is
// always returned; a reload failure is attached to it.
func (s *Store) reconcile(ctx context.Context, writeErr error) error {
	if err := s.Load(ctx); err != nil {
		return fmt.Errorf("%w (state reload also failed: %v)", writeErr, err)
	}
	return writeErr
}

func samePartition(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
