package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

type pauseKey struct {
	campaignID int64
	date       string
}

// Store is an in-process port.CampaignRepository. Bookkeeping does not
// survive restarts, which the controller tolerates by re-deriving state on
// the next tick.
type Store struct {
	mu sync.RWMutex

	campaigns   map[int64]domain.Campaign
	inventory   map[int64]domain.InventoryRecord
	increments  map[int64]domain.PendingIncrement
	pauses      map[pauseKey]domain.SpendPause
	adjustments map[pauseKey]domain.BudgetAdjustmentMark
}

func NewStore(campaigns []domain.Campaign, inventory []domain.InventoryRecord) *Store {
	s := &Store{
		campaigns:   make(map[int64]domain.Campaign, len(campaigns)),
		inventory:   make(map[int64]domain.InventoryRecord, len(inventory)),
		increments:  make(map[int64]domain.PendingIncrement),
		pauses:      make(map[pauseKey]domain.SpendPause),
		adjustments: make(map[pauseKey]domain.BudgetAdjustmentMark),
	}
	for _, c := range campaigns {
		s.campaigns[c.ID] = c
	}
	for _, r := range inventory {
		s.inventory[r.ID] = r
	}
	return s
}

func key(campaignID int64, date time.Time) pauseKey {
	return pauseKey{campaignID: campaignID, date: date.UTC().Format(time.DateOnly)}
}

// PutCampaign inserts or replaces a campaign.
func (s *Store) PutCampaign(c domain.Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns[c.ID] = c
}

// PutInventory inserts or replaces an inventory record.
func (s *Store) PutInventory(r domain.InventoryRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventory[r.ID] = r
}

func (s *Store) ListAutoManagedCampaigns(_ context.Context) ([]domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.Campaign, 0, len(s.campaigns))
	for _, c := range s.campaigns {
		if c.Managed() {
			items = append(items, c)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *Store) GetCampaign(_ context.Context, id int64) (*domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.campaigns[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *Store) ListActiveInventory(_ context.Context, campaignID int64) ([]domain.InventoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.InventoryRecord, 0)
	for _, r := range s.inventory {
		if r.CampaignID == campaignID && r.Status == domain.InventoryActive {
			items = append(items, r)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (s *Store) GetInventory(_ context.Context, id int64) (*domain.InventoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.inventory[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *Store) UpdateMirror(_ context.Context, campaignID int64, mirror domain.ExternalStateMirror) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[campaignID]
	if !ok {
		return port.ErrCampaignNotFound
	}
	c.Mirror = mirror
	s.campaigns[campaignID] = c
	return nil
}

func (s *Store) MarkSynced(_ context.Context, campaignID int64, date, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[campaignID]
	if !ok {
		return port.ErrCampaignNotFound
	}
	day := domain.StartOfDay(date)
	c.LastSyncDate = &day
	c.LastSyncAt = &at
	s.campaigns[campaignID] = c
	return nil
}

func (s *Store) RecordError(_ context.Context, campaignID int64, message string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[campaignID]
	if !ok {
		return port.ErrCampaignNotFound
	}
	c.LastError = message
	if message == "" {
		c.LastErrorAt = nil
	} else {
		c.LastErrorAt = &at
	}
	s.campaigns[campaignID] = c
	return nil
}

func (s *Store) EnqueuePendingIncrement(_ context.Context, inc domain.PendingIncrement) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.increments[inc.InventoryID]; exists {
		return false, nil
	}
	s.increments[inc.InventoryID] = inc
	return true, nil
}

func (s *Store) ListReadyIncrements(_ context.Context, now time.Time) ([]domain.PendingIncrement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.PendingIncrement, 0)
	for _, inc := range s.increments {
		if inc.Ready(now) {
			items = append(items, inc)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].InventoryID < items[j].InventoryID })
	return items, nil
}

func (s *Store) MarkIncrementsProcessed(_ context.Context, inventoryIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range inventoryIDs {
		if inc, ok := s.increments[id]; ok {
			inc.Processed = true
			s.increments[id] = inc
		}
	}
	return nil
}

func (s *Store) ReleaseIncrements(_ context.Context, inventoryIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range inventoryIDs {
		if inc, ok := s.increments[id]; ok {
			inc.Processed = false
			s.increments[id] = inc
		}
	}
	return nil
}

func (s *Store) PurgeProcessedIncrements(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, inc := range s.increments {
		if inc.Processed {
			delete(s.increments, id)
			n++
		}
	}
	return n, nil
}

// PendingIncrements returns every queued increment, processed or not.
func (s *Store) PendingIncrements() []domain.PendingIncrement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.PendingIncrement, 0, len(s.increments))
	for _, inc := range s.increments {
		items = append(items, inc)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].InventoryID < items[j].InventoryID })
	return items
}

func (s *Store) GetSpendPause(_ context.Context, campaignID int64, date time.Time) (*domain.SpendPause, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pauses[key(campaignID, date)]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) SaveSpendPause(_ context.Context, pause domain.SpendPause) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pauses[key(pause.CampaignID, pause.ForDate)] = pause
	return nil
}

func (s *Store) ClearSpendPause(_ context.Context, campaignID int64, date, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(campaignID, date)
	p, ok := s.pauses[k]
	if !ok || p.ClearedAt != nil {
		return nil
	}
	p.ClearedAt = &at
	s.pauses[k] = p
	return nil
}

func (s *Store) DeleteSpendPausesBefore(_ context.Context, campaignID int64, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := domain.StartOfDay(date)
	for k, p := range s.pauses {
		if k.campaignID == campaignID && domain.StartOfDay(p.ForDate).Before(cutoff) {
			delete(s.pauses, k)
		}
	}
	return nil
}

func (s *Store) HasBudgetAdjustment(_ context.Context, campaignID int64, date time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.adjustments[key(campaignID, date)]
	return ok, nil
}

func (s *Store) MarkBudgetAdjusted(_ context.Context, mark domain.BudgetAdjustmentMark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(mark.CampaignID, mark.AdjustedForDate)
	if _, ok := s.adjustments[k]; !ok {
		s.adjustments[k] = mark
	}
	return nil
}
