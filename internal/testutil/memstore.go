package testutil

import (
	"errors"
	"sort"
	"sync"
	"time"

	"codeswitch-review/internal/models"
	"codeswitch-review/internal/store"
)

var errStoreUnavailable = errors.New("store unavailable")

// MemStore is an in-memory Store for unit tests. FindOneByStatus picks
// the lowest id by default so tests are deterministic; NextPick can
// override the selection.
type MemStore struct {
	mu    sync.Mutex
	items map[models.Pool]map[string]models.ReviewItem

	// NextPick, when set, chooses which matching id FindOneByStatus
	// returns. Returning "" falls back to the default ordering.
	NextPick func(pool models.Pool, candidates []string) string

	// FailInsertAt, when > 0, makes the n-th Insert call fail. Used to
	// exercise partial ingestion.
	FailInsertAt int
	insertCalls  int
}

var _ store.Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store
func NewMemStore() *MemStore {
	items := make(map[models.Pool]map[string]models.ReviewItem)
	for _, pool := range models.Pools {
		items[pool] = make(map[string]models.ReviewItem)
	}
	return &MemStore{items: items}
}

// Seed inserts items directly, bypassing the insert failure hook
func (m *MemStore) Seed(pool models.Pool, items ...models.ReviewItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range items {
		m.items[pool][item.ID] = item
	}
}

// Get returns one item and whether it exists
func (m *MemStore) Get(pool models.Pool, id string) (models.ReviewItem, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[pool][id]
	return item, ok
}

func (m *MemStore) FindOneByStatus(pool models.Pool, status models.Status) (*models.ReviewItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var candidates []string
	for id, item := range m.items[pool] {
		if item.Status == status {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sort.Strings(candidates)

	pick := candidates[0]
	if m.NextPick != nil {
		if chosen := m.NextPick(pool, candidates); chosen != "" {
			pick = chosen
		}
	}

	item := m.items[pool][pick]
	return &item, nil
}

func (m *MemStore) UpdateByID(pool models.Pool, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[pool][id]
	if !ok {
		return store.ErrNotFound
	}

	for field, value := range fields {
		switch field {
		case store.FieldStatus:
			item.Status = models.Status(value.(string))
		case store.FieldReviewer:
			if value == nil {
				item.Reviewer = nil
			} else {
				s := value.(string)
				item.Reviewer = &s
			}
		case store.FieldReviewedText:
			if value == nil {
				item.ReviewedText = nil
			} else {
				s := value.(string)
				item.ReviewedText = &s
			}
		case store.FieldReviewedAt:
			if value == nil {
				item.ReviewedAt = nil
			} else {
				t := value.(time.Time)
				item.ReviewedAt = &t
			}
		}
	}

	m.items[pool][id] = item
	return nil
}

func (m *MemStore) QueryByReviewer(pool models.Pool, reviewer string) ([]models.ReviewItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := []models.ReviewItem{}
	for _, item := range m.items[pool] {
		if item.Reviewer != nil && *item.Reviewer == reviewer {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *MemStore) QueryAll(pool models.Pool) ([]models.ReviewItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := []models.ReviewItem{}
	for _, item := range m.items[pool] {
		items = append(items, item)
	}
	return items, nil
}

func (m *MemStore) Insert(pool models.Pool, item models.ReviewItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.insertCalls++
	if m.FailInsertAt > 0 && m.insertCalls == m.FailInsertAt {
		return errStoreUnavailable
	}

	m.items[pool][item.ID] = item
	return nil
}
