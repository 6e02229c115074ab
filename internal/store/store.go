// Package store provides the document store adapter for the review item
// collections. It is a thin query/update layer: every call is one round
// trip to the backing store and there is no transactional guarantee
// across calls.
package store

import (
	"errors"

	"codeswitch-review/internal/models"
)

// ErrNotFound is returned when an update targets an id that does not
// exist in the pool.
var ErrNotFound = errors.New("review item not found")

// Column names accepted by UpdateByID.
const (
	FieldStatus       = "status"
	FieldReviewer     = "reviewer"
	FieldReviewedText = "reviewed_text"
	FieldReviewedAt   = "reviewed_at"
)

// Store is the contract the review components need from the document
// store: filter queries over named fields, partial update by id, full
// insert by id and a full pool scan.
type Store interface {
	// FindOneByStatus returns an arbitrary single item with the given
	// status, or nil when the pool holds none. No ordering and no
	// exclusivity: two concurrent callers may receive the same item.
	FindOneByStatus(pool models.Pool, status models.Status) (*models.ReviewItem, error)

	// UpdateByID applies a partial field update to one item. Returns
	// ErrNotFound when the id is absent from the pool.
	UpdateByID(pool models.Pool, id string, fields map[string]any) error

	// QueryByReviewer returns every item whose stored reviewer equals
	// the given (already normalized) reviewer string.
	QueryByReviewer(pool models.Pool, reviewer string) ([]models.ReviewItem, error)

	// QueryAll returns every item in the pool.
	QueryAll(pool models.Pool) ([]models.ReviewItem, error)

	// Insert writes a full item by its fixed id, overwriting any
	// existing item with the same id. Re-running an ingestion with the
	// same id scheme is therefore idempotent.
	Insert(pool models.Pool, item models.ReviewItem) error
}
