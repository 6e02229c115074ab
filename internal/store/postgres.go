package store

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"codeswitch-review/internal/models"
)

var itemColumns = []string{
	"id", "original_text", "candidate_text", "creator_name", "domain",
	"status", "reviewer", "reviewed_text", "reviewed_at", "pulled", "created_at",
}

// PostgresStore implements Store on top of Postgres, one table per pool.
type PostgresStore struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a new Postgres-backed store
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// FindOneByStatus returns one item with the given status, or nil
func (s *PostgresStore) FindOneByStatus(pool models.Pool, status models.Status) (*models.ReviewItem, error) {
	query, args, err := s.sb.
		Select(itemColumns...).
		From(pool.TableName()).
		Where(sq.Eq{"status": string(status)}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	item, err := scanItem(s.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find one by status: %w", err)
	}

	return item, nil
}

// UpdateByID applies a partial field update to one item
func (s *PostgresStore) UpdateByID(pool models.Pool, id string, fields map[string]any) error {
	query, args, err := s.sb.
		Update(pool.TableName()).
		SetMap(fields).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("update by id: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update by id: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// QueryByReviewer returns every item decided by the given reviewer
func (s *PostgresStore) QueryByReviewer(pool models.Pool, reviewer string) ([]models.ReviewItem, error) {
	query, args, err := s.sb.
		Select(itemColumns...).
		From(pool.TableName()).
		Where(sq.Eq{"reviewer": reviewer}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	return s.queryItems(query, args...)
}

// QueryAll returns every item in the pool
func (s *PostgresStore) QueryAll(pool models.Pool) ([]models.ReviewItem, error) {
	query, args, err := s.sb.
		Select(itemColumns...).
		From(pool.TableName()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	return s.queryItems(query, args...)
}

// Insert writes a full item by id, overwriting any existing row
func (s *PostgresStore) Insert(pool models.Pool, item models.ReviewItem) error {
	query, args, err := s.sb.
		Insert(pool.TableName()).
		Columns("id", "original_text", "candidate_text", "creator_name", "domain",
			"status", "reviewer", "reviewed_text", "reviewed_at", "pulled", "created_at").
		Values(item.ID, item.OriginalText, item.CandidateText, item.CreatorName, item.Domain,
			string(item.Status), item.Reviewer, item.ReviewedText, item.ReviewedAt, item.Pulled, item.CreatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			original_text = EXCLUDED.original_text,
			candidate_text = EXCLUDED.candidate_text,
			creator_name = EXCLUDED.creator_name,
			domain = EXCLUDED.domain,
			status = EXCLUDED.status,
			reviewer = EXCLUDED.reviewer,
			reviewed_text = EXCLUDED.reviewed_text,
			reviewed_at = EXCLUDED.reviewed_at,
			pulled = EXCLUDED.pulled`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", item.ID, err)
	}

	return nil
}

func (s *PostgresStore) queryItems(query string, args ...any) ([]models.ReviewItem, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	// Empty slice instead of nil to avoid JSON null
	items := []models.ReviewItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}

	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.ReviewItem, error) {
	var item models.ReviewItem
	var status string

	err := row.Scan(
		&item.ID,
		&item.OriginalText,
		&item.CandidateText,
		&item.CreatorName,
		&item.Domain,
		&status,
		&item.Reviewer,
		&item.ReviewedText,
		&item.ReviewedAt,
		&item.Pulled,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Status, err = models.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	return &item, nil
}
