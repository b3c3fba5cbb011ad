package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/filter"
	"github.com/ramonehamilton/mtg-cardfilter/internal/storage/models"
)

// Repository errors.
var (
	ErrNotFound      = errors.New("saved filter not found")
	ErrDuplicateName = errors.New("saved filter name already exists")
	ErrEmptyName     = errors.New("saved filter name is required")
)

const timeFormat = "2006-01-02 15:04:05.999999"

// FilterRepository handles database operations for saved filters.
type FilterRepository interface {
	// Create stores a new filter under name and assigns its ID.
	Create(ctx context.Context, name string, f filter.Filter) (*models.SavedFilter, error)

	// Get retrieves a saved filter by ID.
	Get(ctx context.Context, id string) (*models.SavedFilter, error)

	// GetByName retrieves a saved filter by name.
	GetByName(ctx context.Context, name string) (*models.SavedFilter, error)

	// List retrieves every saved filter ordered by name.
	List(ctx context.Context) ([]*models.SavedFilter, error)

	// Update replaces the name and filter of an existing saved filter.
	Update(ctx context.Context, id, name string, f filter.Filter) (*models.SavedFilter, error)

	// Delete removes a saved filter by ID.
	Delete(ctx context.Context, id string) error
}

// filterRepository is the concrete implementation of FilterRepository.
type filterRepository struct {
	db *sql.DB
}

// NewFilterRepository creates a new saved filter repository.
func NewFilterRepository(db *sql.DB) FilterRepository {
	return &filterRepository{db: db}
}

// Create stores a new filter under name and assigns its ID.
func (r *filterRepository) Create(ctx context.Context, name string, f filter.Filter) (*models.SavedFilter, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	data, err := filter.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}

	now := time.Now().UTC()
	saved := &models.SavedFilter{
		ID:        uuid.NewString(),
		Name:      name,
		Filter:    f,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO saved_filters (id, name, filter, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		saved.ID,
		saved.Name,
		string(data),
		now.Format(timeFormat),
		now.Format(timeFormat),
	)
	if err != nil {
		return nil, translate(err)
	}
	return saved, nil
}

// Get retrieves a saved filter by ID.
func (r *filterRepository) Get(ctx context.Context, id string) (*models.SavedFilter, error) {
	query := `
		SELECT id, name, filter, created_at, updated_at
		FROM saved_filters
		WHERE id = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByName retrieves a saved filter by name.
func (r *filterRepository) GetByName(ctx context.Context, name string) (*models.SavedFilter, error) {
	query := `
		SELECT id, name, filter, created_at, updated_at
		FROM saved_filters
		WHERE name = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, strings.TrimSpace(name)))
}

// List retrieves every saved filter ordered by name.
func (r *filterRepository) List(ctx context.Context) ([]*models.SavedFilter, error) {
	query := `
		SELECT id, name, filter, created_at, updated_at
		FROM saved_filters
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var filters []*models.SavedFilter
	for rows.Next() {
		saved, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		filters = append(filters, saved)
	}
	return filters, rows.Err()
}

// Update replaces the name and filter of an existing saved filter.
func (r *filterRepository) Update(ctx context.Context, id, name string, f filter.Filter) (*models.SavedFilter, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	data, err := filter.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}

	now := time.Now().UTC()
	query := `
		UPDATE saved_filters
		SET name = ?, filter = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query, name, string(data), now.Format(timeFormat), id)
	if err != nil {
		return nil, translate(err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes a saved filter by ID.
func (r *filterRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM saved_filters WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *filterRepository) scanOne(row *sql.Row) (*models.SavedFilter, error) {
	saved, err := r.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return saved, err
}

// scan decodes one row. A stored filter that no longer decodes is reported
// as an error rather than replaced with a default.
func (r *filterRepository) scan(s scanner) (*models.SavedFilter, error) {
	saved := &models.SavedFilter{}
	var data, createdAt, updatedAt string
	if err := s.Scan(&saved.ID, &saved.Name, &data, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	f, err := filter.Unmarshal([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("saved filter %s: %w", saved.ID, err)
	}
	saved.Filter = f
	saved.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	saved.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)
	return saved, nil
}

func translate(err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicateName
	}
	return err
}
