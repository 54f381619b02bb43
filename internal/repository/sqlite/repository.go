package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"shortctl/internal/domain"
	"shortctl/internal/metrics"
	"shortctl/internal/repository"
)

// Repository implements repository.ShortURLRepository using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository
func New(databasePath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", databasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys and WAL mode for better performance
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	repo := &Repository{db: db}

	if err := repo.runMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repo, nil
}

// orderFields maps the public order-by field names onto table columns. Only
// whitelisted fields may reach the ORDER BY clause.
var orderFields = map[string]string{
	"shortCode":   "u.short_code",
	"title":       "u.title",
	"dateCreated": "u.created_at",
	"longUrl":     "u.original_url",
	"visits":      "u.visit_count",
}

// ListShortURLs returns one page of short URLs matching the given params
func (r *Repository) ListShortURLs(ctx context.Context, params domain.ListParams) (*domain.Page, error) {
	metrics.ListQueries.Inc()

	if !params.Unbounded() && params.ItemsPerPage < 1 {
		return nil, fmt.Errorf("items per page must be positive, got %d", params.ItemsPerPage)
	}

	where, args := buildFilters(params)

	var total int
	countQuery := "SELECT COUNT(*) FROM short_urls u" + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count short URLs: %w", err)
	}

	order, err := orderClause(params.OrderBy)
	if err != nil {
		return nil, err
	}

	page := &domain.Page{
		CurrentPage: params.Page,
		PagesCount:  1,
		TotalItems:  total,
	}

	query := `
	SELECT u.id, u.short_code, u.title, u.short_url, u.original_url, u.created_at, u.visit_count,
	       COALESCE(GROUP_CONCAT(t.tag), '')
	FROM short_urls u
	LEFT JOIN short_url_tags t ON t.short_url_id = u.id` + where + `
	GROUP BY u.id` + order

	queryArgs := args
	if !params.Unbounded() {
		page.PagesCount = (total + params.ItemsPerPage - 1) / params.ItemsPerPage
		if page.PagesCount < 1 {
			page.PagesCount = 1
		}
		query += " LIMIT ? OFFSET ?"
		queryArgs = append(queryArgs, params.ItemsPerPage, (params.Page-1)*params.ItemsPerPage)
	} else {
		page.CurrentPage = 1
	}

	rows, err := r.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to list short URLs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry domain.ShortURL
		var tags string
		if err := rows.Scan(
			&entry.ID,
			&entry.ShortCode,
			&entry.Title,
			&entry.ShortURL,
			&entry.OriginalURL,
			&entry.CreatedAt,
			&entry.VisitCount,
			&tags,
		); err != nil {
			return nil, fmt.Errorf("failed to scan short URL row: %w", err)
		}
		entry.Tags = splitTags(tags)
		page.Items = append(page.Items, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read short URL rows: %w", err)
	}

	return page, nil
}

// CreateShortURL stores a fully-formed short URL row with its tags
func (r *Repository) CreateShortURL(ctx context.Context, shortURL domain.ShortURL) (*domain.ShortURL, error) {
	if shortURL.ID == "" {
		shortURL.ID = uuid.NewString()
	}
	shortURL.CreatedAt = shortURL.CreatedAt.UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
	INSERT INTO short_urls (id, short_code, title, short_url, original_url, created_at, visit_count)
	VALUES (?, ?, ?, ?, ?, ?, ?)`,
		shortURL.ID,
		shortURL.ShortCode,
		shortURL.Title,
		shortURL.ShortURL,
		shortURL.OriginalURL,
		shortURL.CreatedAt,
		shortURL.VisitCount,
	); err != nil {
		return nil, fmt.Errorf("failed to create short URL: %w", err)
	}

	for _, tag := range shortURL.Tags {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO short_url_tags (short_url_id, tag) VALUES (?, ?)",
			shortURL.ID, tag); err != nil {
			return nil, fmt.Errorf("failed to attach tag %q: %w", tag, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit short URL: %w", err)
	}

	return &shortURL, nil
}

// Close closes the repository connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// buildFilters renders the WHERE clause for the given params
func buildFilters(params domain.ListParams) (string, []any) {
	var conds []string
	var args []any

	if params.SearchTerm != "" {
		conds = append(conds, "(u.original_url LIKE ? OR u.short_code LIKE ?)")
		pattern := "%" + params.SearchTerm + "%"
		args = append(args, pattern, pattern)
	}

	if len(params.Tags) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(params.Tags)), ",")
		conds = append(conds, fmt.Sprintf(
			"u.id IN (SELECT short_url_id FROM short_url_tags WHERE tag IN (%s))", placeholders))
		for _, tag := range params.Tags {
			args = append(args, tag)
		}
	}

	if params.StartDate != nil {
		conds = append(conds, "u.created_at >= ?")
		args = append(args, params.StartDate.UTC())
	}

	if params.EndDate != nil {
		conds = append(conds, "u.created_at <= ?")
		args = append(args, params.EndDate.UTC())
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderClause renders the ORDER BY clause, validating the field against the
// whitelist. Listings without an explicit ordering come back oldest first.
func orderClause(orderBy domain.OrderBy) (string, error) {
	if orderBy.IsEmpty() {
		return " ORDER BY u.created_at ASC", nil
	}

	column, ok := orderFields[orderBy.Field]
	if !ok {
		return "", fmt.Errorf("unsupported order-by field: %s", orderBy.Field)
	}

	dir := string(orderBy.Dir)
	if dir == "" {
		dir = string(domain.OrderAsc)
	}
	return fmt.Sprintf(" ORDER BY %s %s", column, dir), nil
}

// splitTags converts a GROUP_CONCAT result back into a sorted tag list
func splitTags(concatenated string) []string {
	if concatenated == "" {
		return nil
	}
	tags := strings.Split(concatenated, ",")
	sort.Strings(tags)
	return tags
}

// Ensure Repository implements the interface
var _ repository.ShortURLRepository = (*Repository)(nil)
