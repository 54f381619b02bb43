package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortctl/internal/domain"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, repo.Close())
	})
	return repo
}

func seedShortURL(t *testing.T, repo *Repository, code, originalURL string, createdAt time.Time, visits int, tags ...string) {
	t.Helper()
	_, err := repo.CreateShortURL(context.Background(), domain.ShortURL{
		ShortCode:   code,
		Title:       "Title " + code,
		ShortURL:    "https://s.test/" + code,
		OriginalURL: originalURL,
		CreatedAt:   createdAt,
		VisitCount:  visits,
		Tags:        tags,
	})
	require.NoError(t, err)
}

func seedFixture(t *testing.T, repo *Repository) {
	t.Helper()
	day := func(month, d int) time.Time {
		return time.Date(2026, time.Month(month), d, 12, 0, 0, 0, time.UTC)
	}
	seedShortURL(t, repo, "abc", "https://example.com/foo", day(1, 1), 5, "news")
	seedShortURL(t, repo, "def", "https://example.com/bar", day(2, 1), 2, "news", "tech")
	seedShortURL(t, repo, "ghi", "https://other.org/baz", day(3, 1), 9)
	seedShortURL(t, repo, "jkl", "https://example.com/qux", day(4, 1), 0, "tech")
	seedShortURL(t, repo, "mno", "https://site.net/foo", day(5, 1), 7, "videos")
}

func shortCodes(items []domain.ShortURL) []string {
	codes := make([]string, len(items))
	for i, item := range items {
		codes[i] = item.ShortCode
	}
	return codes
}

func TestRepository_New(t *testing.T) {
	repo := setupTestRepo(t)
	assert.NotNil(t, repo)

	// Verify database connection is working
	assert.NoError(t, repo.db.Ping())
}

func TestRepository_New_InvalidPath(t *testing.T) {
	repo, err := New("/invalid/path/to/database.db")
	assert.Error(t, err)
	assert.Nil(t, repo)
}

func TestRepository_CreateShortURL(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.CreateShortURL(ctx, domain.ShortURL{
		ShortCode:   "abc123",
		Title:       "Example",
		ShortURL:    "https://s.test/abc123",
		OriginalURL: "https://example.com",
		CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		VisitCount:  3,
		Tags:        []string{"news"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID, "an ID should be assigned")

	page, err := repo.ListShortURLs(ctx, domain.ListParams{Page: 1, ItemsPerPage: domain.ItemsPerPageAll})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	got := page.Items[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "abc123", got.ShortCode)
	assert.Equal(t, "Example", got.Title)
	assert.Equal(t, "https://s.test/abc123", got.ShortURL)
	assert.Equal(t, "https://example.com", got.OriginalURL)
	assert.Equal(t, 3, got.VisitCount)
	assert.Equal(t, []string{"news"}, got.Tags)
	assert.WithinDuration(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), got.CreatedAt, time.Second)
}

func TestRepository_CreateShortURL_DuplicateCode(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	seedShortURL(t, repo, "abc123", "https://example.com", time.Now().UTC(), 0)

	_, err := repo.CreateShortURL(ctx, domain.ShortURL{
		ShortCode:   "abc123",
		ShortURL:    "https://s.test/abc123",
		OriginalURL: "https://different.com",
		CreatedAt:   time.Now().UTC(),
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create short URL")
}

func TestRepository_ListShortURLs_Pagination(t *testing.T) {
	repo := setupTestRepo(t)
	seedFixture(t, repo)
	ctx := context.Background()

	first, err := repo.ListShortURLs(ctx, domain.ListParams{Page: 1, ItemsPerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "def"}, shortCodes(first.Items))
	assert.Equal(t, 1, first.CurrentPage)
	assert.Equal(t, 3, first.PagesCount)
	assert.Equal(t, 5, first.TotalItems)
	assert.True(t, first.HasNextPage())

	last, err := repo.ListShortURLs(ctx, domain.ListParams{Page: 3, ItemsPerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"mno"}, shortCodes(last.Items))
	assert.Equal(t, 3, last.CurrentPage)
	assert.False(t, last.HasNextPage())
}

func TestRepository_ListShortURLs_Unbounded(t *testing.T) {
	repo := setupTestRepo(t)
	seedFixture(t, repo)

	page, err := repo.ListShortURLs(context.Background(), domain.ListParams{
		Page:         1,
		ItemsPerPage: domain.ItemsPerPageAll,
	})
	require.NoError(t, err)

	assert.Len(t, page.Items, 5)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 1, page.PagesCount)
	assert.False(t, page.HasNextPage())
}

func TestRepository_ListShortURLs_EmptyResult(t *testing.T) {
	repo := setupTestRepo(t)

	page, err := repo.ListShortURLs(context.Background(), domain.ListParams{Page: 1, ItemsPerPage: 10})
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.PagesCount)
	assert.Equal(t, 0, page.TotalItems)
	assert.False(t, page.HasNextPage())
}

func TestRepository_ListShortURLs_SearchTerm(t *testing.T) {
	repo := setupTestRepo(t)
	seedFixture(t, repo)
	ctx := context.Background()

	// Matches long URLs.
	page, err := repo.ListShortURLs(ctx, domain.ListParams{
		Page: 1, ItemsPerPage: 10, SearchTerm: "example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "def", "jkl"}, shortCodes(page.Items))
	assert.Equal(t, 3, page.TotalItems)

	// Matches short codes too.
	page, err = repo.ListShortURLs(ctx, domain.ListParams{
		Page: 1, ItemsPerPage: 10, SearchTerm: "gh",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ghi"}, shortCodes(page.Items))
}

func TestRepository_ListShortURLs_TagFilter(t *testing.T) {
	repo := setupTestRepo(t)
	seedFixture(t, repo)
	ctx := context.Background()

	page, err := repo.ListShortURLs(ctx, domain.ListParams{
		Page: 1, ItemsPerPage: 10, Tags: []string{"news"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "def"}, shortCodes(page.Items))

	page, err = repo.ListShortURLs(ctx, domain.ListParams{
		Page: 1, ItemsPerPage: 10, Tags: []string{"news", "videos"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "def", "mno"}, shortCodes(page.Items))
}

func TestRepository_ListShortURLs_DateRange(t *testing.T) {
	repo := setupTestRepo(t)
	seedFixture(t, repo)

	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	page, err := repo.ListShortURLs(context.Background(), domain.ListParams{
		Page: 1, ItemsPerPage: 10, StartDate: &start, EndDate: &end,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"def", "ghi", "jkl"}, shortCodes(page.Items))
}

func TestRepository_ListShortURLs_OrderBy(t *testing.T) {
	repo := setupTestRepo(t)
	seedFixture(t, repo)
	ctx := context.Background()

	page, err := repo.ListShortURLs(ctx, domain.ListParams{
		Page: 1, ItemsPerPage: 10,
		OrderBy: domain.OrderBy{Field: "visits", Dir: domain.OrderDesc},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ghi", "mno", "abc", "def", "jkl"}, shortCodes(page.Items))

	// Direction defaults to ascending.
	page, err = repo.ListShortURLs(ctx, domain.ListParams{
		Page: 1, ItemsPerPage: 10,
		OrderBy: domain.OrderBy{Field: "visits"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"jkl", "def", "abc", "mno", "ghi"}, shortCodes(page.Items))
}

func TestRepository_ListShortURLs_UnsupportedOrderField(t *testing.T) {
	repo := setupTestRepo(t)
	seedFixture(t, repo)

	_, err := repo.ListShortURLs(context.Background(), domain.ListParams{
		Page: 1, ItemsPerPage: 10,
		OrderBy: domain.OrderBy{Field: "password"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported order-by field")
}

func TestRepository_ListShortURLs_TagsComeBackSorted(t *testing.T) {
	repo := setupTestRepo(t)
	seedShortURL(t, repo, "abc", "https://example.com", time.Now().UTC(), 0, "zeta", "alpha", "mid")

	page, err := repo.ListShortURLs(context.Background(), domain.ListParams{Page: 1, ItemsPerPage: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, page.Items[0].Tags)
}
