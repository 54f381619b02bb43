package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"shortctl/internal/cli/table"
	"shortctl/internal/domain"
	"shortctl/internal/repository"
)

// ListOptions carries the raw flag values of the list command.
type ListOptions struct {
	Page       int
	SearchTerm string
	Tags       string
	OrderBy    string
	ShowTags   bool
	All        bool
	StartDate  string
	EndDate    string
}

// Lister pages through short URLs and prints them as tables, prompting the
// user between pages.
type Lister struct {
	repo repository.ShortURLLister
	in   *bufio.Reader
	out  io.Writer
}

// NewLister creates a Lister reading prompt answers from in and writing
// tables to out.
func NewLister(repo repository.ShortURLLister, in io.Reader, out io.Writer) *Lister {
	return &Lister{
		repo: repo,
		in:   bufio.NewReader(in),
		out:  out,
	}
}

// Run fetches and displays pages of short URLs until the user declines to
// continue or no further pages exist. With All set it issues a single
// unbounded fetch, without prompt or per-page footer.
func (l *Lister) Run(ctx context.Context, opts ListOptions) error {
	if opts.Page < 1 {
		return fmt.Errorf("page must be a positive integer, got %d", opts.Page)
	}

	startDate, err := parseDate(opts.StartDate, "start-date")
	if err != nil {
		return err
	}
	endDate, err := parseDate(opts.EndDate, "end-date")
	if err != nil {
		return err
	}

	itemsPerPage := domain.DefaultItemsPerPage
	if opts.All {
		itemsPerPage = domain.ItemsPerPageAll
	}

	tags := domain.ParseTags(opts.Tags)
	orderBy := domain.ParseOrderBy(opts.OrderBy)

	renderer := table.NewRenderer(l.out)
	page := opts.Page
	for {
		params := domain.ListParams{
			Page:         page,
			ItemsPerPage: itemsPerPage,
			SearchTerm:   opts.SearchTerm,
			Tags:         tags,
			OrderBy:      orderBy,
			StartDate:    startDate,
			EndDate:      endDate,
		}

		result, err := l.repo.ListShortURLs(ctx, params)
		if err != nil {
			return fmt.Errorf("failed to list short URLs: %w", err)
		}

		l.renderPage(renderer, result, opts.ShowTags, opts.All)

		if opts.All || !result.HasNextPage() {
			break
		}
		if !l.confirmContinue(page + 1) {
			break
		}
		page++
	}

	fmt.Fprintln(l.out, "Short URLs properly listed")
	return nil
}

func (l *Lister) renderPage(renderer *table.Renderer, page *domain.Page, showTags, all bool) {
	headers := []string{"Short code", "Title", "Short URL", "Long URL", "Date", "Visits count"}
	if showTags {
		headers = append(headers, "Tags")
	}

	rows := make([][]string, 0, len(page.Items))
	for _, item := range page.Items {
		row := []string{
			item.ShortCode,
			item.Title,
			item.ShortURL,
			item.OriginalURL,
			item.CreatedAt.Format(time.RFC3339),
			strconv.Itoa(item.VisitCount),
		}
		if showTags {
			row = append(row, strings.Join(item.Tags, ", "))
		}
		rows = append(rows, row)
	}

	footer := ""
	if !all {
		footer = fmt.Sprintf("Page %d of %d", page.CurrentPage, page.PagesCount)
	}
	renderer.Render(headers, rows, footer)
}

// confirmContinue prompts for the next page. Anything but an explicit yes
// stops the listing.
func (l *Lister) confirmContinue(nextPage int) bool {
	fmt.Fprintf(l.out, "Continue with page %d? (y/N) ", nextPage)

	line, err := l.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func parseDate(raw, name string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q, expected an RFC3339 timestamp: %w", name, raw, err)
	}
	return &t, nil
}
