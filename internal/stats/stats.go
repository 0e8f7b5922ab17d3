// Package stats computes the derived statistics views: the distribution of
// item counts across categories for a single list or for every list created
// in a calendar month. Nothing here is stored; every request recomputes
// from current rows.
package stats

import (
	"context"
	"log/slog"
	"math"
	"regexp"
	"sort"
	"time"

	"github.com/evanhooper/trolley/internal/apperr"
	"github.com/evanhooper/trolley/internal/model"
)

var monthPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// ParseMonth parses a strict "YYYY-MM" string into the half-open UTC
// interval [first-of-month, first-of-next-month). A wrong separator, a
// missing leading zero, or a month outside 01-12 is a validation error.
func ParseMonth(text string) (start, end time.Time, err error) {
	m := monthPattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, time.Time{}, apperr.Validation("month must be in YYYY-MM format")
	}

	year := atoi(m[1])
	month := atoi(m[2])
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, apperr.Validation("month must be between 01 and 12")
	}

	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0)
	return start, end, nil
}

// atoi converts a digits-only string already vetted by monthPattern.
func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

// Breakdown groups items by category id in first-seen order, counts them,
// and computes each category's share of the total, rounded to two decimal
// places. Rows are sorted by count descending; ties keep grouping order.
// Category ids missing from names resolve to "Unknown".
func Breakdown(items []model.Item, names map[int64]string) []model.CategoryCount {
	counts := []model.CategoryCount{}
	if len(items) == 0 {
		return counts
	}

	index := map[int64]int{}
	for _, item := range items {
		i, ok := index[item.CategoryID]
		if !ok {
			name, known := names[item.CategoryID]
			if !known {
				name = "Unknown"
			}
			index[item.CategoryID] = len(counts)
			counts = append(counts, model.CategoryCount{CategoryID: item.CategoryID, Category: name})
			i = len(counts) - 1
		}
		counts[i].Count++
	}

	total := len(items)
	for i := range counts {
		counts[i].Percent = round2(float64(counts[i].Count) / float64(total) * 100)
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ListSource is the slice of the list store the aggregator needs.
type ListSource interface {
	GetByID(ctx context.Context, id int64) (*model.List, error)
	ListInRange(ctx context.Context, start, end time.Time) ([]model.List, error)
}

// ItemSource is the slice of the item store the aggregator needs.
type ItemSource interface {
	ListByList(ctx context.Context, listID int64) ([]model.Item, error)
}

// CategorySource resolves category names for breakdown labels.
type CategorySource interface {
	List(ctx context.Context) ([]model.Category, error)
}

// Service assembles statistics views from the stores.
type Service struct {
	lists      ListSource
	items      ItemSource
	categories CategorySource
	logger     *slog.Logger
}

func NewService(lists ListSource, items ItemSource, categories CategorySource, logger *slog.Logger) *Service {
	return &Service{lists: lists, items: items, categories: categories, logger: logger}
}

// Monthly computes the breakdown for every list created in the given
// month. Lists without items appear with a zero total and an empty
// categories slice.
func (s *Service) Monthly(ctx context.Context, month string) ([]model.ListStatistics, error) {
	start, end, err := ParseMonth(month)
	if err != nil {
		return nil, err
	}

	lists, err := s.lists.ListInRange(ctx, start, end)
	if err != nil {
		return nil, apperr.Internal("failed to load lists", err)
	}

	names, err := s.categoryNames(ctx)
	if err != nil {
		return nil, err
	}

	results := []model.ListStatistics{}
	for _, list := range lists {
		stat, err := s.forList(ctx, list, names)
		if err != nil {
			return nil, err
		}
		results = append(results, stat)
	}
	return results, nil
}

// ForList computes the breakdown for one list, regardless of when it was
// created. A missing list id is a not_found error.
func (s *Service) ForList(ctx context.Context, id int64) (*model.ListStatistics, error) {
	list, err := s.lists.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("failed to load list", err)
	}
	if list == nil {
		return nil, apperr.NotFound("list not found")
	}

	names, err := s.categoryNames(ctx)
	if err != nil {
		return nil, err
	}

	stat, err := s.forList(ctx, *list, names)
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

func (s *Service) forList(ctx context.Context, list model.List, names map[int64]string) (model.ListStatistics, error) {
	items, err := s.items.ListByList(ctx, list.ID)
	if err != nil {
		return model.ListStatistics{}, apperr.Internal("failed to load items", err)
	}

	return model.ListStatistics{
		ListID:    list.ID,
		Name:      list.Name,
		CreatedAt: list.CreatedAt,
		// Row count, not summed quantity. The percentages in the
		// breakdown are defined against this same total.
		TotalQuantity: len(items),
		Categories:    Breakdown(items, names),
	}, nil
}

func (s *Service) categoryNames(ctx context.Context) (map[int64]string, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to load categories", err)
	}
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}
