package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/pribylovaa/commentary/internal/models"
	"github.com/pribylovaa/commentary/internal/ordering"
	"github.com/pribylovaa/commentary/internal/pkg/log"
	"github.com/pribylovaa/commentary/internal/storage"
)

// ReorderReport - итог пересчёта ключей ветки.
type ReorderReport struct {
	// Total - комментариев в ветке.
	Total int
	// Updated - у скольких изменился ключ или глубина.
	Updated int
	// Orphans - недостижимые из корней комментарии; их ключи не трогаются.
	Orphans int
}

// byCreation - стабильный порядок обхода: created_at, затем id.
func byCreation(a, b models.Comment) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}

	return cmp.Compare(a.ID, b.ID)
}

// compactKeys обходит ветку в глубину в порядке создания и назначает канонические ключи:
// корни 1, 2, 3, ...; ребёнок глубины d под p - p + 10^-d * index (index с 1).
// Глубина заодно выправляется до min(parent.depth + 1, maxDepth).
func compactKeys(flat []models.Comment, maxDepth int32) (map[string]models.SortKeyUpdate, int) {
	groups := make(map[string][]models.Comment)
	for _, c := range flat {
		groups[c.ParentID] = append(groups[c.ParentID], c)
	}
	for k := range groups {
		slices.SortFunc(groups[k], byCreation)
	}

	type item struct {
		id    string
		key   decimal.Decimal
		depth int32
	}

	out := make(map[string]models.SortKeyUpdate, len(flat))
	stack := make([]item, 0, len(groups[""]))

	roots := groups[""]
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, item{id: roots[i].ID, key: ordering.CompactRootKey(i + 1), depth: 1})
	}

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := out[it.id]; ok {
			continue
		}
		out[it.id] = models.SortKeyUpdate{ID: it.id, SortOrder: it.key, Depth: it.depth}

		kids := groups[it.id]
		depth := ordering.ChildDepth(it.depth, maxDepth)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, item{id: kids[i].ID, key: ordering.CompactKey(it.key, depth, i+1), depth: depth})
		}
	}

	return out, len(flat) - len(out)
}

// ReorderAll пересчитывает ключи порядка всей ветки в одной транзакции.
// Запись идёт в две стадии пачками по Reorder.BatchSize: сначала изменённые
// комментарии получают временные отрицательные ключи, затем итоговые. Так
// промежуточные состояния не нарушают уникальность ключа среди детей родителя.
func (s *Service) ReorderAll(ctx context.Context, sc models.Scope) (*ReorderReport, error) {
	const op = "service/reorder/ReorderAll"

	lg := log.From(ctx).With("op", op, "site_id", sc.SiteID, "page_id", sc.PageID)

	scope, ok := normalizeScope(sc)
	if !ok {
		lg.Warn("invalid argument: empty scope")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	var report ReorderReport
	err := s.storage.InTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		flat, err := tx.ListByScope(ctx, scope)
		if err != nil {
			return err
		}

		keys, orphans := compactKeys(flat, s.cfg.Limits.MaxDepth)
		report = ReorderReport{Total: len(flat), Orphans: orphans}

		var (
			temp  []models.SortKeyUpdate
			final []models.SortKeyUpdate
		)
		for _, c := range flat {
			u, ok := keys[c.ID]
			if !ok || (u.SortOrder.Equal(c.SortOrder) && u.Depth == c.Depth) {
				continue
			}

			temp = append(temp, models.SortKeyUpdate{
				ID:        c.ID,
				SortOrder: decimal.NewFromInt(-int64(len(temp) + 1)),
				Depth:     c.Depth,
			})
			final = append(final, u)
		}
		report.Updated = len(final)

		for _, stage := range [][]models.SortKeyUpdate{temp, final} {
			for batch := range slices.Chunk(stage, s.cfg.Reorder.BatchSize) {
				if err := tx.UpdateSortKeys(ctx, scope, batch); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, internalErr(lg, op, err)
	}

	if report.Orphans > 0 {
		lg.Warn("orphans skipped", "count", report.Orphans)
	}

	s.metrics.Reordered(report.Updated)
	lg.Info("thread reordered", "total", report.Total, "updated", report.Updated)

	return &report, nil
}
