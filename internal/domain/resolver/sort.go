package resolver

import (
	"cmp"
	"slices"

	"panda-menu/internal/domain/entity"
)

const (
	testnetsDisplayName = "Testnets"
	testnetsDescription = "Public Testnets"
)

// SortCategories builds the category summaries shown in the menu.
//
// Categories without active networks are dropped. The current category comes first, then
// testnets, then the rest by descending active count. Ties keep registry order.
func SortCategories(
	grouped *GroupedNetworks,
	metadata map[string]entity.NetworkMetadata,
	current entity.CurrentLocation,
) []entity.CategorySummary {
	if grouped == nil {
		return []entity.CategorySummary{}
	}

	summaries := make([]entity.CategorySummary, 0, grouped.Len())
	for pair := grouped.Oldest(); pair != nil; pair = pair.Next() {
		summary := summarizeCategory(pair.Key, pair.Value, metadata)
		if summary.ActiveCount == 0 {
			continue
		}
		summaries = append(summaries, summary)
	}

	slices.SortStableFunc(summaries, func(a, b entity.CategorySummary) int {
		if c := cmp.Compare(categoryRank(a.CategoryKey, current), categoryRank(b.CategoryKey, current)); c != 0 {
			return c
		}
		return cmp.Compare(b.ActiveCount, a.ActiveCount)
	})

	return summaries
}

func summarizeCategory(
	categoryKey string,
	networks []entity.NetworkEntry,
	metadata map[string]entity.NetworkMetadata,
) entity.CategorySummary {
	activeCount := 0
	for _, entry := range networks {
		if entry.Network.IsActive() {
			activeCount++
		}
	}

	summary := entity.CategorySummary{
		CategoryKey: categoryKey,
		Networks:    networks,
		ActiveCount: activeCount,
	}

	if categoryKey == TestnetsCategory {
		summary.CategoryName = testnetsDisplayName
		summary.Description = testnetsDescription
		return summary
	}

	meta := metadata[categoryKey]
	summary.CategoryName = cmp.Or(meta.DisplayName, categoryKey)
	summary.Description = meta.Description
	return summary
}

// categoryRank orders the current category before testnets before everything else.
func categoryRank(categoryKey string, current entity.CurrentLocation) int {
	switch {
	case current.CategoryKey != "" && categoryKey == current.CategoryKey:
		return 0
	case categoryKey == TestnetsCategory:
		return 1
	default:
		return 2
	}
}
