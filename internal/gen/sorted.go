package gen

import (
	"fmt"
	"sort"

	"stamp/internal/diag"
)

// Sorted validates ordering for a #[sorted] item. Enum variants and match
// arm paths must appear in lexical order; in a match the wildcard arm must
// come last. Validation never changes the item's tokens, it only reports.
//
// Returns false when the item shape itself could not be read; ordering
// violations alone still return true.
func Sorted(item *Item, reporter diag.Reporter) bool {
	switch item.Kind {
	case ItemEnum:
		return sortedEnum(item, reporter)
	case ItemMatch:
		return sortedMatch(item, reporter)
	default:
		if reporter != nil {
			reporter.Report(diag.GenUnsupported, diag.SevError, item.Tokens[0].Span(),
				"expected enum or match expression", nil, nil)
		}
		return false
	}
}

func sortedEnum(item *Item, reporter diag.Reporter) bool {
	variants, ok := item.Variants(reporter)
	if !ok {
		return false
	}
	var seen []string
	for _, v := range variants {
		var before string
		var misplaced bool
		seen, before, misplaced = insertSorted(seen, v.Name)
		if misplaced {
			if reporter != nil {
				reporter.Report(diag.GenOutOfOrder, diag.SevError, v.Sp,
					fmt.Sprintf("%s should sort before %s", v.Name, before), nil, nil)
			}
			// one diagnostic per enum: later variants compare against a
			// broken prefix and would only produce noise
			return true
		}
	}
	return true
}

func sortedMatch(item *Item, reporter diag.Reporter) bool {
	arms, ok := item.Arms(reporter)
	if !ok {
		return false
	}
	var seen []string
	for i, arm := range arms {
		switch {
		case arm.Unsupported:
			if reporter != nil {
				reporter.Report(diag.GenUnsupported, diag.SevError, arm.Sp,
					"unsupported by #[sorted]", nil, nil)
			}
		case arm.Wildcard:
			if i != len(arms)-1 && reporter != nil {
				reporter.Report(diag.GenWildcardNotLast, diag.SevError, arm.Sp,
					"wildcard arm must come last", nil, nil)
			}
		default:
			var before string
			var misplaced bool
			seen, before, misplaced = insertSorted(seen, arm.Path)
			if misplaced && reporter != nil {
				reporter.Report(diag.GenOutOfOrder, diag.SevError, arm.Sp,
					fmt.Sprintf("%s should sort before %s", arm.Path, before), nil, nil)
			}
		}
	}
	return true
}

// insertSorted adds name to the sorted seen list. When some earlier entry
// sorts after name, the arrival order was wrong: before is the first such
// entry, the one name should have preceded.
func insertSorted(seen []string, name string) (out []string, before string, misplaced bool) {
	i := sort.SearchStrings(seen, name)
	if i < len(seen) && seen[i] != name {
		before, misplaced = seen[i], true
	}
	seen = append(seen, "")
	copy(seen[i+1:], seen[i:])
	seen[i] = name
	return seen, before, misplaced
}
