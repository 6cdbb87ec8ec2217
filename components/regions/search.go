package regions

import (
	"sort"
	"strings"
)

// Search returns regions whose name or code contains query, prefix matches
// first. Ties keep list order.
func Search(regions []Region, query string, limit int, opts Options) []Region {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			if len(regions) <= limit {
				return append([]Region{}, regions...)
			}
			return append([]Region{}, regions[:limit]...)
		}
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]matchedRegion, 0, 32)
	for _, region := range regions {
		name := strings.ToLower(region.Name)
		code := strings.ToLower(region.Code)
		if !strings.Contains(name, q) && code != q {
			continue
		}
		matches = append(matches, matchedRegion{
			region:   region,
			isPrefix: code == q || strings.HasPrefix(name, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].isPrefix && !matches[j].isPrefix
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Region, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.region)
	}
	return out
}

type matchedRegion struct {
	region   Region
	isPrefix bool
}
