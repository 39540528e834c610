// Package recommend ranks regions against a user's preference tags.
package recommend

import (
	"slices"

	"github.com/derichenko12/BeyondHomeV3/pkg/catalog"
)

// Ranked is a region with its preference score.
type Ranked struct {
	Region  catalog.Region `json:"region"`
	Score   int            `json:"score"`
	Matched []string       `json:"matched"`
}

// Score counts the selected tags that appear in any of the region's
// descriptive tag lists. No weighting, no normalisation.
func Score(region catalog.Region, selected []string) int {
	return len(matched(region, selected))
}

func matched(region catalog.Region, selected []string) []string {
	tags := region.Tags()
	var out []string
	for _, t := range selected {
		if slices.Contains(tags, t) && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

// Rank scores every region and sorts them by descending score. Regions with
// equal scores keep their input order.
func Rank(regions []catalog.Region, selected []string) []Ranked {
	out := make([]Ranked, 0, len(regions))
	for _, r := range regions {
		m := matched(r, selected)
		out = append(out, Ranked{Region: r, Score: len(m), Matched: m})
	}
	slices.SortStableFunc(out, func(a, b Ranked) int {
		return b.Score - a.Score
	})
	return out
}
