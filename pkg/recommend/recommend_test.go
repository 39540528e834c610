package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derichenko12/BeyondHomeV3/pkg/catalog"
)

func TestScore(t *testing.T) {
	r := catalog.Region{
		Climate:   []string{"mediterranean", "dry"},
		Landscape: []string{"coastal"},
		Energy:    []string{"sunny"},
		Crops:     []string{"olives"},
	}
	assert.Equal(t, 0, Score(r, nil))
	assert.Equal(t, 2, Score(r, []string{"sunny", "olives", "forest"}))
	assert.Equal(t, 1, Score(r, []string{"sunny", "sunny"}), "duplicate selections count once")
}

func TestRankDescending(t *testing.T) {
	cat := catalog.Default()
	ranked := Rank(cat.Regions, []string{"forest", "lakes", "cold_winters"})
	require.Len(t, ranked, len(cat.Regions))

	assert.Equal(t, "varmland", ranked[0].Region.ID)
	assert.Equal(t, 3, ranked[0].Score)
	assert.Equal(t, []string{"forest", "lakes", "cold_winters"}, ranked[0].Matched)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestRankTieStability(t *testing.T) {
	regions := []catalog.Region{
		{ID: "a", Climate: []string{"sunny"}},
		{ID: "b", Climate: []string{"rainy"}},
		{ID: "c", Climate: []string{"sunny"}},
		{ID: "d", Climate: []string{"rainy"}},
	}
	ranked := Rank(regions, []string{"sunny"})

	var ids []string
	for _, r := range ranked {
		ids = append(ids, r.Region.ID)
	}
	assert.Equal(t, []string{"a", "c", "b", "d"}, ids)
}

func TestRankNoTagsKeepsOrder(t *testing.T) {
	cat := catalog.Default()
	ranked := Rank(cat.Regions, nil)
	for i, r := range ranked {
		assert.Equal(t, cat.Regions[i].ID, r.Region.ID)
		assert.Zero(t, r.Score)
	}
}
