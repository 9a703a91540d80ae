package domain_test

import (
	"testing"

	"github.com/vigor-health/vigor/internal/domain"
)

func TestTierFor_Boundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{250, "Bronze"},
		{350, "Bronze"},
		{351, "Silver"},
		{600, "Silver"},
		{601, "Gold"},
		{751, "Platinum"},
		{901, "Champion"},
		{1100, "Champion"},
		{150, "Bronze"},    // below the table clamps down
		{2000, "Champion"}, // above the table clamps up
	}
	for _, c := range cases {
		if got := domain.TierFor(c.score); got.Name != c.want {
			t.Errorf("TierFor(%v) = %s, want %s", c.score, got.Name, c.want)
		}
	}
}

func TestRankFor_Progress(t *testing.T) {
	r := domain.RankFor(300)
	if r.Tier.Name != "Bronze" {
		t.Fatalf("tier = %s, want Bronze", r.Tier.Name)
	}
	if r.ProgressWithinTier < 0 || r.ProgressWithinTier > 1 {
		t.Errorf("progress = %v, want within [0,1]", r.ProgressWithinTier)
	}
	if r.PointsToNextTier != 51 {
		t.Errorf("points to next = %v, want 51", r.PointsToNextTier)
	}

	top := domain.RankFor(1100)
	if top.PointsToNextTier != 0 {
		t.Errorf("points at the very top = %v, want 0", top.PointsToNextTier)
	}
}
