package domain

// ─── Rank Tiers ─────────────────────────────────────────────────────────────

// Tier is one named bracket of the score range, used for gamified display.
type Tier struct {
	Name     string  `json:"name"`
	MinScore float64 `json:"min_score"`
	MaxScore float64 `json:"max_score"`
}

// Tiers returns the fixed ordered tier table.
func Tiers() []Tier {
	return []Tier{
		{Name: "Bronze", MinScore: 250, MaxScore: 350},
		{Name: "Silver", MinScore: 351, MaxScore: 600},
		{Name: "Gold", MinScore: 601, MaxScore: 750},
		{Name: "Platinum", MinScore: 751, MaxScore: 900},
		{Name: "Champion", MinScore: 901, MaxScore: 1100},
	}
}

// RankInfo describes where a score sits within its tier.
type RankInfo struct {
	Tier               Tier    `json:"tier"`
	ProgressWithinTier float64 `json:"progress_within_tier"` // 0..1
	PointsToNextTier   float64 `json:"points_to_next_tier"`
}

// TierFor finds the tier whose bracket contains the score. Scores below the
// lowest bracket fall into the lowest tier, scores above the highest into the
// highest.
func TierFor(score float64) Tier {
	tiers := Tiers()
	for _, t := range tiers {
		if score >= t.MinScore && score <= t.MaxScore {
			return t
		}
	}
	if score < tiers[0].MinScore {
		return tiers[0]
	}
	return tiers[len(tiers)-1]
}

// RankFor computes the full rank display for a score.
func RankFor(score float64) RankInfo {
	tier := TierFor(score)

	progress := (score - tier.MinScore) / (tier.MaxScore - tier.MinScore)
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	points := tier.MaxScore - score + 1
	if points < 0 {
		points = 0
	}
	// Top tier has no next tier to reach.
	if tier.Name == Tiers()[len(Tiers())-1].Name && score >= tier.MaxScore {
		points = 0
	}

	return RankInfo{
		Tier:               tier,
		ProgressWithinTier: progress,
		PointsToNextTier:   points,
	}
}
