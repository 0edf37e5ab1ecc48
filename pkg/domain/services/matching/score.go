package matching

import (
	"time"

	"github.com/relieflogix/relief/pkg/domain/entities"
)

// matchScore computes the (need, supply) match score per spec.md §4.2.
// A zero return with eligible=false means the supply is ineligible
// outright (category hard cut).
func matchScore(cfg Config, n *entities.Need, s *entities.Supply, now time.Time) (score float64, eligible bool) {
	catScore, catEligible := categoryScore(n.Category, s.Category, cfg.CategoryMatchWeight)
	if !catEligible {
		return 0, false
	}
	score += catScore

	if km, ok := entities.HaversineKm(n.Location, s.Location); ok {
		proximity := 1 - km/cfg.MaxProximityDistanceKm
		if proximity > 0 {
			score += proximity * cfg.ProximityWeight
		}
	}

	remaining := n.Remaining()
	if remaining > 0 {
		ratio := float64(s.Allocatable()) / float64(remaining)
		if ratio > 1 {
			ratio = 1
		}
		score += ratio * 0.2
	}

	if s.IsExpiringSoon(now) {
		score += 0.1
	}

	return score, true
}
