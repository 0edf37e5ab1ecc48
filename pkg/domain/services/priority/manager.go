package priority

import (
	"math"
	"sort"
	"time"

	"github.com/relieflogix/relief/pkg/domain/entities"
)

// Score is the continuous effective-priority value in [0, 3]; lower is
// more urgent.
type Score float64

// Manager is a stateless value over its AgingConfig, mirroring the
// teacher's NewEngine(config)-style constructors: no hidden global
// state, pass the manager around explicitly.
type Manager struct {
	cfg AgingConfig
}

// NewManager constructs a Manager over the given aging configuration.
func NewManager(cfg AgingConfig) *Manager {
	return &Manager{cfg: cfg}
}

type agingParams struct {
	threshold    float64
	maxEscalation float64
}

func (m *Manager) paramsFor(level entities.PriorityLevel) (agingParams, bool) {
	switch level {
	case entities.Low:
		return agingParams{threshold: m.cfg.LowToMedium, maxEscalation: 3}, true
	case entities.Medium:
		return agingParams{threshold: m.cfg.MediumToHigh, maxEscalation: 2}, true
	case entities.High:
		return agingParams{threshold: m.cfg.HighToCritical, maxEscalation: 1}, true
	case entities.Critical:
		return agingParams{}, false
	default:
		return agingParams{}, false
	}
}

// agingBonus computes the logarithmic escalation bonus for a need that
// has waited `waitedHours` past its level's threshold.
func (m *Manager) agingBonus(level entities.PriorityLevel, waitedHours float64) float64 {
	params, escalates := m.paramsFor(level)
	if !escalates || waitedHours <= params.threshold {
		return 0
	}
	bonus := math.Log2(waitedHours/params.threshold + 1)
	if bonus > params.maxEscalation {
		return params.maxEscalation
	}
	return bonus
}

func deadlineBonus(n *entities.Need, now time.Time) float64 {
	if n.Deadline == nil {
		return 0
	}
	hoursUntil := n.Deadline.Sub(now).Hours()
	switch {
	case hoursUntil <= 0:
		return 2.0
	case hoursUntil <= 6:
		return 1.0
	case hoursUntil <= 24:
		return 0.5
	default:
		return 0
	}
}

func completionBonus(n *entities.Need) float64 {
	if n.FulfillmentPercent() >= 80 && !n.IsFulfilled() {
		return 0.5
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// EffectivePriority computes the continuous score for a single need as
// of now. Pure function of (need, now); no mutation.
func (m *Manager) EffectivePriority(n *entities.Need, now time.Time) Score {
	base := n.Priority.Numeric()
	waitedHours := now.Sub(n.CreatedAt()).Hours()

	aging := m.agingBonus(n.Priority, waitedHours)
	deadline := deadlineBonus(n, now)
	completion := completionBonus(n)

	return Score(clamp(base-aging-deadline-completion, 0.0, 3.0))
}

// EffectiveLevel maps a continuous score to its discrete display level.
func EffectiveLevel(s Score) entities.PriorityLevel {
	switch {
	case s < 0.5:
		return entities.Critical
	case s < 1.5:
		return entities.High
	case s < 2.5:
		return entities.Medium
	default:
		return entities.Low
	}
}

// EffectiveLevel is a convenience that scores then classifies n as of now.
func (m *Manager) EffectiveLevel(n *entities.Need, now time.Time) entities.PriorityLevel {
	return EffectiveLevel(m.EffectivePriority(n, now))
}

// OrderOptions controls which needs Order excludes.
type OrderOptions struct {
	ExcludeFulfilled bool
	ExcludeDeleted   bool
}

// Order returns needs in ascending effective-score order (most urgent
// first), breaking ties deterministically by creation timestamp (older
// first). Returns InvalidArgument if needs is nil.
func (m *Manager) Order(needs []*entities.Need, now time.Time, opts OrderOptions) ([]*entities.Need, error) {
	if needs == nil {
		return nil, entities.NewInvalidArgument("priority.Order", errNilNeeds())
	}

	filtered := make([]*entities.Need, 0, len(needs))
	for _, n := range needs {
		if opts.ExcludeDeleted && n.IsDeleted() {
			continue
		}
		if opts.ExcludeFulfilled && n.IsFulfilled() {
			continue
		}
		filtered = append(filtered, n)
	}

	scores := make(map[*entities.Need]Score, len(filtered))
	for _, n := range filtered {
		scores[n] = m.EffectivePriority(n, now)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		if scores[a] != scores[b] {
			return scores[a] < scores[b]
		}
		return a.CreatedAt().Before(b.CreatedAt())
	})

	return filtered, nil
}
