package dynamic

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"dyngrid/internal/core"
)

// Category names one kind of alteration.
type Category string

const (
	CategoryStart Category = "alter_start_pos"
	CategoryGoal  Category = "alter_goal_pos"
	CategoryWall  Category = "wall"
	CategoryLava  Category = "lava"
	CategorySand  Category = "sand"
)

// Categories lists every category in dispatch order. Sand takes whatever
// probability mass the others leave.
var Categories = []Category{CategoryStart, CategoryGoal, CategoryWall, CategoryLava, CategorySand}

// probabilityTolerance absorbs float rounding when weights are summed.
const probabilityTolerance = 1e-9

// ProbabilityTable maps each category to the chance it is picked. Missing
// categories weigh zero.
type ProbabilityTable map[Category]float64

// Validate checks that the table is a distribution over known categories.
func (t ProbabilityTable) Validate() error {
	sum := 0.0
	for _, c := range Categories {
		sum += t[c]
	}
	for c, p := range t {
		if !knownCategory(c) {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidProbabilities, c)
		}
		if p < 0 || math.IsNaN(p) {
			return fmt.Errorf("%w: %s has weight %v", ErrInvalidProbabilities, c, p)
		}
	}
	if math.Abs(sum-1) > probabilityTolerance {
		return fmt.Errorf("%w: weights sum to %v, want 1", ErrInvalidProbabilities, sum)
	}
	return nil
}

// Pick maps a uniform draw in [0, 1) onto a category using cumulative
// weights in dispatch order. A draw past the cumulative sum, possible when the
// weights fall short of 1 by rounding, goes to the last category with a
// nonzero weight so zero-weight categories are never picked.
func (t ProbabilityTable) Pick(u float64) Category {
	cum := 0.0
	last := CategorySand
	for _, c := range Categories[:len(Categories)-1] {
		if t[c] > 0 {
			last = c
		}
		cum += t[c]
		if u < cum {
			return c
		}
	}
	if t[CategorySand] > 0 {
		return CategorySand
	}
	return last
}

// String renders the table in the form ParseProbabilityTable accepts.
func (t ProbabilityTable) String() string {
	parts := make([]string, 0, len(t))
	for _, c := range Categories {
		if p, ok := t[c]; ok {
			parts = append(parts, string(c)+"="+strconv.FormatFloat(p, 'f', -1, 64))
		}
	}
	return strings.Join(parts, ",")
}

// ParseProbabilityTable reads "category=weight" pairs separated by commas.
// "start" and "goal" are accepted as short names. The result is validated.
func ParseProbabilityTable(s string) (ProbabilityTable, error) {
	t := ProbabilityTable{}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, val, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%w: malformed pair %q", ErrInvalidProbabilities, pair)
		}
		c := Category(strings.TrimSpace(key))
		switch c {
		case "start":
			c = CategoryStart
		case "goal":
			c = CategoryGoal
		}
		p, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: weight for %s: %v", ErrInvalidProbabilities, c, err)
		}
		t[c] += p
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func knownCategory(c Category) bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

// Outcome describes the alteration Alter applied.
type Outcome struct {
	Category Category
	Pos      core.Point
	Changed  bool
}

type alterOptions struct {
	visibilityCheck bool
	trackNovelty    bool
	decay           float64
}

// AlterOption adjusts a single Alter call.
type AlterOption func(*alterOptions)

// WithVisibilityCheck toggles rejection of alterations that expose the goal
// to the start pose. Enabled by default.
func WithVisibilityCheck(on bool) AlterOption {
	return func(o *alterOptions) { o.visibilityCheck = on }
}

// WithNoveltyTracking toggles the novelty update for the altered cell.
// Enabled by default.
func WithNoveltyTracking(on bool) AlterOption {
	return func(o *alterOptions) { o.trackNovelty = on }
}

// WithNoveltyDecay sets the per-unit-distance decay base of the novelty
// update. Defaults to 0.5; must lie in [0, 1].
func WithNoveltyDecay(decay float64) AlterOption {
	return func(o *alterOptions) { o.decay = decay }
}

// Alter applies exactly one alteration drawn from table. Invalid tables and
// decay bases are rejected before anything is drawn. When the alteration
// commits and novelty tracking is on, the novelty field is updated around the
// changed cell.
func (e *Env) Alter(table ProbabilityTable, opts ...AlterOption) (Outcome, error) {
	o := alterOptions{visibilityCheck: true, trackNovelty: true, decay: 0.5}
	for _, opt := range opts {
		opt(&o)
	}
	if err := table.Validate(); err != nil {
		return Outcome{}, err
	}
	if o.decay > 1 || o.decay < 0 || math.IsNaN(o.decay) {
		return Outcome{}, fmt.Errorf("%w: decay base %v must lie in [0, 1]", ErrInvalidDecay, o.decay)
	}

	cat := table.Pick(e.rng.Float64())
	out := Outcome{Category: cat}

	var (
		pos core.Point
		err error
	)
	switch cat {
	case CategoryStart:
		pos, err = e.AlterStartPos(o.visibilityCheck)
	case CategoryGoal:
		pos, err = e.AlterGoalPos(o.visibilityCheck)
	case CategoryWall:
		pos, err = e.SetOrRemoveObj(core.Wall, o.visibilityCheck)
	case CategoryLava:
		pos, err = e.SetOrRemoveObj(core.Lava, o.visibilityCheck)
	default:
		pos, err = e.SetOrRemoveObj(core.Sand, o.visibilityCheck)
	}
	if err != nil {
		return out, err
	}

	out.Pos = pos
	out.Changed = true
	if o.trackNovelty {
		e.novelty.Update(pos, o.decay)
	}
	e.log.Debug("alteration applied", "category", string(cat), "x", pos.X, "y", pos.Y)
	return out, nil
}
