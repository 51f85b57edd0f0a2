// Package carousel projects a ring of cards into pseudo-3D screen placements.
//
// The engine is pure: Project derives every placement from the item index,
// the active index, the ring size and the radius. Rotation state lives in
// Ring, which the host advances on its own timer.
package carousel

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Carousel errors.
var (
	ErrEmptyRing     = errors.New("carousel needs at least one item")
	ErrInvalidRadius = errors.New("carousel radius must be greater than 0")
)

const (
	// FrontThreshold is how close to the full radius an item's depth must be
	// to count as the focused card.
	FrontThreshold = 50.0

	// FrontStackOrder is the stack order of a card exactly at the front.
	// Other focused cards rank just below it by depth, and all of them sit
	// above any computed order.
	FrontStackOrder = math.MaxInt32

	// frontDepthScale spreads focused depths (under FrontThreshold) over
	// distinct integer orders.
	frontDepthScale = 1000

	// MinOpacity is the floor for every card.
	MinOpacity = 0.2

	// DefaultRadius and DefaultInterval match the marketing timeline.
	DefaultRadius   = 260.0
	DefaultInterval = 3 * time.Second
)

// Projection is the placement of one item at one point in time.
type Projection struct {
	Index      int     `json:"index"`
	AngleDeg   float64 `json:"angle_deg"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Scale      float64 `json:"scale"`
	Opacity    float64 `json:"opacity"`
	StackOrder int     `json:"stack_order"`
	Focused    bool    `json:"focused"`
}

// RingConfig describes the ring.
type RingConfig struct {
	ItemCount int
	Radius    float64
	Interval  time.Duration
}

// DefaultRingConfig returns the timeline defaults for n items.
func DefaultRingConfig(n int) RingConfig {
	return RingConfig{ItemCount: n, Radius: DefaultRadius, Interval: DefaultInterval}
}

// Validate checks the ring invariants.
func (c RingConfig) Validate() error {
	if c.ItemCount < 1 {
		return ErrEmptyRing
	}
	if c.Radius <= 0 || math.IsNaN(c.Radius) || math.IsInf(c.Radius, 0) {
		return ErrInvalidRadius
	}
	if c.Interval <= 0 {
		return fmt.Errorf("carousel interval must be greater than 0, got %s", c.Interval)
	}
	return nil
}

// Project computes the placement of itemIndex when activeIndex is in front.
//
// The index difference is reduced modulo itemCount before it is turned into
// an angle, so arbitrarily large active indices keep full precision and
// Project(i, a, n, r) == Project(i, a+n, n, r) holds exactly.
func Project(itemIndex, activeIndex, itemCount int, radius float64) (Projection, error) {
	if itemCount < 1 {
		return Projection{}, ErrEmptyRing
	}
	if radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return Projection{}, ErrInvalidRadius
	}

	baseAngle := 360.0 / float64(itemCount)
	offset := mod(itemIndex-activeIndex, itemCount)
	angleDeg := float64(offset) * baseAngle
	rad := angleDeg * math.Pi / 180

	x := math.Sin(rad) * radius
	z := math.Cos(rad) * radius

	p := Projection{
		Index:    itemIndex,
		AngleDeg: angleDeg,
		X:        x,
		Z:        z,
		Scale:    (z + 2.5*radius) / (3.5 * radius),
		Opacity:  clamp((z+1.5*radius)/(2.5*radius), MinOpacity, 1),
		Focused:  z > radius-FrontThreshold,
	}
	if p.Focused {
		p.StackOrder = FrontStackOrder - int(math.Round((radius-z)*frontDepthScale))
	} else {
		p.StackOrder = int(math.Round(z + radius))
	}
	return p, nil
}

// ProjectAll projects every item of the ring for one tick.
func ProjectAll(activeIndex int, cfg RingConfig) ([]Projection, error) {
	if cfg.ItemCount < 1 {
		return nil, ErrEmptyRing
	}

	out := make([]Projection, cfg.ItemCount)
	for i := range out {
		p, err := Project(i, activeIndex, cfg.ItemCount, cfg.Radius)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// Focused returns the nearest focused projection, if any. Small radii or
// large rings can put more than one card past the front threshold.
func Focused(projections []Projection) (Projection, bool) {
	var best Projection
	found := false
	for _, p := range projections {
		if p.Focused && (!found || p.Z > best.Z) {
			best = p
			found = true
		}
	}
	return best, found
}

// mod returns a non-negative remainder.
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
