package pricerange

import (
	"math"
	"strconv"

	"github.com/Kush-Singh-26/immo/catalog/models"
)

// BoundKind tells ToFilterValue which end of the range a cursor is.
type BoundKind int

const (
	LowerBound BoundKind = iota
	UpperBound
)

// Controller holds the two cursors of the dual-thumb price slider.
// After every write CurMin <= CurMax and both lie within the bounds.
type Controller struct {
	bounds Bounds
	curMin float64
	curMax float64
}

// NewController positions the cursors from the filter state. Empty or
// unparsable bounds sit on the observed ends.
func NewController(b Bounds, state models.FilterState) *Controller {
	c := &Controller{bounds: b, curMin: b.Min, curMax: b.Max}
	if v, ok := ParsePrice(state.PriceMax); ok && state.PriceMax != "" {
		c.SetMax(v)
	}
	if v, ok := ParsePrice(state.PriceMin); ok && state.PriceMin != "" {
		c.SetMin(v)
	}
	return c
}

// Bounds returns the observed range.
func (c *Controller) Bounds() Bounds { return c.bounds }

// Min returns the low cursor.
func (c *Controller) Min() float64 { return c.curMin }

// Max returns the high cursor.
func (c *Controller) Max() float64 { return c.curMax }

// SetMin moves the low cursor. The value is clamped into the observed range;
// if it passes the high cursor, the high cursor is pulled up to it.
func (c *Controller) SetMin(v float64) {
	v = clamp(v, c.bounds.Min, c.bounds.Max)
	c.curMin = v
	if c.curMax < v {
		c.curMax = v
	}
}

// SetMax moves the high cursor. The value is clamped into the observed range;
// if it passes the low cursor, the low cursor is pulled down to it.
func (c *Controller) SetMax(v float64) {
	v = clamp(v, c.bounds.Min, c.bounds.Max)
	c.curMax = v
	if c.curMin > v {
		c.curMin = v
	}
}

// Apply writes both cursors into the filter state as filter strings.
func (c *Controller) Apply(state models.FilterState) models.FilterState {
	return state.WithPrice(
		ToFilterValue(c.curMin, c.bounds.Min, LowerBound),
		ToFilterValue(c.curMax, c.bounds.Max, UpperBound),
	)
}

// Display returns the cursor values with their formatting intent.
func (c *Controller) Display() (lo, hi models.DisplayValue) {
	return models.DisplayValue{Value: c.curMin, Intent: models.IntentCompactCurrency},
		models.DisplayValue{Value: c.curMax, Intent: models.IntentCompactCurrency}
}

// ToFilterValue converts a cursor into a filter string. A cursor resting on
// its observed bound becomes "" so an untouched slider means no filter.
// Lower cursors round down and upper cursors round up to whole units.
func ToFilterValue(value, bound float64, kind BoundKind) string {
	if value == bound {
		return ""
	}
	if kind == LowerBound {
		value = math.Floor(value)
	} else {
		value = math.Ceil(value)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}
