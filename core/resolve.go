package core

import (
	"math"

	"github.com/huangsam/riskboard/internal/contract"
	"github.com/huangsam/riskboard/schema"
)

// Pixel and angular tolerances for the fallback resolution strategies.
// The manual search radii widen as element geometry gets sparser: points
// are small targets, bars are wide, and slices tolerate up to an eighth
// turn of angular distance from a boundary.
const (
	nearestDataRadius   = 50.0
	barHitRadius        = 100.0
	lineHitRadius       = 40.0
	sliceAngleTolerance = math.Pi / 4
)

// ResolveChartElement identifies the chart element at a canvas position,
// walking progressively looser strategies until one yields a hit:
//
//  1. exact hit test with geometric containment
//  2. nearest-element hit test without containment
//  3. the remaining interaction modes, loosest last
//  4. nearest rendered element within a fixed radius
//  5. manual geometry search per chart type
//
// It returns nil when every strategy misses, leaving the fallback to
// the caller's cached element.
func ResolveChartElement(h contract.ChartHandle, pos schema.Point) *schema.ChartElementData {
	if hits := h.ElementsAt(pos, schema.HitNearest, true); len(hits) > 0 {
		return elementData(h, hits[0])
	}
	if hits := h.ElementsAt(pos, schema.HitNearest, false); len(hits) > 0 {
		return elementData(h, hits[0])
	}
	for _, mode := range schema.ProbeHitModes {
		if hits := h.ElementsAt(pos, mode, false); len(hits) > 0 {
			return elementData(h, hits[0])
		}
	}
	if hit, ok := nearestElement(h, pos, nearestDataRadius); ok {
		return elementData(h, hit)
	}
	if hit, ok := geometrySearch(h, pos); ok {
		return elementData(h, hit)
	}
	return nil
}

// elementData materializes a hit into the element's label, value, and
// type. Out-of-range label indices yield an empty label rather than a
// panic, since hit tests can outlive a data refresh.
func elementData(h contract.ChartHandle, hit schema.HitElement) *schema.ChartElementData {
	data := h.Data()

	label := ""
	if hit.Index >= 0 && hit.Index < len(data.Labels) {
		label = data.Labels[hit.Index]
	}

	value := 0.0
	if hit.DatasetIndex >= 0 && hit.DatasetIndex < len(data.Datasets) {
		ds := &data.Datasets[hit.DatasetIndex]
		if hit.Index >= 0 && hit.Index < len(ds.Data) {
			value = ds.Data[hit.Index]
		}
	} else {
		value = data.ValueAt(hit.Index)
	}

	return &schema.ChartElementData{
		Label:        label,
		Value:        value,
		Index:        hit.Index,
		DatasetIndex: hit.DatasetIndex,
		ElementType:  schema.ElementTypeForChart(h.Geometry().Type),
	}
}

// nearestElement scans every rendered element and returns the closest
// one within radius pixels of the position.
func nearestElement(h contract.ChartHandle, pos schema.Point, radius float64) (schema.HitElement, bool) {
	best := schema.HitElement{}
	bestDist := radius
	found := false

	for ds := 0; ds < h.DatasetCount(); ds++ {
		for i := 0; i < h.DatasetLen(ds); i++ {
			geom, ok := h.ElementGeometry(ds, i)
			if !ok {
				continue
			}
			dist := math.Hypot(geom.X-pos.X, geom.Y-pos.Y)
			if dist <= bestDist {
				best = schema.HitElement{DatasetIndex: ds, Index: i}
				bestDist = dist
				found = true
			}
		}
	}
	return best, found
}

// geometrySearch is the last-resort strategy, reconstructing the hit
// from raw chart geometry when every hit test has missed.
func geometrySearch(h contract.ChartHandle, pos schema.Point) (schema.HitElement, bool) {
	switch h.Geometry().Type {
	case "pie", "doughnut":
		return sliceSearch(h, pos)
	case "bar":
		return barSearch(h, pos)
	case "line":
		return pointSearch(h, pos, lineHitRadius)
	default:
		return schema.HitElement{}, false
	}
}

// sliceSearch resolves a pie or doughnut position by angle. A position
// inside a slice's [start, end) arc hits that slice directly; otherwise
// the slice with the closest boundary wins, provided the angular
// distance stays within tolerance.
func sliceSearch(h contract.ChartHandle, pos schema.Point) (schema.HitElement, bool) {
	center := h.Geometry().Center
	angle := normalizeAngle(math.Atan2(pos.Y-center.Y, pos.X-center.X))

	best := schema.HitElement{}
	bestDist := sliceAngleTolerance
	found := false

	for i := 0; i < h.DatasetLen(0); i++ {
		geom, ok := h.ElementGeometry(0, i)
		if !ok {
			continue
		}
		start := normalizeAngle(geom.StartAngle)
		end := normalizeAngle(geom.EndAngle)
		if angleWithin(angle, start, end) {
			return schema.HitElement{DatasetIndex: 0, Index: i}, true
		}
		dist := math.Min(angularDistance(angle, start), angularDistance(angle, end))
		if dist <= bestDist {
			best = schema.HitElement{DatasetIndex: 0, Index: i}
			bestDist = dist
			found = true
		}
	}
	return best, found
}

// barSearch resolves a bar chart position by distance to each bar's
// anchor, falling back to the chart-area bottom when a bar renders with
// no vertical anchor of its own.
func barSearch(h contract.ChartHandle, pos schema.Point) (schema.HitElement, bool) {
	bottom := h.Geometry().Bottom

	best := schema.HitElement{}
	bestDist := barHitRadius
	found := false

	for ds := 0; ds < h.DatasetCount(); ds++ {
		for i := 0; i < h.DatasetLen(ds); i++ {
			geom, ok := h.ElementGeometry(ds, i)
			if !ok {
				continue
			}
			barY := geom.Y
			if barY == 0 {
				barY = bottom
			}
			dist := math.Hypot(geom.X-pos.X, barY-pos.Y)
			if dist <= bestDist {
				best = schema.HitElement{DatasetIndex: ds, Index: i}
				bestDist = dist
				found = true
			}
		}
	}
	return best, found
}

func pointSearch(h contract.ChartHandle, pos schema.Point, radius float64) (schema.HitElement, bool) {
	return nearestElement(h, pos, radius)
}

// normalizeAngle maps any radian angle into [0, 2π).
func normalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// angleWithin reports whether angle lies in the arc [start, end),
// handling arcs that wrap past zero.
func angleWithin(angle, start, end float64) bool {
	if start <= end {
		return angle >= start && angle < end
	}
	return angle >= start || angle < end
}

// angularDistance is the shorter circular distance between two
// normalized angles.
func angularDistance(a, b float64) float64 {
	diff := math.Abs(a - b)
	if diff > math.Pi {
		diff = 2*math.Pi - diff
	}
	return diff
}
