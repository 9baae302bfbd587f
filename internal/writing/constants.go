package writing

import "math"

// Layout constants. Radii are in pixels at scale 1.
const (
	DefaultWordRadius = 200
	DefaultDotRadius  = DefaultWordRadius / 20
	MinRadius         = 1

	SyllableInitialScaleMin = 0.6
	SyllableInitialScaleMax = 0.8
	SyllableScaleMin        = 0.3
	SyllableScaleMax        = 0.85

	InnerCircleInitialScaleMin = 0.4
	InnerCircleInitialScaleMax = 0.6
	InnerCircleScaleMin        = 0.2
	InnerCircleScaleMax        = 0.7

	OuterCircleScaleMin = 1.2
	OuterCircleScaleMax = 2

	DigitScaleMin = 0.6
	DigitScaleMax = 1.2

	MarkInitialScaleMin = 0.15
	MarkInitialScaleMax = 0.25
	MarkScaleMin        = 0.1
	MarkScaleMax        = 0.4

	DefaultHalfLineDistance = 8
	MinHalfLineDistance     = 2

	DefaultCanvasWidth  = 800
	DefaultCanvasHeight = 600

	WordBorders       = "21"
	NumberGroupBorder = "2"
)

var (
	lineWidths   = map[byte]float64{'1': 3, '2': 8}
	minLineWidth = map[byte]float64{'1': 1, '2': 2}
)

// LineWidth returns the stroke width of a border character at scale.
func LineWidth(border byte, scale float64) float64 {
	return math.Max(math.Ceil(lineWidths[border]*scale), minLineWidth[border])
}

// HalfLineDistance returns half the gap between parallel lines at scale.
func HalfLineDistance(scale float64) float64 {
	return math.Max(DefaultHalfLineDistance*scale, MinHalfLineDistance)
}

func minRadius(r float64) float64 {
	return math.Max(r, MinRadius)
}

type pressedType int

const (
	pressedNone pressedType = iota
	pressedSelf
	pressedOuter
	pressedInner
	pressedChild
	pressedParent
)
