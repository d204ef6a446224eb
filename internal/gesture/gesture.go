// Package gesture classifies drag input for swipe-dismissable list rows.
package gesture

// Thresholds in logical pixels.
const (
	// DismissThreshold is the horizontal travel that commits a dismiss.
	DismissThreshold = 80.0
	// ClassifySlop is the travel after which the gesture locks to one axis.
	ClassifySlop = 10.0
)

// Axis is the locked direction of an in-flight gesture.
type Axis int

const (
	AxisNone Axis = iota
	AxisHorizontal
	AxisVertical
)

// Outcome of a finished gesture.
type Outcome int

const (
	// OutcomeTap means the pointer never left the slop radius.
	OutcomeTap Outcome = iota
	// OutcomeDismiss means a horizontal drag reached DismissThreshold.
	OutcomeDismiss
	// OutcomeSnapBack means a horizontal drag ended short of the threshold.
	OutcomeSnapBack
	// OutcomeScroll means the gesture locked vertical and belongs to the list.
	OutcomeScroll
)

// Recognizer tracks one pointer interaction on a row. The first movement
// beyond ClassifySlop decides horizontal or vertical and the classification
// holds for the rest of the gesture even if the pointer later moves more on
// the other axis.
type Recognizer struct {
	startX, startY float64
	lastX, lastY   float64
	axis           Axis
	active         bool
}

// Begin starts tracking at the touch-down point.
func (r *Recognizer) Begin(x, y float64) {
	r.startX, r.startY = x, y
	r.lastX, r.lastY = x, y
	r.axis = AxisNone
	r.active = true
}

// Move updates the pointer position and returns the locked axis.
func (r *Recognizer) Move(x, y float64) Axis {
	if !r.active {
		return AxisNone
	}
	r.lastX, r.lastY = x, y

	if r.axis == AxisNone {
		dx := abs(x - r.startX)
		dy := abs(y - r.startY)
		if max(dx, dy) >= ClassifySlop {
			if dx >= dy {
				r.axis = AxisHorizontal
			} else {
				r.axis = AxisVertical
			}
		}
	}
	return r.axis
}

// Offset returns the horizontal travel the row should render at. A gesture
// locked vertical renders no offset.
func (r *Recognizer) Offset() float64 {
	if !r.active || r.axis != AxisHorizontal {
		return 0
	}
	return r.lastX - r.startX
}

// End finishes the gesture and reports what the row should do.
func (r *Recognizer) End(x, y float64) Outcome {
	if !r.active {
		return OutcomeTap
	}
	r.Move(x, y)
	r.active = false

	switch r.axis {
	case AxisNone:
		return OutcomeTap
	case AxisVertical:
		return OutcomeScroll
	default:
		if abs(r.lastX-r.startX) >= DismissThreshold {
			return OutcomeDismiss
		}
		return OutcomeSnapBack
	}
}

// Cancel abandons the gesture, e.g. when the pointer leaves the row.
func (r *Recognizer) Cancel() {
	r.active = false
	r.axis = AxisNone
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
