package lifetrack

import (
	"github.com/pkg/errors"
)

var (
	// ErrNoFrames is returned when tracking is requested for an empty stack
	ErrNoFrames = errors.New("no frames to track")
	// ErrInvalidTolerance is returned for an intersection tolerance outside (0, 1]
	ErrInvalidTolerance = errors.New("intersection tolerance must be in (0, 1]")
	// ErrInvalidParams is returned for any other unusable parameter value
	ErrInvalidParams = errors.New("invalid tracking parameters")
	// ErrFrameOrder is returned when a frame's time does not match its position
	ErrFrameOrder = errors.New("frame time does not match its position in the stack")
)

// Mode selects which family of shapes is being tracked
type Mode uint16

const (
	// ModeArea tracks cell areas (pixel regions) with contact events
	ModeArea Mode = iota
	// ModeShape tracks generic polygon shapes with contact events
	ModeShape
	// ModeFilament tracks filament curve chains. Touch and DeTouch are never emitted.
	ModeFilament
)

func (m Mode) String() string {
	switch m {
	case ModeArea:
		return "area"
	case ModeShape:
		return "shape"
	case ModeFilament:
		return "filament"
	default:
		return "unknown"
	}
}

// LengthMode selects how a timeline's length is derived
type LengthMode uint16

const (
	// LengthSpan is death minus birth
	LengthSpan LengthMode = iota
	// LengthCount is the number of time slots the timeline occupies
	LengthCount
)

// Assignment is the policy applied to accepted candidates of a frame pair
type Assignment uint16

const (
	// AssignAll keeps every accepted candidate. Ambiguity becomes Split/Fusion events.
	AssignAll Assignment = iota
	// AssignGreedy keeps at most one candidate per shape, best scores first
	AssignGreedy
	// AssignHungarian keeps the one-to-one assignment maximizing the total score
	AssignHungarian
)

// Params holds every tunable of a tracking run
type Params struct {
	Mode Mode
	// Minimal overlap ratio (area/shape tracking)
	Tolerance float64
	// Pixel distance at which regions count as touching (area/shape tracking)
	ContactDistance float64
	// Filament tracking: maximal endpoint distance and composite cost
	MaxDistance float64
	// Filament tracking: weight of the orientation difference in degrees
	AngleFactor float64
	// Filament tracking: weight of the length difference
	LengthFactor float64
	// Filament tracking: filaments shorter than this are never matched
	MinLength float64

	LengthMode LengthMode
	Assignment Assignment
	// Number of frame pairs matched concurrently. Values below 1 mean 1.
	Workers int
}

// DefaultAreaParams returns parameters for cell area tracking
func DefaultAreaParams() Params {
	return Params{
		Mode:            ModeArea,
		Tolerance:       0.5,
		ContactDistance: 1,
		Workers:         1,
	}
}

// DefaultShapeParams returns parameters for generic shape tracking
func DefaultShapeParams() Params {
	params := DefaultAreaParams()
	params.Mode = ModeShape
	return params
}

// DefaultFilamentParams returns parameters for single filament tracking
func DefaultFilamentParams() Params {
	return Params{
		Mode:         ModeFilament,
		MaxDistance:  10,
		AngleFactor:  0.2,
		LengthFactor: 0.2,
		MinLength:    3,
		Workers:      1,
	}
}

// Validate checks the parameters required by the selected mode
func (p Params) Validate() error {
	switch p.Mode {
	case ModeArea, ModeShape:
		if !(p.Tolerance > 0 && p.Tolerance <= 1) {
			return errors.Wrapf(ErrInvalidTolerance, "got %v", p.Tolerance)
		}
		if p.ContactDistance < 0 {
			return errors.Wrapf(ErrInvalidParams, "contact distance must be non-negative, got %v", p.ContactDistance)
		}
	case ModeFilament:
		if !(p.MaxDistance > 0) {
			return errors.Wrapf(ErrInvalidParams, "max distance must be positive, got %v", p.MaxDistance)
		}
		if p.AngleFactor < 0 || p.LengthFactor < 0 || p.MinLength < 0 {
			return errors.Wrap(ErrInvalidParams, "filament factors and min length must be non-negative")
		}
	default:
		return errors.Wrapf(ErrInvalidParams, "unknown mode %d", p.Mode)
	}
	switch p.Assignment {
	case AssignAll, AssignGreedy, AssignHungarian:
	default:
		return errors.Wrapf(ErrInvalidParams, "unknown assignment %d", p.Assignment)
	}
	switch p.LengthMode {
	case LengthSpan, LengthCount:
	default:
		return errors.Wrapf(ErrInvalidParams, "unknown length mode %d", p.LengthMode)
	}
	return nil
}

// contacts reports whether soft contact events are tracked
func (p Params) contacts() bool {
	return p.Mode != ModeFilament
}

// searchMargin is how far bounding boxes are extended before the overlap test
func (p Params) searchMargin() float64 {
	if p.Mode == ModeFilament {
		return p.MaxDistance
	}
	return p.ContactDistance
}

func (p Params) workers() int {
	if p.Workers < 1 {
		return 1
	}
	return p.Workers
}
