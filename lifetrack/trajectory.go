package lifetrack

import (
	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/pkg/errors"
)

// TrackPoint is a shape center of a timeline at some time
type TrackPoint struct {
	Time     int
	Raw      Point
	Smoothed Point
}

// SmoothTrack follows centers of timeline's shapes through a 2D Kalman filter.
// dt is the time step between frames.
func SmoothTrack[S Centered](tl *Timeline[S], dt float64) ([]TrackPoint, error) {
	times := tl.Times()
	track := make([]TrackPoint, 0, len(times))
	if len(times) == 0 {
		return track, nil
	}
	first, _ := tl.Shape(times[0])
	start := first.Center()

	/* Kalman filter props */
	ux := 0.0
	uy := 0.0
	stdDevA := 2.0
	stdDevMx := 0.1
	stdDevMy := 0.1
	kf := kalman_filter.NewKalman2D(dt, ux, uy, stdDevA, stdDevMx, stdDevMy, kalman_filter.WithState2D(start.X, start.Y))
	track = append(track, TrackPoint{Time: times[0], Raw: start, Smoothed: start})

	for _, t := range times[1:] {
		shape, _ := tl.Shape(t)
		center := shape.Center()
		kf.Predict()
		err := kf.Update(center.X, center.Y)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't update track smoother at time %d", t)
		}
		stateX, stateY := kf.GetState()
		track = append(track, TrackPoint{Time: t, Raw: center, Smoothed: Point{X: stateX, Y: stateY}})
	}
	return track, nil
}
