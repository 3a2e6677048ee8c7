// Package config loads tracking parameters from JSON files.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/LdDl/lifetrack/lifetrack"
	"github.com/pkg/errors"
)

const maxFileSize = 1 * 1024 * 1024

// TrackingConfig is the JSON document describing a tracking run.
// Omitted fields fall back to the defaults of the selected mode.
type TrackingConfig struct {
	Mode *string `json:"mode,omitempty"` // "area", "shape" or "filament"

	// Area and shape tracking
	Tolerance       *float64 `json:"tolerance,omitempty"`
	ContactDistance *float64 `json:"contact_distance,omitempty"`

	// Filament tracking
	MaxDistance  *float64 `json:"max_distance,omitempty"`
	AngleFactor  *float64 `json:"angle_factor,omitempty"`
	LengthFactor *float64 `json:"length_factor,omitempty"`
	MinLength    *float64 `json:"min_length,omitempty"`

	LengthMode *string `json:"length_mode,omitempty"` // "span" or "count"
	Assignment *string `json:"assignment,omitempty"`  // "all", "greedy" or "hungarian"
	Workers    *int    `json:"workers,omitempty"`

	// Lifespan filter, a nil bound is disabled
	MinLifespan *int `json:"min_lifespan,omitempty"`
	MaxLifespan *int `json:"max_lifespan,omitempty"`
}

var (
	modes = map[string]lifetrack.Mode{
		"area":     lifetrack.ModeArea,
		"shape":    lifetrack.ModeShape,
		"filament": lifetrack.ModeFilament,
	}
	lengthModes = map[string]lifetrack.LengthMode{
		"span":  lifetrack.LengthSpan,
		"count": lifetrack.LengthCount,
	}
	assignments = map[string]lifetrack.Assignment{
		"all":       lifetrack.AssignAll,
		"greedy":    lifetrack.AssignGreedy,
		"hungarian": lifetrack.AssignHungarian,
	}
)

// LoadTrackingConfig reads a TrackingConfig from a JSON file.
// The file must have .json extension and be under 1MB.
func LoadTrackingConfig(path string) (*TrackingConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, errors.Errorf("config file must have .json extension, got %q", ext)
	}
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "Can't stat config file")
	}
	if fileInfo.Size() > maxFileSize {
		return nil, errors.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read config file")
	}
	cfg := &TrackingConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "Can't parse config JSON")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "Invalid configuration")
	}
	return cfg, nil
}

// Validate checks enumerations and the resulting tracking parameters
func (c *TrackingConfig) Validate() error {
	if c.Mode != nil {
		if _, ok := modes[*c.Mode]; !ok {
			return errors.Errorf("unknown mode %q", *c.Mode)
		}
	}
	if c.LengthMode != nil {
		if _, ok := lengthModes[*c.LengthMode]; !ok {
			return errors.Errorf("unknown length_mode %q", *c.LengthMode)
		}
	}
	if c.Assignment != nil {
		if _, ok := assignments[*c.Assignment]; !ok {
			return errors.Errorf("unknown assignment %q", *c.Assignment)
		}
	}
	if c.Workers != nil && *c.Workers < 1 {
		return errors.Errorf("workers must be positive, got %d", *c.Workers)
	}
	if c.MinLifespan != nil && *c.MinLifespan < 0 {
		return errors.Errorf("min_lifespan must be non-negative, got %d", *c.MinLifespan)
	}
	if c.MinLifespan != nil && c.MaxLifespan != nil && *c.MaxLifespan < *c.MinLifespan {
		return errors.Errorf("max_lifespan %d is below min_lifespan %d", *c.MaxLifespan, *c.MinLifespan)
	}
	return c.ToParams().Validate()
}

// GetMode returns the mode or area tracking
func (c *TrackingConfig) GetMode() lifetrack.Mode {
	if c.Mode == nil {
		return lifetrack.ModeArea
	}
	return modes[*c.Mode]
}

// GetLengthMode returns the length mode or span
func (c *TrackingConfig) GetLengthMode() lifetrack.LengthMode {
	if c.LengthMode == nil {
		return lifetrack.LengthSpan
	}
	return lengthModes[*c.LengthMode]
}

// GetAssignment returns the assignment policy or keep-all
func (c *TrackingConfig) GetAssignment() lifetrack.Assignment {
	if c.Assignment == nil {
		return lifetrack.AssignAll
	}
	return assignments[*c.Assignment]
}

// GetWorkers returns the number of matching workers or 1
func (c *TrackingConfig) GetWorkers() int {
	if c.Workers == nil {
		return 1
	}
	return *c.Workers
}

// ToParams builds tracking parameters, starting from the defaults of the configured mode
func (c *TrackingConfig) ToParams() lifetrack.Params {
	var params lifetrack.Params
	switch c.GetMode() {
	case lifetrack.ModeShape:
		params = lifetrack.DefaultShapeParams()
	case lifetrack.ModeFilament:
		params = lifetrack.DefaultFilamentParams()
	default:
		params = lifetrack.DefaultAreaParams()
	}
	setFloat(&params.Tolerance, c.Tolerance)
	setFloat(&params.ContactDistance, c.ContactDistance)
	setFloat(&params.MaxDistance, c.MaxDistance)
	setFloat(&params.AngleFactor, c.AngleFactor)
	setFloat(&params.LengthFactor, c.LengthFactor)
	setFloat(&params.MinLength, c.MinLength)
	params.LengthMode = c.GetLengthMode()
	params.Assignment = c.GetAssignment()
	params.Workers = c.GetWorkers()
	return params
}

// Lifespan returns lifespan filter bounds. Only configured bounds are enabled.
func (c *TrackingConfig) Lifespan() lifetrack.LifespanBounds {
	bounds := lifetrack.LifespanBounds{}
	if c.MinLifespan != nil {
		bounds.MinEnabled = true
		bounds.Min = *c.MinLifespan
	}
	if c.MaxLifespan != nil {
		bounds.MaxEnabled = true
		bounds.Max = *c.MaxLifespan
	}
	return bounds
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
