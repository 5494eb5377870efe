package model

import (
	"fmt"
	"math"
)

type SourceKind int

const (
	SourceKindFile SourceKind = iota
	SourceKindLive
)

func (k SourceKind) String() string {
	if k == SourceKindLive {
		return "live"
	}
	return "file"
}

// Source is either a bounded video file or an unbounded live capture device.
// Only the fields of its Kind are meaningful.
type Source struct {
	Kind SourceKind `json:"kind"`

	// File
	Path     string  `json:"path,omitempty"`
	RateHint float64 `json:"rateHint,omitempty"`

	// Live
	DeviceID int `json:"deviceId,omitempty"`
}

// NewFileSource describes a video file. rateHint is used as the frame rate
// when the decoder cannot report one.
func NewFileSource(path string, rateHint float64) Source {
	return Source{
		Kind:     SourceKindFile,
		Path:     path,
		RateHint: rateHint,
	}
}

func NewLiveSource(deviceID int) Source {
	return Source{
		Kind:     SourceKindLive,
		DeviceID: deviceID,
	}
}

func (s Source) String() string {
	if s.Kind == SourceKindLive {
		return fmt.Sprintf("device:%d", s.DeviceID)
	}
	return s.Path
}

// SamplingStep returns the frame stride for file playback so that exactly one
// frame per second of footage is forwarded. Unknown rates fall back to the
// rate hint, and to forwarding every frame when both are unknown.
func (s Source) SamplingStep(reportedFPS float64) int {
	rate := reportedFPS
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		rate = s.RateHint
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 1
	}

	step := int(math.Floor(rate))
	if step < 1 {
		return 1
	}
	return step
}
