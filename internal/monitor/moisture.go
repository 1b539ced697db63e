package monitor

import (
	"github.com/plantstein/plantstein/internal/plant"
)

// MoistureState is the categorical summary of a plant's recent soil moisture.
type MoistureState int

const (
	// MoistureUnknown means no samples exist for the plant; the moisture
	// check is skipped. It is never produced by AggregateMoisture.
	MoistureUnknown MoistureState = iota
	MoistureTooDry
	MoistureOkay
	MoistureTooWet
)

func (s MoistureState) String() string {
	switch s {
	case MoistureTooDry:
		return "too_dry"
	case MoistureOkay:
		return "okay"
	case MoistureTooWet:
		return "too_wet"
	default:
		return "unknown"
	}
}

// Bands holds the boundaries that map an average moisture value to a state.
// Averages below DryBelow are too dry, above WetAbove too wet.
type Bands struct {
	DryBelow float64
	WetAbove float64
}

// DefaultBands matches the moisture bands of the reference installation.
var DefaultBands = Bands{
	DryBelow: 30.0,
	WetAbove: 70.0,
}

// AggregateMoisture computes the arithmetic mean of the given samples and
// maps it into a band. Callers must not invoke it with an empty window;
// a plant with no moisture history skips moisture evaluation entirely.
func AggregateMoisture(samples []*plant.MoistureSample, bands Bands) MoistureState {
	var sum float64
	for _, s := range samples {
		sum += s.Moisture
	}
	avg := sum / float64(len(samples))

	switch {
	case avg < bands.DryBelow:
		return MoistureTooDry
	case avg > bands.WetAbove:
		return MoistureTooWet
	default:
		return MoistureOkay
	}
}
