package anim

const (
	DefaultCellSize        = 5.0
	DefaultHueMin          = 160.0
	DefaultHueMax          = 190.0
	DefaultSeedProbability = 0.01
	DefaultPositionEasing  = 0.1
	DefaultSnapThreshold   = 1.0
	DefaultDeltaScale      = 100.0
	DefaultFadeAlpha       = 0.8
)

// Params holds the tunable constants of the effect. Integer ranges are
// inclusive on both ends.
type Params struct {
	CellSize        float64
	HueMin          float64
	HueMax          float64
	SeedProbability float64

	// AmplitudeMin and AmplitudeMax are multiples of the cell size.
	AmplitudeMin float64
	AmplitudeMax float64

	PositionEasing float64
	SnapThreshold  float64
	DeltaScale     float64
	FadeAlpha      float64

	LuminanceMin  int
	LuminanceMax  int
	SaturationMin int
	SaturationMax int

	// VelocityMin and VelocityMax are in tenths: a draw of 3 is a velocity of 0.3.
	VelocityMin int
	VelocityMax int
}

func DefaultParams() Params {
	return Params{
		CellSize:        DefaultCellSize,
		HueMin:          DefaultHueMin,
		HueMax:          DefaultHueMax,
		SeedProbability: DefaultSeedProbability,
		AmplitudeMin:    1,
		AmplitudeMax:    2,
		PositionEasing:  DefaultPositionEasing,
		SnapThreshold:   DefaultSnapThreshold,
		DeltaScale:      DefaultDeltaScale,
		FadeAlpha:       DefaultFadeAlpha,
		LuminanceMin:    0,
		LuminanceMax:    50,
		SaturationMin:   50,
		SaturationMax:   100,
		VelocityMin:     1,
		VelocityMax:     4,
	}
}

// Preset is a named parameter set drivers can switch between at runtime.
type Preset struct {
	Name   string
	Params Params
}
