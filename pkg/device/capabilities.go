package device

import "fmt"

// GeometryLimits constrains individual atom placement. Lengths are in µm.
type GeometryLimits struct {
	PositionResolution float64 `yaml:"position_resolution" json:"position_resolution"`
	MinRadialSpacing   float64 `yaml:"min_radial_spacing" json:"min_radial_spacing"`
	MinVerticalSpacing float64 `yaml:"min_vertical_spacing" json:"min_vertical_spacing"`
}

// AreaLimits constrains the bounding box of the whole lattice, in µm.
type AreaLimits struct {
	MaxWidth  float64 `yaml:"max_width" json:"max_width"`
	MaxHeight float64 `yaml:"max_height" json:"max_height"`
}

// LatticeCapabilities groups every lattice-related limit.
type LatticeCapabilities struct {
	Geometry GeometryLimits `yaml:"geometry" json:"geometry"`
	Area     AreaLimits     `yaml:"area" json:"area"`
}

// WaveformLimits is the per-channel limit set shared by all four waveform
// kinds. MaxSlope is zero for channels without a slope constraint (phase).
// ScaleResolution is set only for the local detuning channel, where it
// constrains the per-site scaling sequence.
type WaveformLimits struct {
	MaxTime         float64 `yaml:"max_time" json:"max_time"`
	MinTimeStep     float64 `yaml:"min_time_step" json:"min_time_step"`
	MaxSlope        float64 `yaml:"max_slope,omitempty" json:"max_slope,omitempty"`
	MinValue        float64 `yaml:"min_value" json:"min_value"`
	MaxValue        float64 `yaml:"max_value" json:"max_value"`
	TimeResolution  float64 `yaml:"time_resolution" json:"time_resolution"`
	ValueResolution float64 `yaml:"value_resolution" json:"value_resolution"`
	ScaleResolution float64 `yaml:"scale_resolution,omitempty" json:"scale_resolution,omitempty"`
}

// Capabilities is the root of a device capability document. It is immutable
// after load; every validation call reads it, none writes it.
type Capabilities struct {
	Name      string `yaml:"name" json:"name"`
	MaxQubits int    `yaml:"max_qubits" json:"max_qubits"`

	Lattice LatticeCapabilities `yaml:"lattice" json:"lattice"`

	Rabi          WaveformLimits `yaml:"rabi" json:"rabi"`
	Detuning      WaveformLimits `yaml:"detuning" json:"detuning"`
	Phase         WaveformLimits `yaml:"phase" json:"phase"`
	LocalDetuning WaveformLimits `yaml:"local_detuning" json:"local_detuning"`
}

// Default returns the built-in capability document. The numbers follow the
// published limits of current-generation neutral-atom hardware and are the
// process-wide fallback when no profile is supplied.
func Default() *Capabilities {
	return &Capabilities{
		Name:      "default",
		MaxQubits: 256,
		Lattice: LatticeCapabilities{
			Geometry: GeometryLimits{
				PositionResolution: 0.1,
				MinRadialSpacing:   4.0,
				MinVerticalSpacing: 4.0,
			},
			Area: AreaLimits{
				MaxWidth:  75.0,
				MaxHeight: 76.0,
			},
		},
		Rabi: WaveformLimits{
			MaxTime:         4.0,
			MinTimeStep:     0.05,
			MaxSlope:        250.0,
			MinValue:        0.0,
			MaxValue:        15.8,
			TimeResolution:  0.001,
			ValueResolution: 0.0004,
		},
		Detuning: WaveformLimits{
			MaxTime:         4.0,
			MinTimeStep:     0.05,
			MaxSlope:        2500.0,
			MinValue:        -125.0,
			MaxValue:        125.0,
			TimeResolution:  0.001,
			ValueResolution: 2e-7,
		},
		Phase: WaveformLimits{
			MaxTime:         4.0,
			MinTimeStep:     0.05,
			MinValue:        -99.0,
			MaxValue:        99.0,
			TimeResolution:  0.001,
			ValueResolution: 5e-7,
		},
		LocalDetuning: WaveformLimits{
			MaxTime:         4.0,
			MinTimeStep:     0.05,
			MaxSlope:        1256.0,
			MinValue:        -125.0,
			MaxValue:        0.0,
			TimeResolution:  0.001,
			ValueResolution: 2e-7,
			ScaleResolution: 0.01,
		},
	}
}

// Check validates the capability document itself. A document that fails
// Check would make every task validation meaningless, so registries refuse
// to serve it.
func (c *Capabilities) Check() error {
	if c.MaxQubits <= 0 {
		return fmt.Errorf("max_qubits must be positive, got %d", c.MaxQubits)
	}
	g := c.Lattice.Geometry
	if g.PositionResolution <= 0 {
		return fmt.Errorf("lattice position_resolution must be positive, got %g", g.PositionResolution)
	}
	if g.MinRadialSpacing < 0 || g.MinVerticalSpacing < 0 {
		return fmt.Errorf("lattice spacing minimums must not be negative")
	}
	a := c.Lattice.Area
	if a.MaxWidth <= 0 || a.MaxHeight <= 0 {
		return fmt.Errorf("lattice area limits must be positive, got width %g height %g", a.MaxWidth, a.MaxHeight)
	}
	for _, ch := range []struct {
		name   string
		limits WaveformLimits
		local  bool
	}{
		{"rabi", c.Rabi, false},
		{"detuning", c.Detuning, false},
		{"phase", c.Phase, false},
		{"local_detuning", c.LocalDetuning, true},
	} {
		if err := ch.limits.check(ch.local); err != nil {
			return fmt.Errorf("%s: %w", ch.name, err)
		}
	}
	return nil
}

func (l WaveformLimits) check(local bool) error {
	if l.MaxTime <= 0 {
		return fmt.Errorf("max_time must be positive, got %g", l.MaxTime)
	}
	if l.MinTimeStep <= 0 {
		return fmt.Errorf("min_time_step must be positive, got %g", l.MinTimeStep)
	}
	if l.MinValue > l.MaxValue {
		return fmt.Errorf("min_value %g is above max_value %g", l.MinValue, l.MaxValue)
	}
	if l.TimeResolution <= 0 || l.ValueResolution <= 0 {
		return fmt.Errorf("time and value resolutions must be positive")
	}
	if local && l.ScaleResolution <= 0 {
		return fmt.Errorf("scale_resolution must be positive for the local detuning channel")
	}
	return nil
}
