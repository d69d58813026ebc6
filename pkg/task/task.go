package task

import (
	"encoding/json"
	"fmt"
	"os"
)

// Position is a 2D atom coordinate in µm.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPosition1D normalizes a 1D coordinate to a 2D position on the x axis.
// Every lattice check operates on 2D positions.
func NewPosition1D(x float64) Position {
	return Position{X: x, Y: 0.0}
}

// String formats the position the way violation messages report it.
func (p Position) String() string {
	return fmt.Sprintf("(%s, %s) µm", FormatValue(p.X), FormatValue(p.Y))
}

// Waveform is an immutable piecewise-linear control function: an ordered,
// strictly increasing sequence of time points ("clocks") and a same-length
// sequence of values, one per clock. Duration is the last clock value.
//
// Well-formedness (len(Clocks) == len(Values) >= 2, strictly increasing
// clocks) is a caller precondition for validation; Check makes the guard
// explicit for inputs arriving from outside the process.
type Waveform struct {
	Clocks []float64 `json:"clocks"`
	Values []float64 `json:"values"`
}

// Duration returns the last clock value, or 0 for an empty waveform.
func (w Waveform) Duration() float64 {
	if len(w.Clocks) == 0 {
		return 0
	}
	return w.Clocks[len(w.Clocks)-1]
}

// Check verifies the structural invariants of the waveform. A non-nil error
// means the waveform is malformed, which is distinct from a constraint
// violation: malformed waveforms are rejected before validation runs.
func (w Waveform) Check() error {
	if len(w.Clocks) < 2 {
		return fmt.Errorf("waveform needs at least 2 samples, got %d", len(w.Clocks))
	}
	if len(w.Clocks) != len(w.Values) {
		return fmt.Errorf("waveform has %d clocks but %d values", len(w.Clocks), len(w.Values))
	}
	for i := 1; i < len(w.Clocks); i++ {
		if w.Clocks[i] <= w.Clocks[i-1] {
			return fmt.Errorf("waveform clocks must be strictly increasing: clock[%d]=%s is not after clock[%d]=%s",
				i, FormatValue(w.Clocks[i]), i-1, FormatValue(w.Clocks[i-1]))
		}
	}
	return nil
}

// SiteScaling is the ordered per-atom scaling sequence Δi applied to the
// local detuning waveform. Its length is assumed to equal the atom count.
type SiteScaling []float64

// Spec is a fully specified analog task as produced by an external parser:
// the lattice plus the global drive waveforms and the optional local
// detuning with its per-site scaling.
type Spec struct {
	Positions []Position `json:"positions"`

	Rabi     Waveform `json:"rabi"`
	Detuning Waveform `json:"detuning"`
	Phase    Waveform `json:"phase"`

	LocalDetuning *Waveform   `json:"local_detuning,omitempty"`
	Scaling       SiteScaling `json:"site_scaling,omitempty"`
}

// HasLocalDetuning reports whether the optional local detuning channel is
// present.
func (s *Spec) HasLocalDetuning() bool {
	return s.LocalDetuning != nil
}

// Check verifies the structural preconditions of the whole task. It does not
// evaluate any device constraint; that is the validator's job.
func (s *Spec) Check() error {
	if len(s.Positions) == 0 {
		return fmt.Errorf("task has no atom positions")
	}
	for name, w := range map[string]Waveform{
		"rabi":     s.Rabi,
		"detuning": s.Detuning,
		"phase":    s.Phase,
	} {
		if err := w.Check(); err != nil {
			return fmt.Errorf("%s waveform: %w", name, err)
		}
	}
	if s.LocalDetuning != nil {
		if err := s.LocalDetuning.Check(); err != nil {
			return fmt.Errorf("local detuning waveform: %w", err)
		}
	}
	return nil
}

// Parse decodes a task document from JSON.
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse task JSON: %w", err)
	}
	if err := spec.Check(); err != nil {
		return nil, fmt.Errorf("malformed task: %w", err)
	}
	return &spec, nil
}

// ParseFile reads and decodes a task document from a JSON file.
func ParseFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}
	return Parse(data)
}
