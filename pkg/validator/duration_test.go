package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openqpu/pulsecheck/pkg/task"
)

func flatWaveform(duration float64) task.Waveform {
	return task.Waveform{Clocks: []float64{0, duration}, Values: []float64{0, 0}}
}

func TestCheckDurations_AllEqual(t *testing.T) {
	spec := &task.Spec{
		Positions: []task.Position{{X: 0, Y: 0}},
		Rabi:      flatWaveform(2.0),
		Detuning:  flatWaveform(2.0),
		Phase:     flatWaveform(2.0),
	}
	assert.Empty(t, CheckDurations(spec))
}

func TestCheckDurations_SharedDurationCollapses(t *testing.T) {
	// Ω and Δ share a duration, so only one pair of distinct durations
	// remains and exactly one violation is produced, naming Ω.
	spec := &task.Spec{
		Positions: []task.Position{{X: 0, Y: 0}},
		Rabi:      flatWaveform(2.0),
		Detuning:  flatWaveform(2.0),
		Phase:     flatWaveform(1.9),
	}
	violations := CheckDurations(spec)
	require.Len(t, violations, 1)
	assert.Equal(t, "Ω(t) duration of 2 µs exceeds φ(t) duration of 1.9 µs", violations[0])
}

func TestCheckDurations_ShorterFieldFirst(t *testing.T) {
	// The longer channel is always named first, regardless of channel order.
	spec := &task.Spec{
		Positions: []task.Position{{X: 0, Y: 0}},
		Rabi:      flatWaveform(1.5),
		Detuning:  flatWaveform(3.0),
		Phase:     flatWaveform(3.0),
	}
	violations := CheckDurations(spec)
	require.Len(t, violations, 1)
	assert.Equal(t, "Δ(t) duration of 3 µs exceeds Ω(t) duration of 1.5 µs", violations[0])
}

func TestCheckDurations_OptionalLocalDetuning(t *testing.T) {
	local := flatWaveform(1.0)
	spec := &task.Spec{
		Positions:     []task.Position{{X: 0, Y: 0}},
		Rabi:          flatWaveform(2.0),
		Detuning:      flatWaveform(2.0),
		Phase:         flatWaveform(2.0),
		LocalDetuning: &local,
	}
	violations := CheckDurations(spec)
	require.Len(t, violations, 1)
	assert.Equal(t, "Ω(t) duration of 2 µs exceeds δ(t) duration of 1 µs", violations[0])
}

func TestCheckDurations_ThreeDistinctDurations(t *testing.T) {
	// Three distinct durations yield all three unordered pairs.
	spec := &task.Spec{
		Positions: []task.Position{{X: 0, Y: 0}},
		Rabi:      flatWaveform(3.0),
		Detuning:  flatWaveform(2.0),
		Phase:     flatWaveform(1.0),
	}
	violations := CheckDurations(spec)
	require.Len(t, violations, 3)
	assert.Contains(t, violations, "Ω(t) duration of 3 µs exceeds Δ(t) duration of 2 µs")
	assert.Contains(t, violations, "Ω(t) duration of 3 µs exceeds φ(t) duration of 1 µs")
	assert.Contains(t, violations, "Δ(t) duration of 2 µs exceeds φ(t) duration of 1 µs")
}
