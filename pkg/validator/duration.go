package validator

import (
	"fmt"

	"github.com/openqpu/pulsecheck/pkg/task"
)

// CheckDurations verifies that all supplied waveforms share one total
// duration. Channels with identical durations collapse into one
// representative (the first in Ω, Δ, φ, δ order), and every unordered pair
// of distinct durations then yields exactly one violation naming the longer
// channel as exceeding the shorter. Ω=2, Δ=2, φ=1.9 therefore produces a
// single message, naming Ω.
func CheckDurations(spec *task.Spec) []string {
	type channel struct {
		symbol   string
		duration float64
	}
	channels := []channel{
		{"Ω", spec.Rabi.Duration()},
		{"Δ", spec.Detuning.Duration()},
		{"φ", spec.Phase.Duration()},
	}
	if spec.HasLocalDetuning() {
		channels = append(channels, channel{"δ", spec.LocalDetuning.Duration()})
	}

	seen := make(map[float64]bool)
	distinct := channels[:0:len(channels)]
	for _, ch := range channels {
		if seen[ch.duration] {
			continue
		}
		seen[ch.duration] = true
		distinct = append(distinct, ch)
	}

	var violations []string
	for i := 0; i < len(distinct); i++ {
		for j := i + 1; j < len(distinct); j++ {
			hi, lo := distinct[i], distinct[j]
			if lo.duration > hi.duration {
				hi, lo = lo, hi
			}
			violations = append(violations, fmt.Sprintf(
				"%s(t) duration of %s µs exceeds %s(t) duration of %s µs",
				hi.symbol, task.FormatValue(hi.duration),
				lo.symbol, task.FormatValue(lo.duration)))
		}
	}
	return violations
}
