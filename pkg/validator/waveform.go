package validator

import (
	"fmt"
	"math"

	"github.com/openqpu/pulsecheck/pkg/device"
	"github.com/openqpu/pulsecheck/pkg/task"
)

// Kind identifies one of the four control waveform channels.
type Kind int

const (
	KindRabi Kind = iota
	KindDetuning
	KindPhase
	KindLocalDetuning
)

// Symbol returns the channel symbol used in violation messages.
func (k Kind) Symbol() string {
	switch k {
	case KindRabi:
		return "Ω"
	case KindDetuning:
		return "Δ"
	case KindPhase:
		return "φ"
	case KindLocalDetuning:
		return "δ"
	}
	return "?"
}

// ValueUnit returns the unit of the channel's sample values.
func (k Kind) ValueUnit() string {
	if k == KindPhase {
		return "rad"
	}
	return "rad/µs"
}

// Category returns the report category the channel's violations belong to.
func (k Kind) Category() Category {
	switch k {
	case KindRabi:
		return CategoryRabi
	case KindDetuning:
		return CategoryDetuning
	case KindPhase:
		return CategoryPhase
	case KindLocalDetuning:
		return CategoryLocalDetuning
	}
	return CategoryMisc
}

func (k Kind) String() string {
	return string(k.Category())
}

// waveformStats holds the derived quantities the rule tables compare.
// Minimum time step and maximum slope are rounded to 14 significant digits.
type waveformStats struct {
	duration    float64
	minValue    float64
	maxValue    float64
	minTimeStep float64
	maxSlope    float64
	startValue  float64
	endValue    float64
}

func computeStats(w task.Waveform) waveformStats {
	stats := waveformStats{
		duration:   w.Duration(),
		minValue:   w.Values[0],
		maxValue:   w.Values[0],
		startValue: w.Values[0],
		endValue:   w.Values[len(w.Values)-1],
	}
	for _, v := range w.Values[1:] {
		stats.minValue = math.Min(stats.minValue, v)
		stats.maxValue = math.Max(stats.maxValue, v)
	}

	minStep := math.Inf(1)
	maxSlope := 0.0
	for i := 1; i < len(w.Clocks); i++ {
		step := w.Clocks[i] - w.Clocks[i-1]
		minStep = math.Min(minStep, step)
		slope := math.Abs((w.Values[i] - w.Values[i-1]) / step)
		maxSlope = math.Max(maxSlope, slope)
	}
	stats.minTimeStep = roundSig(minStep, 14)
	stats.maxSlope = roundSig(maxSlope, 14)
	return stats
}

// checkRow is one entry of a channel's fixed, ordered rule table.
type checkRow struct {
	name   string
	actual float64
	cmp    Comparator
	limit  float64
	unit   string
}

// ruleTable builds the per-kind rule table. The tables reproduce the
// published hardware rule sets literally, including the duration-versus-step
// and step-versus-duration comparisons described in the package comment.
func ruleTable(kind Kind, stats waveformStats, limits device.WaveformLimits) []checkRow {
	rows := []checkRow{
		{"duration", stats.duration, GreaterThan, limits.MaxTime, "µs"},
		{"duration", stats.duration, LessThan, limits.MinTimeStep, "µs"},
		{"minimum time step", stats.minTimeStep, LessThan, limits.MinTimeStep, "µs"},
	}

	valueUnit := kind.ValueUnit()
	slopeUnit := valueUnit + "/µs"
	if kind != KindPhase {
		rows = append(rows, checkRow{"maximum slope", stats.maxSlope, GreaterThan, limits.MaxSlope, slopeUnit})
	}
	rows = append(rows,
		checkRow{"minimum value", stats.minValue, LessThan, limits.MinValue, valueUnit},
		checkRow{"maximum value", stats.maxValue, GreaterThan, limits.MaxValue, valueUnit},
	)

	switch kind {
	case KindRabi:
		rows = append(rows,
			checkRow{"start value", stats.startValue, NotEqual, 0, valueUnit},
			checkRow{"end value", stats.endValue, NotEqual, 0, valueUnit},
		)
	case KindPhase:
		rows = append(rows, checkRow{"start value", stats.startValue, NotEqual, 0, valueUnit})
	case KindLocalDetuning:
		rows = append(rows, checkRow{"minimum time step", stats.minTimeStep, GreaterThan, limits.MaxTime, "µs"})
	}
	return rows
}

// CheckWaveform evaluates the channel's full rule table plus the per-sample
// resolution checks and returns every violation found. The scaling sequence
// is consulted only for the local detuning channel.
func CheckWaveform(kind Kind, w task.Waveform, limits device.WaveformLimits, scaling task.SiteScaling) []string {
	stats := computeStats(w)

	var violations []string
	for _, row := range ruleTable(kind, stats, limits) {
		if row.cmp.Holds(row.actual, row.limit) {
			violations = append(violations, fmt.Sprintf("%s(t) %s with value %s %s %s value of %s %s",
				kind.Symbol(), row.name,
				task.FormatValue(row.actual), row.unit,
				row.cmp.Verb(),
				task.FormatValue(row.limit), row.unit))
		}
	}

	for _, clock := range w.Clocks {
		if IsOffResolution(limits.TimeResolution, clock) {
			violations = append(violations, fmt.Sprintf(
				"%s(t) clock %s µs is not a multiple of the time resolution of %s µs",
				kind.Symbol(), task.FormatValue(clock), task.FormatValue(limits.TimeResolution)))
		}
	}
	for _, value := range w.Values {
		if IsOffResolution(limits.ValueResolution, value) {
			violations = append(violations, fmt.Sprintf(
				"%s(t) value %s %s is not a multiple of the value resolution of %s %s",
				kind.Symbol(), task.FormatValue(value), kind.ValueUnit(),
				task.FormatValue(limits.ValueResolution), kind.ValueUnit()))
		}
	}

	if kind == KindLocalDetuning {
		for _, scale := range scaling {
			if IsOffResolution(limits.ScaleResolution, scale) {
				violations = append(violations, fmt.Sprintf(
					"%s(t) site scaling %s is not a multiple of the scale resolution of %s",
					kind.Symbol(), task.FormatValue(scale), task.FormatValue(limits.ScaleResolution)))
			}
		}
	}

	return violations
}
