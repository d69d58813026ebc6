package validator

import (
	"github.com/openqpu/pulsecheck/pkg/device"
	"github.com/openqpu/pulsecheck/pkg/task"
)

// Validate checks the task against the capability document and returns the
// complete violation report. A nil capability document selects the built-in
// default profile.
//
// Validate is a pure function of its arguments: it mutates neither the task
// nor the capabilities and holds no state between calls, so concurrent
// invocation is safe as long as the shared capability document is not
// mutated. Runtime is O(atoms²) for the pairwise radial check plus
// O(samples) per waveform.
func Validate(spec *task.Spec, caps *device.Capabilities) *Report {
	if caps == nil {
		caps = device.Default()
	}

	report := NewReport()
	report.AddAll(CategoryLattice, CheckLattice(spec.Positions, caps))
	report.AddAll(CategoryRabi, CheckWaveform(KindRabi, spec.Rabi, caps.Rabi, nil))
	report.AddAll(CategoryDetuning, CheckWaveform(KindDetuning, spec.Detuning, caps.Detuning, nil))
	report.AddAll(CategoryPhase, CheckWaveform(KindPhase, spec.Phase, caps.Phase, nil))
	if spec.HasLocalDetuning() {
		report.AddAll(CategoryLocalDetuning,
			CheckWaveform(KindLocalDetuning, *spec.LocalDetuning, caps.LocalDetuning, spec.Scaling))
	}
	report.AddAll(CategoryMisc, CheckDurations(spec))
	return report
}
