// Package task defines the in-memory representation of an analog
// quantum-hardware task: atom positions forming a 1D/2D lattice plus the
// time-dependent control waveforms (global Rabi frequency, global detuning,
// global phase and an optional locally scaled detuning).
//
// Values are expressed in the units the hardware documents use: positions in
// µm, time in µs, amplitudes and detunings in rad/µs, phase in rad. The
// package performs no unit conversion.
package task
