// Package device models the declarative capability document of an analog
// quantum device: qubit count, lattice geometry and area limits, and the
// per-waveform numeric limits a task is validated against.
//
// Capability documents are loaded once (from YAML profiles or the built-in
// default) and treated as read-only for their lifetime. The Registry serves
// named profiles from a directory and can hot-reload them when the files
// change.
package device
