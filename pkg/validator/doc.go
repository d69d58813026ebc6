// Package validator checks a fully specified analog task against a device
// capability document and reports the complete set of constraint violations
// rather than failing fast on the first one.
//
// Every detectable breach becomes one human-readable string in a categorized
// report; there is no separate error type for invalid physical parameters.
// Structural well-formedness of the task (matching clock/value lengths,
// strictly increasing clocks) is a caller precondition, guarded explicitly
// by task.Spec.Check.
//
// Two behaviors are inherited verbatim from the original hardware rule
// tables and are intentionally not "fixed" here: every channel compares its
// total duration against the minimum time-step limit, and the local detuning
// channel additionally compares its minimum time step against the total
// duration limit. Both pair quantities of unlike meaning; they are kept for
// bug-for-bug compatibility with the documents devices publish.
package validator
