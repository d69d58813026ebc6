package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openqpu/pulsecheck/pkg/device"
	"github.com/openqpu/pulsecheck/pkg/task"
)

// latticeCaps returns a capability document with lattice limits small enough
// to exercise every rule from a handful of atoms.
func latticeCaps() *device.Capabilities {
	caps := device.Default()
	caps.MaxQubits = 4
	caps.Lattice.Geometry.PositionResolution = 0.1
	caps.Lattice.Geometry.MinRadialSpacing = 3.0
	caps.Lattice.Geometry.MinVerticalSpacing = 1.0
	caps.Lattice.Area.MaxWidth = 75.0
	caps.Lattice.Area.MaxHeight = 76.0
	return caps
}

func row(n int, spacing float64) []task.Position {
	positions := make([]task.Position, n)
	for i := range positions {
		positions[i] = task.Position{X: float64(i) * spacing}
	}
	return positions
}

func TestCheckLattice_QubitCount(t *testing.T) {
	caps := latticeCaps()

	assert.Empty(t, CheckLattice(row(4, 10), caps))

	violations := CheckLattice(row(5, 10), caps)
	require.Len(t, violations, 1)
	assert.Equal(t, "5 qubits exceeds maximum of 4 qubits", violations[0])
}

func TestCheckLattice_PositionResolution(t *testing.T) {
	caps := latticeCaps()

	positions := []task.Position{{X: 0, Y: 0}, {X: 10.05, Y: 0}}
	violations := CheckLattice(positions, caps)
	require.Len(t, violations, 1)
	assert.Equal(t,
		"atom 2 at (10.05, 0) µm is not a multiple of the position resolution of 0.1 µm",
		violations[0])
}

func TestCheckLattice_OriginExemptFromResolution(t *testing.T) {
	// Zero coordinates are never off resolution, so the atom at the origin
	// passes even with an absurd resolution. Inherited rule; kept as-is.
	caps := latticeCaps()
	caps.Lattice.Geometry.PositionResolution = 7.3

	assert.Empty(t, CheckLattice([]task.Position{{X: 0, Y: 0}}, caps))
}

func TestCheckLattice_Area(t *testing.T) {
	caps := latticeCaps()

	violations := CheckLattice([]task.Position{{X: 0, Y: 0}, {X: 80, Y: 0}}, caps)
	require.Len(t, violations, 1)
	assert.Equal(t, "lattice width 80 µm exceeds maximum width of 75 µm", violations[0])

	violations = CheckLattice([]task.Position{{X: 0, Y: 0}, {X: 0, Y: 80}}, caps)
	require.Len(t, violations, 1)
	assert.Equal(t, "lattice height 80 µm exceeds maximum height of 76 µm", violations[0])
}

func TestCheckLattice_RadialSpacing(t *testing.T) {
	caps := latticeCaps()

	// Exactly at the minimum passes; the comparison is strict.
	assert.Empty(t, CheckLattice([]task.Position{{X: 0, Y: 0}, {X: 0, Y: 3}}, caps))

	violations := CheckLattice([]task.Position{{X: 0, Y: 0}, {X: 0, Y: 2}}, caps)
	// The vertical-spacing rule fires for the same pair: the 2 µm gap is
	// above the 1 µm vertical minimum, so only the radial rule reports.
	require.Len(t, violations, 1)
	assert.Equal(t,
		"atoms 1 and 2 at (0, 0) µm and (0, 2) µm are 2 µm apart, below the minimum radial spacing of 3 µm",
		violations[0])
}

func TestCheckLattice_RadialSpacingAllPairs(t *testing.T) {
	caps := latticeCaps()

	// Three atoms 2 µm apart in a row: pairs (1,2) and (2,3) are below the
	// 3 µm minimum, pair (1,3) at 4 µm passes.
	violations := CheckLattice(row(3, 2), caps)
	require.Len(t, violations, 2)
	for _, v := range violations {
		assert.Contains(t, v, "below the minimum radial spacing of 3 µm")
	}
}

func TestCheckLattice_VerticalSpacing(t *testing.T) {
	caps := latticeCaps()
	caps.Lattice.Geometry.MinRadialSpacing = 0 // isolate the vertical rule

	// Rows at y = 0, 1, 2 with a 1 µm minimum: both gaps sit exactly at the
	// minimum and pass through the tolerance branch.
	positions := []task.Position{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}}
	assert.Empty(t, CheckLattice(positions, caps))

	positions = []task.Position{{X: 0, Y: 0}, {X: 1, Y: 0.5}}
	violations := CheckLattice(positions, caps)
	require.Len(t, violations, 1)
	assert.Equal(t,
		"atoms 1 at (0, 0) µm, 2 at (1, 0.5) µm are vertically separated by 0.5 µm, below the minimum vertical spacing of 1 µm",
		violations[0])
}

func TestCheckLattice_VerticalSpacingGroupsByExactY(t *testing.T) {
	caps := latticeCaps()
	caps.Lattice.Geometry.MinRadialSpacing = 0

	// Two atoms share y=0 exactly; the violation lists the union of both
	// levels' atoms sorted by index.
	positions := []task.Position{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 5, Y: 0.4},
	}
	violations := CheckLattice(positions, caps)
	require.Len(t, violations, 1)
	assert.Equal(t,
		"atoms 1 at (0, 0) µm, 2 at (10, 0) µm, 3 at (5, 0.4) µm are vertically separated by 0.4 µm, below the minimum vertical spacing of 1 µm",
		violations[0])
}

func TestCheckLattice_AllRulesReport(t *testing.T) {
	// One pathological lattice trips count, resolution, area, radial and
	// vertical rules in a single pass; no rule short-circuits another.
	caps := latticeCaps()
	caps.MaxQubits = 2

	positions := []task.Position{
		{X: 0, Y: 0},
		{X: 0.05, Y: 0.5},
		{X: 80, Y: 0},
	}
	violations := CheckLattice(positions, caps)

	var count, resolution, area, radial, vertical int
	for _, v := range violations {
		switch {
		case v == "3 qubits exceeds maximum of 2 qubits":
			count++
		case v == "atom 2 at (0.05, 0.5) µm is not a multiple of the position resolution of 0.1 µm":
			resolution++
		case v == "lattice width 80 µm exceeds maximum width of 75 µm":
			area++
		case strings.Contains(v, "apart, below the minimum radial spacing"):
			radial++
		case strings.Contains(v, "vertically separated by"):
			vertical++
		default:
			t.Fatalf("unexpected violation: %s", v)
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, resolution)
	assert.Equal(t, 1, area)
	assert.Equal(t, 1, radial)
	assert.Equal(t, 1, vertical)
}
