package validator

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/openqpu/pulsecheck/pkg/device"
	"github.com/openqpu/pulsecheck/pkg/task"
)

// CheckLattice evaluates every atom-position constraint against the
// capability document and returns the violations found. All rules run
// independently; none short-circuits another. Atom indices in messages are
// 1-based, matching how hardware operators refer to sites.
func CheckLattice(positions []task.Position, caps *device.Capabilities) []string {
	var violations []string

	if len(positions) > caps.MaxQubits {
		violations = append(violations, fmt.Sprintf("%d qubits exceeds maximum of %d qubits",
			len(positions), caps.MaxQubits))
	}

	geo := caps.Lattice.Geometry
	for i, p := range positions {
		for _, coord := range []float64{p.X, p.Y} {
			if IsOffResolution(geo.PositionResolution, coord) {
				violations = append(violations, fmt.Sprintf(
					"atom %d at %s is not a multiple of the position resolution of %s µm",
					i+1, p, task.FormatValue(geo.PositionResolution)))
			}
		}
	}

	if len(positions) > 0 {
		violations = append(violations, checkArea(positions, caps.Lattice.Area)...)
	}
	violations = append(violations, checkRadialSpacing(positions, geo.MinRadialSpacing)...)
	violations = append(violations, checkVerticalSpacing(positions, geo.MinVerticalSpacing)...)

	return violations
}

func checkArea(positions []task.Position, area device.AreaLimits) []string {
	minX, maxX := positions[0].X, positions[0].X
	minY, maxY := positions[0].Y, positions[0].Y
	for _, p := range positions[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	var violations []string
	if width := maxX - minX; width > area.MaxWidth {
		violations = append(violations, fmt.Sprintf("lattice width %s µm exceeds maximum width of %s µm",
			task.FormatValue(width), task.FormatValue(area.MaxWidth)))
	}
	if height := maxY - minY; height > area.MaxHeight {
		violations = append(violations, fmt.Sprintf("lattice height %s µm exceeds maximum height of %s µm",
			task.FormatValue(height), task.FormatValue(area.MaxHeight)))
	}
	return violations
}

// checkRadialSpacing measures every unordered pair of distinct atoms. The
// comparison is strict: a pair exactly at the minimum passes.
func checkRadialSpacing(positions []task.Position, minSpacing float64) []string {
	var violations []string
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			distance := math.Hypot(positions[j].X-positions[i].X, positions[j].Y-positions[i].Y)
			if distance < minSpacing {
				violations = append(violations, fmt.Sprintf(
					"atoms %d and %d at %s and %s are %s µm apart, below the minimum radial spacing of %s µm",
					i+1, j+1, positions[i], positions[j],
					task.FormatValue(distance), task.FormatValue(minSpacing)))
			}
		}
	}
	return violations
}

// checkVerticalSpacing groups atoms by exact y equality and measures the gap
// between each pair of adjacent distinct y levels. A gap passes when it is
// strictly above the minimum or within floating tolerance of it.
func checkVerticalSpacing(positions []task.Position, minSpacing float64) []string {
	rows := make(map[float64][]int)
	for i, p := range positions {
		rows[p.Y] = append(rows[p.Y], i)
	}

	levels := make([]float64, 0, len(rows))
	for y := range rows {
		levels = append(levels, y)
	}
	sort.Float64s(levels)

	var violations []string
	for i := 1; i < len(levels); i++ {
		gap := math.Abs(levels[i] - levels[i-1])
		if gap > minSpacing || approxEqual(gap, minSpacing) {
			continue
		}

		indices := append([]int{}, rows[levels[i-1]]...)
		indices = append(indices, rows[levels[i]]...)
		sort.Ints(indices)

		atoms := make([]string, len(indices))
		for k, idx := range indices {
			atoms[k] = fmt.Sprintf("%d at %s", idx+1, positions[idx])
		}
		violations = append(violations, fmt.Sprintf(
			"atoms %s are vertically separated by %s µm, below the minimum vertical spacing of %s µm",
			strings.Join(atoms, ", "), task.FormatValue(gap), task.FormatValue(minSpacing)))
	}
	return violations
}
