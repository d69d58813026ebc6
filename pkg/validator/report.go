package validator

import (
	"encoding/json"
	"sort"
)

// Category names one of the six independent violation sets of a report.
type Category string

const (
	CategoryLattice       Category = "lattice"
	CategoryRabi          Category = "rabi"
	CategoryDetuning      Category = "detuning"
	CategoryPhase         Category = "phase"
	CategoryLocalDetuning Category = "local_detuning"
	CategoryMisc          Category = "misc"
)

// Categories lists every report category in presentation order.
var Categories = []Category{
	CategoryLattice,
	CategoryRabi,
	CategoryDetuning,
	CategoryPhase,
	CategoryLocalDetuning,
	CategoryMisc,
}

// Report aggregates violations into six named sets. Each set is deduplicated
// by exact string equality: two structurally identical violations produce
// exactly one entry, while two violations differing only in floating-point
// formatting stay distinct. A report is freshly constructed per validation
// call and owned entirely by the caller.
type Report struct {
	sets map[Category]map[string]struct{}
}

// NewReport returns an empty report.
func NewReport() *Report {
	sets := make(map[Category]map[string]struct{}, len(Categories))
	for _, cat := range Categories {
		sets[cat] = make(map[string]struct{})
	}
	return &Report{sets: sets}
}

// Add records one violation in the given category.
func (r *Report) Add(cat Category, violation string) {
	r.sets[cat][violation] = struct{}{}
}

// AddAll records a batch of violations in the given category.
func (r *Report) AddAll(cat Category, violations []string) {
	for _, v := range violations {
		r.Add(cat, v)
	}
}

// Violations returns the category's deduplicated violations in sorted order.
func (r *Report) Violations(cat Category) []string {
	set := r.sets[cat]
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Valid reports whether no category holds any violation.
func (r *Report) Valid() bool {
	return r.Total() == 0
}

// Total returns the number of distinct violations across all categories.
func (r *Report) Total() int {
	n := 0
	for _, set := range r.sets {
		n += len(set)
	}
	return n
}

// Counts returns the per-category violation counts.
func (r *Report) Counts() map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, cat := range Categories {
		counts[cat] = len(r.sets[cat])
	}
	return counts
}

// reportJSON is the wire form of a report. Sets serialize as sorted arrays
// so identical reports are byte-identical.
type reportJSON struct {
	Valid         bool     `json:"valid"`
	Lattice       []string `json:"lattice"`
	Rabi          []string `json:"rabi"`
	Detuning      []string `json:"detuning"`
	Phase         []string `json:"phase"`
	LocalDetuning []string `json:"local_detuning"`
	Misc          []string `json:"misc"`
}

// MarshalJSON serializes the report with deterministic ordering.
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(reportJSON{
		Valid:         r.Valid(),
		Lattice:       r.Violations(CategoryLattice),
		Rabi:          r.Violations(CategoryRabi),
		Detuning:      r.Violations(CategoryDetuning),
		Phase:         r.Violations(CategoryPhase),
		LocalDetuning: r.Violations(CategoryLocalDetuning),
		Misc:          r.Violations(CategoryMisc),
	})
}

// UnmarshalJSON restores a report from its wire form.
func (r *Report) UnmarshalJSON(data []byte) error {
	var wire reportJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*r = *NewReport()
	r.AddAll(CategoryLattice, wire.Lattice)
	r.AddAll(CategoryRabi, wire.Rabi)
	r.AddAll(CategoryDetuning, wire.Detuning)
	r.AddAll(CategoryPhase, wire.Phase)
	r.AddAll(CategoryLocalDetuning, wire.LocalDetuning)
	r.AddAll(CategoryMisc, wire.Misc)
	return nil
}
