package validator

// Comparator is the comparison a single rule-table row applies between an
// actual quantity and its limit. The wording of the resulting violation is
// fixed per comparator, never per rule.
type Comparator int

const (
	GreaterThan Comparator = iota
	LessThan
	NotEqual
)

// Holds reports whether the comparison fires, i.e. whether actual violates
// the limit.
func (c Comparator) Holds(actual, limit float64) bool {
	switch c {
	case GreaterThan:
		return actual > limit
	case LessThan:
		return actual < limit
	case NotEqual:
		return actual != limit
	}
	return false
}

// Verb returns the fixed message fragment for the comparator.
func (c Comparator) Verb() string {
	switch c {
	case GreaterThan:
		return "exceeds maximum"
	case LessThan:
		return "below minimum"
	case NotEqual:
		return "is not equal to the"
	}
	return "violates"
}
