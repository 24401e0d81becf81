package types

// SchemeKind is the tag of the scoring scheme variant
type SchemeKind string

const (
	// SchemeRawPoints sums explicit per-question points into a bounded total
	SchemeRawPoints SchemeKind = "raw-points"
	// SchemeWeightedCategory averages normalized question scores per category and combines them by weight
	SchemeWeightedCategory SchemeKind = "weighted-category"
)

// IsValid checks if the scheme kind is valid
func (k SchemeKind) IsValid() bool {
	switch k {
	case SchemeRawPoints, SchemeWeightedCategory:
		return true
	default:
		return false
	}
}

// String returns the string representation of the scheme kind
func (k SchemeKind) String() string {
	return string(k)
}

// Polarity tells what a higher overall score means
type Polarity string

const (
	// PolarityRisk means a higher score is worse
	PolarityRisk Polarity = "risk"
	// PolarityReadiness means a higher score is better
	PolarityReadiness Polarity = "readiness"
)

// IsValid checks if the polarity is valid
func (p Polarity) IsValid() bool {
	return p == PolarityRisk || p == PolarityReadiness
}

// String returns the string representation of the polarity
func (p Polarity) String() string {
	return string(p)
}

// RankOrder is the direction in which question scores are ranked as weak areas
type RankOrder string

const (
	// RankHighestFirst ranks the highest points first (higher points are worse answers)
	RankHighestFirst RankOrder = "highest-first"
	// RankLowestFirst ranks the lowest points first (lower points are worse answers)
	RankLowestFirst RankOrder = "lowest-first"
)

// IsValid checks if the rank order is valid
func (o RankOrder) IsValid() bool {
	return o == RankHighestFirst || o == RankLowestFirst
}

// String returns the string representation of the rank order
func (o RankOrder) String() string {
	return string(o)
}
