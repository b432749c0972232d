package safetyhub

// Likelihood is a position on the 5-point likelihood scale of the risk matrix.
type Likelihood string

const (
	LikelihoodRare          Likelihood = "Rare"
	LikelihoodUnlikely      Likelihood = "Unlikely"
	LikelihoodPossible      Likelihood = "Possible"
	LikelihoodLikely        Likelihood = "Likely"
	LikelihoodAlmostCertain Likelihood = "Almost Certain"
)

// Likelihoods lists the scale in ascending order of rank.
var Likelihoods = []Likelihood{
	LikelihoodRare,
	LikelihoodUnlikely,
	LikelihoodPossible,
	LikelihoodLikely,
	LikelihoodAlmostCertain,
}

// Rank returns the ordinal position (1-5), or 0 for an unknown value.
func (l Likelihood) Rank() int {
	for i, v := range Likelihoods {
		if v == l {
			return i + 1
		}
	}
	return 0
}

// IsValid returns true if the likelihood is a recognized value.
func (l Likelihood) IsValid() bool {
	return l.Rank() != 0
}

// Severity is a position on the 5-point severity scale of the risk matrix.
type Severity string

const (
	SeverityNegligible   Severity = "Negligible"
	SeverityMinor        Severity = "Minor"
	SeverityModerate     Severity = "Moderate"
	SeverityMajor        Severity = "Major"
	SeverityCatastrophic Severity = "Catastrophic"
)

// Severities lists the scale in ascending order of rank.
var Severities = []Severity{
	SeverityNegligible,
	SeverityMinor,
	SeverityModerate,
	SeverityMajor,
	SeverityCatastrophic,
}

// Rank returns the ordinal position (1-5), or 0 for an unknown value.
func (s Severity) Rank() int {
	for i, v := range Severities {
		if v == s {
			return i + 1
		}
	}
	return 0
}

// IsValid returns true if the severity is a recognized value.
func (s Severity) IsValid() bool {
	return s.Rank() != 0
}

// RiskLevel is the qualitative band derived from a likelihood/severity product.
type RiskLevel string

const (
	RiskLevelLow     RiskLevel = "Low"
	RiskLevelMedium  RiskLevel = "Medium"
	RiskLevelHigh    RiskLevel = "High"
	RiskLevelExtreme RiskLevel = "Extreme"
)

// Weight returns a numeric weight for comparing and sorting risk levels.
func (r RiskLevel) Weight() int {
	switch r {
	case RiskLevelExtreme:
		return 4
	case RiskLevelHigh:
		return 3
	case RiskLevelMedium:
		return 2
	case RiskLevelLow:
		return 1
	default:
		return 0
	}
}

// IsValid returns true if the risk level is a recognized value.
func (r RiskLevel) IsValid() bool {
	return r.Weight() != 0
}

// RiskScore returns the numeric matrix score, rank(likelihood) x rank(severity).
// The result is in [1,25] for valid inputs.
func RiskScore(l Likelihood, s Severity) int {
	return l.Rank() * s.Rank()
}

// RiskLevelForScore maps a matrix score to its band. Cutoffs are inclusive
// and fixed: <=3 Low, <=6 Medium, <=12 High, otherwise Extreme.
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score <= 3:
		return RiskLevelLow
	case score <= 6:
		return RiskLevelMedium
	case score <= 12:
		return RiskLevelHigh
	default:
		return RiskLevelExtreme
	}
}

// CalculateRiskLevel derives the risk band for a likelihood/severity pair.
func CalculateRiskLevel(l Likelihood, s Severity) RiskLevel {
	return RiskLevelForScore(RiskScore(l, s))
}

// MaxRiskLevel returns the highest band among the given levels, or Low when
// the list is empty.
func MaxRiskLevel(levels []RiskLevel) RiskLevel {
	max := RiskLevelLow
	for _, lvl := range levels {
		if lvl.Weight() > max.Weight() {
			max = lvl
		}
	}
	return max
}
