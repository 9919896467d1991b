package semantic

import "math"

const (
	confidenceFloor   = 0.15
	confidenceCeiling = 0.98

	// HeuristicConfidence is the flat confidence assigned when no
	// similarity signal exists. Semantic-backed matches are smoothly
	// scaled instead; this two-tier split is deliberate.
	HeuristicConfidence = 0.35
)

// ScaleConfidence maps a raw similarity to a calibrated confidence. The
// s^1.8 exponent suppresses weak matches and compresses strong ones
// toward the ceiling; the result never reaches exactly 0 or 1.
func ScaleConfidence(sim float64) float64 {
	s := math.Max(0.0, math.Min(1.0, sim))
	c := confidenceFloor + (confidenceCeiling-confidenceFloor)*math.Pow(s, 1.8)
	c = math.Round(c*100) / 100
	return math.Max(0.0, math.Min(1.0, c))
}
