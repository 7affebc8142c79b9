package scoring

type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandFair      Band = "fair"
	BandPass      Band = "pass"
	BandFail      Band = "fail"
)

// BandFor works on averages as well as raw scores.
func BandFor(score float64) Band {
	switch {
	case score >= 90:
		return BandExcellent
	case score >= 80:
		return BandGood
	case score >= 70:
		return BandFair
	case score >= 60:
		return BandPass
	default:
		return BandFail
	}
}
