package score

// Band is the colour bucket of a display percentage.
type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandFair      Band = "fair"
	BandPoor      Band = "poor"
)

// BandFor buckets a display percentage. Lower bounds are inclusive.
func BandFor(p int) Band {
	switch {
	case p >= 85:
		return BandExcellent
	case p >= 70:
		return BandGood
	case p >= 55:
		return BandFair
	default:
		return BandPoor
	}
}

// Display is a transformed score together with its band.
type Display struct {
	Percentage int  `json:"percentage"`
	Band       Band `json:"band"`
}

// DisplayOf transforms a raw score and buckets it.
func DisplayOf(raw float64) Display {
	p := ToDisplayPercentage(raw)
	return Display{Percentage: p, Band: BandFor(p)}
}
