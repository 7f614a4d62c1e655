package booking

type PriceCalculator interface {
	CalculatePriceCents(window TimeWindow) int64
}

// FlatRateCalculator charges a flat per-hour rate, prorated by minute in
// integer arithmetic so odd durations never drift through float rounding.
type FlatRateCalculator struct {
	HourlyRateCents int64
}

func NewFlatRateCalculator() *FlatRateCalculator {
	return &FlatRateCalculator{
		HourlyRateCents: 500,
	}
}

func (pc *FlatRateCalculator) CalculatePriceCents(window TimeWindow) int64 {
	minutes := int64(window.Duration().Minutes())
	return minutes * pc.HourlyRateCents / 60
}
