package trends

import "math"

// buzzSaturation is the article count at which the gauge pegs at 100.
const buzzSaturation = 40

// BuzzMeter maps coverage volume onto a bounded 0-100 intensity. The floor
// of 5 keeps the gauge from ever reading as dead air.
func BuzzMeter(articleCount int) int {
	v := int(math.Round(100 * float64(articleCount) / buzzSaturation))
	if v < 5 {
		return 5
	}
	if v > 100 {
		return 100
	}
	return v
}
