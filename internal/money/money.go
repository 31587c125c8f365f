// Package money holds the shared currency rounding primitive. Every monetary
// line boundary (line subtotal, line tax, commission, totals) must pass
// through Round2 so displayed and stored amounts never drift.
package money

import "math"

// Round2 rounds v to 2 decimal places. The small epsilon counters binary
// floating-point representation error for common currency fractions, so
// Round2(10.005) == 10.01 rather than 10.00. Idempotent:
// Round2(Round2(v)) == Round2(v).
func Round2(v float64) float64 {
	return math.Round((v+1e-9)*100) / 100
}
