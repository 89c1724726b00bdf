// Package occupancy computes utilization percentages for a resource pool
// (rooms or vehicles) over a billing period.
package occupancy

import "time"

const dayHours = 24.0

// Period is a closed date interval used as a query parameter.
type Period struct {
	Start time.Time
	End   time.Time
}

// Days returns the period length as a continuous day count.
func (p Period) Days() float64 {
	if !p.End.After(p.Start) {
		return 0
	}
	return p.End.Sub(p.Start).Hours() / dayHours
}

// Stay is one usage interval of a single resource unit. A nil End means the
// stay is ongoing and is treated as lasting until "now".
type Stay struct {
	Start time.Time
	End   *time.Time
}

func (s Stay) end(now time.Time) time.Time {
	if s.End == nil {
		return now
	}
	return *s.End
}

// Overlap returns the clipped length of the stay inside the period, in
// fractional days. The boundaries are strict: a stay ending exactly at the
// period start or starting exactly at the period end contributes nothing.
func (s Stay) Overlap(p Period, now time.Time) float64 {
	end := s.end(now)
	if !(s.Start.Before(p.End) && end.After(p.Start)) {
		return 0
	}
	from := s.Start
	if p.Start.After(from) {
		from = p.Start
	}
	to := end
	if p.End.Before(to) {
		to = p.End
	}
	return to.Sub(from).Hours() / dayHours
}

// Percent returns the utilization percentage of a pool of resourceCount
// units over the period: sold unit-days divided by available unit-days.
// Degrades to 0 on an empty pool or a zero-length period.
func Percent(p Period, resourceCount int64, stays []Stay, now time.Time) float64 {
	days := p.Days()
	if resourceCount <= 0 || days == 0 {
		return 0
	}
	var sold float64
	for _, s := range stays {
		sold += s.Overlap(p, now)
	}
	return sold / (float64(resourceCount) * days) * 100
}

// GroupPercent runs the same computation per group (category, floor, ...),
// using only that group's resource count and stays. Groups with a known
// count but no stays report 0%.
func GroupPercent(p Period, counts map[string]int64, stays map[string][]Stay, now time.Time) map[string]float64 {
	result := make(map[string]float64, len(counts))
	for key, count := range counts {
		result[key] = Percent(p, count, stays[key], now)
	}
	return result
}
