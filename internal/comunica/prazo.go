package comunica

import (
	"math"
	"time"
)

// FinalDeadline converts a publication date ("YYYY-MM-DD") and a
// deadline expressed in court business days into a calendar date.
// Business days are approximated: the count is inflated by 40% for
// weekends and one day is added because the publication day does not
// count toward the clock. Returns "" when either input is absent or the
// date does not parse. A deliberate approximation, not calendar-aware
// business-day arithmetic.
func FinalDeadline(dataDisp string, prazoDias *int) string {
	if dataDisp == "" || prazoDias == nil || *prazoDias == 0 {
		return ""
	}
	if len(dataDisp) > 10 {
		dataDisp = dataDisp[:10]
	}
	d, err := time.Parse("2006-01-02", dataDisp)
	if err != nil {
		return ""
	}
	calDays := int(math.Ceil(float64(*prazoDias)*1.4)) + 1
	return d.AddDate(0, 0, calDays).Format("2006-01-02")
}
