package render

import (
	"time"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
)

type venue struct {
	key       string
	label     string
	zone      string
	openHour  int
	openMin   int
	closeHour int
	closeMin  int
}

var venues = []venue{
	{key: "ist", label: "IST", zone: "Europe/Istanbul", openHour: 9, openMin: 55, closeHour: 18, closeMin: 10},
	{key: "ny", label: "NY", zone: "America/New_York", openHour: 9, openMin: 30, closeHour: 16, closeMin: 0},
	{key: "ln", label: "LDN", zone: "Europe/London", openHour: 8, openMin: 0, closeHour: 16, closeMin: 30},
	{key: "sh", label: "SHA", zone: "Asia/Shanghai", openHour: 9, openMin: 30, closeHour: 15, closeMin: 0},
}

// ExchangeStatuses reports open/closed per venue for the given instant.
// Weekends are closed; session bounds are inclusive.
func ExchangeStatuses(now time.Time) map[string]models.ExchangeStatus {
	out := make(map[string]models.ExchangeStatus, len(venues))
	for _, v := range venues {
		loc, err := time.LoadLocation(v.zone)
		if err != nil {
			loc = time.UTC
		}
		local := now.In(loc)
		open := isOpen(local, v)
		status := "CLOSED"
		if open {
			status = "OPEN"
		}
		out[v.key] = models.ExchangeStatus{
			Label:     v.label,
			Status:    status,
			LocalTime: local.Format("15:04"),
			IsOpen:    open,
		}
	}
	return out
}

func isOpen(local time.Time, v venue) bool {
	wd := local.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	minutes := local.Hour()*60 + local.Minute()
	return minutes >= v.openHour*60+v.openMin && minutes <= v.closeHour*60+v.closeMin
}
