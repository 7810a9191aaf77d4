package http

import "time"

// Hotel timezone (IST, UTC+5:30)
var hotelLocation *time.Location

func init() {
	var err error
	hotelLocation, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		hotelLocation = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// parseDate parses a YYYY-MM-DD date and returns midnight in the hotel
// timezone
func parseDate(dateStr string) (time.Time, error) {
	utcTime, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(utcTime.Year(), utcTime.Month(), utcTime.Day(), 0, 0, 0, 0, hotelLocation), nil
}
