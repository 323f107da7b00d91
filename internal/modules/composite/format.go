// README: Overlay text formatting (coordinates, timestamp, GMT offset).
package composite

import (
	"fmt"
	"strconv"
	"time"

	"geosnap/internal/modules/geocode"
	"geosnap/internal/modules/position"
)

// FormatCoordinate renders a coordinate with exactly six fractional digits.
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// GMTOffsetString renders a timezone offset in minutes east of UTC as
// "GMT ±HH:MM". Zero and positive offsets take "+"; hours and minutes are
// always two digits.
func GMTOffsetString(offsetMinutes int) string {
	sign := "+"
	if offsetMinutes < 0 {
		sign = "-"
		offsetMinutes = -offsetMinutes
	}
	return fmt.Sprintf("GMT %s%02d:%02d", sign, offsetMinutes/60, offsetMinutes%60)
}

// TimestampLine renders the capture time as day/month/two-digit-year with a
// 12-hour clock, followed by the local GMT offset.
func TimestampLine(t time.Time) string {
	_, offsetSeconds := t.Zone()
	return t.Format("02/01/06, 03:04 PM") + " " + GMTOffsetString(offsetSeconds/60)
}

// OverlayLines builds the four text lines of the band, top to bottom.
func OverlayLines(addr geocode.Address, pos position.Position, now time.Time) []string {
	return []string{
		fmt.Sprintf("%s, %s, %s", addr.City, addr.State, addr.Country),
		fmt.Sprintf("%s, %s", addr.PostalCode, addr.Country),
		fmt.Sprintf("Lat %s° Long %s°",
			FormatCoordinate(pos.Latitude), FormatCoordinate(pos.Longitude)),
		TimestampLine(now),
	}
}
