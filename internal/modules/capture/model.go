// README: Capture journal record.
package capture

import "time"

// Record is the metadata written per capture. The composite raster itself
// is never stored; only where and when it was taken.
type Record struct {
	ID          string    `json:"id"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	DisplayName string    `json:"display_name"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	CapturedAt  time.Time `json:"captured_at"`
}
