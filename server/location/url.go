package location

import (
	"net/url"
	"strconv"
)

const searchBaseURL = "https://www.google.com/maps/search/"

// Coordinates is a WGS84 position reported by the user's device.
type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// SearchURL builds a Google Maps search link for query. When at is non-nil
// the map is centered on it at street zoom.
func SearchURL(query string, at *Coordinates) string {
	u := searchBaseURL + url.PathEscape(query)
	if at != nil {
		u += "/@" + formatDegrees(at.Latitude) + "," + formatDegrees(at.Longitude) + ",15z"
	}
	return u
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
