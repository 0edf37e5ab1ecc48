package entities

import "math"

const earthRadiusKm = 6371.0

// Location is an immutable value: coordinates plus free-text address
// fields. (0,0) is reserved to mean "unknown" rather than a real point
// near Null Island, per the Haversine contract below.
type Location struct {
	Latitude  float64
	Longitude float64
	Address   string
	City      string
	Region    string
}

// IsUnknown reports whether this location carries no usable coordinates.
func (l Location) IsUnknown() bool {
	return l.Latitude == 0 && l.Longitude == 0
}

// Equal compares latitude, longitude, and address only; two locations
// equal under this relation are interchangeable for scoring purposes.
func (l Location) Equal(other Location) bool {
	return l.Latitude == other.Latitude &&
		l.Longitude == other.Longitude &&
		l.Address == other.Address
}

// HaversineKm returns the great-circle distance between a and b, and
// false if either location is unknown (distance is absent, not a
// near-zero distance from Null Island).
func HaversineKm(a, b Location) (km float64, ok bool) {
	if a.IsUnknown() || b.IsUnknown() {
		return 0, false
	}

	lat1, lat2 := degToRad(a.Latitude), degToRad(b.Latitude)
	dLat := degToRad(b.Latitude - a.Latitude)
	dLon := degToRad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c, true
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
