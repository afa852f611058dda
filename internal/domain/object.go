package domain

import "errors"

// Coordinates are equatorial coordinates in decimal degrees. Valid is false
// when the source text could not be parsed.
type Coordinates struct {
	RA    float64 `json:"ra"`
	Dec   float64 `json:"dec"`
	Valid bool    `json:"valid"`
}

// InRange reports whether RA is in [0,360] and Dec in [-90,90].
func (c Coordinates) InRange() bool {
	return c.RA >= 0 && c.RA <= 360 && c.Dec >= -90 && c.Dec <= 90
}

// CelestialObject is one row of the Messier catalog.
type CelestialObject struct {
	Number        int         `json:"number"`
	MessierID     string      `json:"messier_id"`
	NGCIC         string      `json:"ngc_ic,omitempty"`
	CommonName    string      `json:"common_name"`
	ObjectType    string      `json:"object_type"`
	Constellation string      `json:"constellation"`
	Magnitude     *float64    `json:"magnitude"`
	DistanceKly   *float64    `json:"distance_kly"`
	Season        string      `json:"season"`
	RAText        string      `json:"ra_text"`
	DecText       string      `json:"dec_text"`
	Coords        Coordinates `json:"coordinates"`
}

// WithCoordinates returns a copy of o with Coords derived from RAText and
// DecText. On failure Coords is left invalid and the parse errors are
// returned joined.
func (o CelestialObject) WithCoordinates() (CelestialObject, error) {
	ra, raErr := ParseRA(o.RAText)
	dec, decErr := ParseDec(o.DecText)
	if err := errors.Join(raErr, decErr); err != nil {
		o.Coords = Coordinates{}
		return o, err
	}
	o.Coords = Coordinates{RA: ra, Dec: dec, Valid: true}
	return o, nil
}
