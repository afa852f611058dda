package catalog

import (
	"time"

	"github.com/couchcryptid/messier-skychart/internal/domain"
)

// Dataset is one published snapshot of the catalog. It is read-only once
// handed to a Store.
type Dataset struct {
	Objects            []domain.CelestialObject
	Source             string
	LoadedAt           time.Time
	InvalidCoordinates int
	// Generation is assigned by Store.Set and increases with every publish.
	Generation uint64
}

// Len is the number of objects, including those without valid coordinates.
func (d *Dataset) Len() int { return len(d.Objects) }

// Find returns the object with the given Messier id.
func (d *Dataset) Find(messierID string) (domain.CelestialObject, bool) {
	for _, o := range d.Objects {
		if o.MessierID == messierID {
			return o, true
		}
	}
	return domain.CelestialObject{}, false
}
