// Package domain models the Messier catalog and the reference sky data drawn
// around it.
//
// # Data Source
//
// Catalog rows come from a CSV export of the Messier catalog (110 objects),
// one row per object. The loader in internal/catalog maps the CSV header to
// [CelestialObject] fields; this package only deals with the values.
//
// # Coordinate Conventions
//
// Right ascension is sexagesimal hours of time:
//
//	"05h 34m 31.9s"  →  (5 + 34/60 + 31.9/3600) × 15 = 83.6329°
//	"5 34 31.9" and "05:34:31.9" are accepted as numeric fallbacks.
//	Minutes and seconds may be omitted ("05h 34m", "5.5").
//
// Declination is sexagesimal degrees of arc:
//
//	"+22° 00′ 52″"  →  22 + 0/60 + 52/3600 = 22.0144°
//	"-05° 23′ 13″" and "−05° 23′ 13″" (U+2212 minus) are both negative.
//	ASCII ' and " are accepted in place of ′ and ″.
//	The sign applies to the whole value, so "-00° 30′" is -0.5°.
//
// Decimal results always satisfy 0 ≤ RA < 360 and -90 ≤ Dec ≤ 90. Anything
// else is reported as a [*ParseError] and the object's [Coordinates] are left
// invalid rather than defaulted to zero.
//
// # Object Classification
//
// Free-text object-type labels ("Barred Spiral galaxy", "H II region nebula
// with cluster") are folded into a small category set by case-insensitive
// substring match against per-category keyword lists:
//
//	Galaxy:  galaxy
//	Nebula:  nebula
//	Cluster: cluster, cloud
//	Other:   (default)
//
// Categories are tried in that order and the first keyword hit wins. The order
// is load-bearing: "Nebula with cluster" is a Nebula, and "Supernova remnant"
// matches nothing and lands in Other. See [StyleTable].
package domain
