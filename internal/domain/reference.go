package domain

import (
	"slices"
	"sort"
)

// SkyPoint is a position in decimal degrees.
type SkyPoint struct {
	RA  float64 `json:"ra"`
	Dec float64 `json:"dec"`
}

// ConstellationPattern is a stick-figure outline drawn under the catalog.
type ConstellationPattern struct {
	Name       string       `json:"name"`
	Lines      [][]SkyPoint `json:"lines"`
	LabelPos   SkyPoint     `json:"label_pos"`
	MessierIDs []string     `json:"messier_ids"`
}

// BrightStar is a named navigation star.
type BrightStar struct {
	Name          string  `json:"name"`
	RA            float64 `json:"ra"`
	Dec           float64 `json:"dec"`
	Magnitude     float64 `json:"magnitude"`
	Constellation string  `json:"constellation"`
	Role          string  `json:"role"`
}

func seg(pts ...SkyPoint) []SkyPoint { return pts }

func pt(ra, dec float64) SkyPoint { return SkyPoint{RA: ra, Dec: dec} }

// Constellations returns the reference patterns in drawing order. Each call
// returns a fresh copy.
func Constellations() []ConstellationPattern {
	return []ConstellationPattern{
		{
			Name: "Orion",
			Lines: [][]SkyPoint{
				seg(pt(84.05, 1.2), pt(83.82, -0.3), pt(82.06, -1.2)), // belt
				seg(pt(88.79, 7.4), pt(84.05, 1.2)),
				seg(pt(88.79, 7.4), pt(83.82, -0.3)),
				seg(pt(78.63, -8.2), pt(82.06, -1.2)),
				seg(pt(78.63, -8.2), pt(83.82, -0.3)),
				seg(pt(85.19, 6.3), pt(88.79, 7.4)),
				seg(pt(85.19, 6.3), pt(84.05, 1.2)),
				seg(pt(78.63, -8.2), pt(81.28, -9.7)),
				seg(pt(83.82, -0.3), pt(83.86, -5.9)), // sword
				seg(pt(83.86, -5.9), pt(84.01, -6.0)),
			},
			LabelPos:   pt(83.5, -1.0),
			MessierIDs: []string{"M42", "M43", "M78"},
		},
		{
			Name: "Ursa Major",
			Lines: [][]SkyPoint{
				seg(pt(165.93, 61.75), pt(183.86, 57.03)),
				seg(pt(183.86, 57.03), pt(178.46, 53.69)),
				seg(pt(178.46, 53.69), pt(179.68, 57.06)),
				seg(pt(179.68, 57.06), pt(165.93, 61.75)),
				seg(pt(179.68, 57.06), pt(193.51, 53.69)), // handle
				seg(pt(193.51, 53.69), pt(210.96, 49.31)),
				seg(pt(210.96, 49.31), pt(230.18, 44.49)),
				seg(pt(165.93, 61.75), pt(168.53, 69.83)),
				seg(pt(178.46, 53.69), pt(169.62, 47.78)),
				seg(pt(169.62, 47.78), pt(178.46, 47.16)),
			},
			LabelPos:   pt(190.0, 55.0),
			MessierIDs: []string{"M81", "M82", "M97", "M101", "M108", "M109"},
		},
		{
			Name: "Ursa Minor",
			Lines: [][]SkyPoint{
				seg(pt(217.96, 82.04), pt(230.18, 77.79)),
				seg(pt(230.18, 77.79), pt(236.07, 74.16)),
				seg(pt(236.07, 74.16), pt(241.36, 75.76)),
				seg(pt(241.36, 75.76), pt(217.96, 82.04)),
				seg(pt(241.36, 75.76), pt(275.95, 71.83)),
				seg(pt(275.95, 71.83), pt(315.40, 74.09)),
				seg(pt(315.40, 74.09), pt(335.95, 70.26)),
			},
			LabelPos:   pt(250.0, 76.0),
			MessierIDs: []string{},
		},
		{
			Name: "Draco",
			Lines: [][]SkyPoint{
				seg(pt(279.23, 51.49), pt(268.38, 52.30)),
				seg(pt(268.38, 52.30), pt(263.05, 56.87)),
				seg(pt(263.05, 56.87), pt(279.23, 51.49)),
				seg(pt(268.38, 52.30), pt(238.06, 58.97)),
				seg(pt(238.06, 58.97), pt(215.29, 64.38)),
				seg(pt(215.29, 64.38), pt(191.89, 67.66)),
				seg(pt(191.89, 67.66), pt(175.58, 61.83)),
				seg(pt(175.58, 61.83), pt(155.58, 58.42)),
				seg(pt(155.58, 58.42), pt(145.69, 51.49)),
			},
			LabelPos:   pt(220.0, 60.0),
			MessierIDs: []string{},
		},
		{
			Name: "Sagittarius",
			Lines: [][]SkyPoint{
				seg(pt(276.04, -25.42), pt(279.23, -21.02)),
				seg(pt(279.23, -21.02), pt(284.74, -18.95)),
				seg(pt(284.74, -18.95), pt(290.97, -26.30)),
				seg(pt(290.97, -26.30), pt(295.42, -29.83)),
				seg(pt(295.42, -29.83), pt(289.13, -30.42)),
				seg(pt(289.13, -30.42), pt(276.04, -25.42)),
				seg(pt(284.74, -18.95), pt(298.96, -21.06)), // spout
				seg(pt(298.96, -21.06), pt(310.36, -15.25)),
				seg(pt(276.04, -25.42), pt(270.60, -34.38)), // handle
				seg(pt(270.60, -34.38), pt(271.45, -36.76)),
				seg(pt(290.97, -26.30), pt(295.42, -29.83)),
			},
			LabelPos:   pt(285.0, -25.0),
			MessierIDs: []string{"M8", "M17", "M18", "M20", "M21", "M22", "M23", "M24", "M25", "M28"},
		},
		{
			Name: "Andromeda",
			Lines: [][]SkyPoint{
				seg(pt(10.90, 46.00), pt(17.43, 35.62)),
				seg(pt(17.43, 35.62), pt(28.27, 42.33)),
				seg(pt(10.90, 46.00), pt(23.06, 30.29)),
				seg(pt(23.06, 30.29), pt(17.43, 35.62)),
				seg(pt(28.27, 42.33), pt(32.31, 39.24)),
			},
			LabelPos:   pt(20.0, 38.0),
			MessierIDs: []string{"M31", "M32", "M110"},
		},
		{
			Name: "Virgo",
			Lines: [][]SkyPoint{
				seg(pt(201.30, -11.16), pt(190.42, 1.45)),
				seg(pt(190.42, 1.45), pt(177.68, 14.57)),
				seg(pt(177.68, 14.57), pt(169.62, 8.56)),
				seg(pt(169.62, 8.56), pt(176.51, 5.66)),
				seg(pt(190.42, 1.45), pt(195.54, 10.96)),
				seg(pt(195.54, 10.96), pt(213.92, 19.18)),
			},
			LabelPos:   pt(185.0, 5.0),
			MessierIDs: []string{"M49", "M58", "M59", "M60", "M61", "M84", "M86", "M87", "M89", "M90", "M104"},
		},
		{
			Name: "Cassiopeia",
			Lines: [][]SkyPoint{
				seg(pt(14.18, 60.72), pt(21.45, 59.15)),
				seg(pt(21.45, 59.15), pt(28.60, 63.67)),
				seg(pt(28.60, 63.67), pt(35.84, 56.54)),
				seg(pt(35.84, 56.54), pt(51.23, 57.81)),
			},
			LabelPos:   pt(30.0, 59.0),
			MessierIDs: []string{"M52", "M103"},
		},
		{
			Name: "Leo",
			Lines: [][]SkyPoint{
				seg(pt(152.09, 11.97), pt(154.99, 20.52)), // sickle
				seg(pt(154.99, 20.52), pt(165.42, 23.77)),
				seg(pt(165.42, 23.77), pt(168.67, 26.01)),
				seg(pt(168.67, 26.01), pt(170.28, 23.42)),
				seg(pt(170.28, 23.42), pt(165.42, 23.77)),
				seg(pt(177.26, 20.52), pt(168.53, 14.57)),
				seg(pt(168.53, 14.57), pt(165.11, 2.30)),
				seg(pt(165.11, 2.30), pt(177.26, 20.52)),
				seg(pt(165.42, 23.77), pt(168.53, 14.57)),
				seg(pt(152.09, 11.97), pt(165.11, 2.30)),
			},
			LabelPos:   pt(165.0, 15.0),
			MessierIDs: []string{"M65", "M66", "M95", "M96", "M105"},
		},
		{
			Name: "Cygnus",
			Lines: [][]SkyPoint{
				seg(pt(327.96, 45.13), pt(310.36, 45.28)),
				seg(pt(310.36, 45.28), pt(292.68, 40.26)),
				seg(pt(296.24, 27.96), pt(310.36, 45.28)),
				seg(pt(310.36, 45.28), pt(305.56, 50.22)),
			},
			LabelPos:   pt(310.0, 40.0),
			MessierIDs: []string{"M29", "M39"},
		},
		{
			// Asterism, not a constellation.
			Name: "Summer Triangle",
			Lines: [][]SkyPoint{
				seg(pt(279.23, 38.78), pt(297.70, 8.87)),
				seg(pt(297.70, 8.87), pt(310.36, 45.28)),
				seg(pt(310.36, 45.28), pt(279.23, 38.78)),
			},
			LabelPos:   pt(295.0, 30.0),
			MessierIDs: []string{"M27", "M56", "M57", "M71"},
		},
	}
}

var brightestStars = []BrightStar{
	{"Sirius", 101.287, -16.716, -1.46, "Canis Major", "brightest"},
	{"Canopus", 95.988, -52.696, -0.74, "Carina", "brightest"},
	{"Arcturus", 213.915, 19.182, -0.05, "Boötes", "brightest"},
	{"Vega", 279.23, 38.78, 0.03, "Lyra", "brightest"},
	{"Capella", 79.172, 45.998, 0.08, "Auriga", "brightest"},
	{"Rigel", 78.63, -8.2, 0.13, "Orion", "brightest"},
	{"Procyon", 114.826, 5.225, 0.38, "Canis Minor", "brightest"},
	{"Betelgeuse", 88.79, 7.4, 0.50, "Orion", "brightest"},
	{"Altair", 297.70, 8.87, 0.77, "Aquila", "brightest"},
	{"Aldebaran", 68.980, 16.509, 0.85, "Taurus", "brightest"},
	{"Antares", 247.352, -26.296, 1.09, "Scorpius", "brightest"},
	{"Spica", 201.30, -11.16, 1.04, "Virgo", "brightest"},
	{"Pollux", 116.329, 28.026, 1.14, "Gemini", "brightest"},
	{"Fomalhaut", 344.413, -29.622, 1.16, "Piscis Austrinus", "brightest"},
	{"Deneb", 310.36, 45.28, 1.25, "Cygnus", "brightest"},
	{"Regulus", 152.09, 11.97, 1.35, "Leo", "brightest"},
}

// Positions of the pattern stars match the constellation line vertices.
var patternStars = []BrightStar{
	{"Polaris", 217.96, 82.04, 2.02, "Ursa Minor", "north_star"},

	{"Alnitak", 84.05, 1.2, 1.77, "Orion", "belt_star"},
	{"Alnilam", 83.82, -0.3, 1.69, "Orion", "belt_star"},
	{"Mintaka", 82.06, -1.2, 2.23, "Orion", "belt_star"},
	{"Bellatrix", 85.19, 6.3, 1.64, "Orion", "shoulder"},
	{"Saiph", 81.28, -9.7, 2.06, "Orion", "foot"},

	{"Dubhe", 165.93, 61.75, 1.79, "Ursa Major", "dipper_bowl"},
	{"Merak", 183.86, 57.03, 2.37, "Ursa Major", "dipper_bowl"},
	{"Phecda", 178.46, 53.69, 2.44, "Ursa Major", "dipper_bowl"},
	{"Megrez", 179.68, 57.06, 3.31, "Ursa Major", "dipper_handle"},
	{"Alioth", 193.51, 53.69, 1.77, "Ursa Major", "dipper_handle"},
	{"Mizar", 210.96, 49.31, 2.04, "Ursa Major", "dipper_handle"},
	{"Alkaid", 230.18, 44.49, 1.86, "Ursa Major", "dipper_handle"},
	{"Muscida", 168.53, 69.83, 3.35, "Ursa Major", "bear_foot"},
	{"Tania Australis", 169.62, 47.78, 3.06, "Ursa Major", "bear_paw"},
	{"Tania Borealis", 178.46, 47.16, 3.45, "Ursa Major", "bear_paw"},

	{"Kochab", 230.18, 77.79, 2.08, "Ursa Minor", "dipper_bowl"},
	{"Pherkad", 236.07, 74.16, 3.05, "Ursa Minor", "dipper_bowl"},
	{"Gamma UMi", 241.36, 75.76, 3.05, "Ursa Minor", "dipper_bowl"},

	{"Caph", 14.18, 60.72, 2.27, "Cassiopeia", "w_shape"},
	{"Schedar", 21.45, 59.15, 2.23, "Cassiopeia", "w_shape"},
	{"Gamma Cas", 28.60, 63.67, 2.47, "Cassiopeia", "w_shape"},
	{"Ruchbah", 35.84, 56.54, 2.68, "Cassiopeia", "w_shape"},
	{"Segin", 51.23, 57.81, 3.38, "Cassiopeia", "w_shape"},

	{"Kaus Australis", 276.04, -25.42, 1.85, "Sagittarius", "teapot"},
	{"Kaus Media", 279.23, -21.02, 2.70, "Sagittarius", "teapot"},
	{"Kaus Borealis", 284.74, -18.95, 2.81, "Sagittarius", "teapot"},
	{"Alnasl", 290.97, -26.30, 2.98, "Sagittarius", "teapot"},
	{"Ascella", 295.42, -29.83, 2.60, "Sagittarius", "teapot"},
	{"Nunki", 298.96, -21.06, 2.05, "Sagittarius", "teapot"},
	{"Phi Sgr", 289.13, -30.42, 3.17, "Sagittarius", "teapot"},
	{"Tau Sgr", 310.36, -15.25, 3.32, "Sagittarius", "teapot_spout"},
	{"Arkab Prior", 270.60, -34.38, 3.97, "Sagittarius", "teapot_handle"},
	{"Arkab Posterior", 271.45, -36.76, 4.27, "Sagittarius", "teapot_handle"},

	{"Eltanin", 279.23, 51.49, 2.23, "Draco", "dragon_head"},
	{"Rastaban", 268.38, 52.30, 2.79, "Draco", "dragon_head"},
	{"Grumium", 263.05, 56.87, 3.65, "Draco", "dragon_head"},

	{"Albireo", 296.24, 27.96, 3.18, "Cygnus", "cross_foot"},
	{"Sadr", 305.56, 50.22, 2.20, "Cygnus", "cross_center"},
	{"Gienah Cyg", 327.96, 45.13, 2.46, "Cygnus", "cross_wing"},
	{"Delta Cyg", 292.68, 40.26, 2.87, "Cygnus", "cross_wing"},

	{"Eta Leo", 154.99, 20.52, 3.49, "Leo", "mane"},
	{"Algieba", 165.42, 23.77, 2.28, "Leo", "mane"},
	{"Zeta Leo", 168.67, 26.01, 3.44, "Leo", "mane"},
	{"Mu Leo", 170.28, 23.42, 3.88, "Leo", "mane"},
	{"Adhafera", 177.26, 20.52, 3.43, "Leo", "back"},
	{"Zosma", 168.53, 14.57, 2.56, "Leo", "back"},
	{"Chertan", 165.11, 2.30, 3.33, "Leo", "rear"},

	{"Zavijava", 190.42, 1.45, 3.38, "Virgo", "wing"},
	{"Vindemiatrix", 177.68, 14.57, 2.85, "Virgo", "arm"},
	{"Porrima", 169.62, 8.56, 2.74, "Virgo", "body"},
	{"Heze", 195.54, 10.96, 3.38, "Virgo", "leg"},
	{"Tau Vir", 176.51, 5.66, 4.28, "Virgo", "connector"},

	{"Alpheratz", 10.90, 46.00, 2.06, "Andromeda", "head"},
	{"Mirach", 17.43, 35.62, 2.05, "Andromeda", "hip"},
	{"Almach", 28.27, 42.33, 2.26, "Andromeda", "foot"},
	{"Delta And", 23.06, 30.29, 3.27, "Andromeda", "hand"},
	{"51 And", 32.31, 39.24, 3.57, "Andromeda", "foot_extension"},

	{"Castor", 113.65, 31.89, 1.59, "Gemini", "twin_head"},
}

// BrightStars returns the brightest stars followed by the constellation
// pattern stars, deduplicated by name (first occurrence wins) and ordered by
// magnitude, brightest first. Equal magnitudes keep their listed order.
func BrightStars() []BrightStar {
	return MergeStars(brightestStars, patternStars)
}

// MergeStars concatenates lists, drops repeated names and sorts by magnitude.
func MergeStars(lists ...[]BrightStar) []BrightStar {
	seen := make(map[string]struct{})
	var out []BrightStar
	for _, list := range lists {
		for _, s := range list {
			if _, dup := seen[s.Name]; dup {
				continue
			}
			seen[s.Name] = struct{}{}
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Magnitude < out[j].Magnitude })
	return out
}

// MessierCount is the number of catalog objects associated with p.
func (p ConstellationPattern) MessierCount() int { return len(p.MessierIDs) }

// HasMessier reports whether id is one of the pattern's Messier objects.
func (p ConstellationPattern) HasMessier(id string) bool {
	return slices.Contains(p.MessierIDs, id)
}
