// Package climate holds UK regional design conditions: external design
// temperatures and heating degree days by region, and the postcode area
// lookup that selects a region.
package climate

import "sort"

// Region is the design climate of one UK region (CIBSE Guide A figures).
type Region struct {
	Key                string  `json:"key" yaml:"key"`
	Name               string  `json:"name" yaml:"name"`
	ExternalDesignTemp float64 `json:"externalDesignTemp" yaml:"externalDesignTemp"` // °C
	HeatingDegreeDays  float64 `json:"heatingDegreeDays" yaml:"heatingDegreeDays"`
	WindExposure       float64 `json:"windExposure" yaml:"windExposure"`
	Altitude           float64 `json:"altitude" yaml:"altitude"` // m
}

// DefaultRegion is used when a postcode area is not recognised.
const DefaultRegion = "southeast"

var regions = []Region{
	{Key: "london", Name: "London", ExternalDesignTemp: -3, HeatingDegreeDays: 2050, WindExposure: 0.9, Altitude: 20},
	{Key: "southeast", Name: "South East England", ExternalDesignTemp: -3, HeatingDegreeDays: 2150, WindExposure: 1.0, Altitude: 50},
	{Key: "southwest", Name: "South West England", ExternalDesignTemp: -2, HeatingDegreeDays: 2000, WindExposure: 1.1, Altitude: 100},
	{Key: "eastAnglia", Name: "East Anglia", ExternalDesignTemp: -3, HeatingDegreeDays: 2200, WindExposure: 1.1, Altitude: 30},
	{Key: "eastMidlands", Name: "East Midlands", ExternalDesignTemp: -4, HeatingDegreeDays: 2300, WindExposure: 1.0, Altitude: 100},
	{Key: "westMidlands", Name: "West Midlands", ExternalDesignTemp: -4, HeatingDegreeDays: 2250, WindExposure: 1.0, Altitude: 120},
	{Key: "northwest", Name: "North West England", ExternalDesignTemp: -4, HeatingDegreeDays: 2350, WindExposure: 1.2, Altitude: 100},
	{Key: "northeast", Name: "North East England", ExternalDesignTemp: -5, HeatingDegreeDays: 2450, WindExposure: 1.2, Altitude: 80},
	{Key: "yorkshire", Name: "Yorkshire and Humber", ExternalDesignTemp: -4, HeatingDegreeDays: 2400, WindExposure: 1.1, Altitude: 90},
	{Key: "wales", Name: "Wales", ExternalDesignTemp: -3, HeatingDegreeDays: 2200, WindExposure: 1.2, Altitude: 150},
	{Key: "scotland", Name: "Scotland", ExternalDesignTemp: -6, HeatingDegreeDays: 2700, WindExposure: 1.3, Altitude: 200},
	{Key: "northernIreland", Name: "Northern Ireland", ExternalDesignTemp: -4, HeatingDegreeDays: 2400, WindExposure: 1.2, Altitude: 100},
}

var regionByKey = func() map[string]Region {
	m := make(map[string]Region, len(regions))
	for _, r := range regions {
		m[r.Key] = r
	}
	return m
}()

// postcodeAreas maps the letters of a postcode area to a region key.
var postcodeAreas = map[string]string{
	// London
	"E": "london", "EC": "london", "N": "london", "NW": "london",
	"SE": "london", "SW": "london", "W": "london", "WC": "london",

	// South East
	"BR": "southeast", "CR": "southeast", "DA": "southeast", "EN": "southeast",
	"GU": "southeast", "HA": "southeast", "HP": "southeast", "KT": "southeast",
	"ME": "southeast", "MK": "southeast", "OX": "southeast", "RG": "southeast",
	"RM": "southeast", "SL": "southeast", "SM": "southeast", "TN": "southeast",
	"TW": "southeast", "UB": "southeast", "WD": "southeast",

	// South West
	"BA": "southwest", "BH": "southwest", "BS": "southwest", "DT": "southwest",
	"EX": "southwest", "GL": "southwest", "PL": "southwest", "SN": "southwest",
	"SP": "southwest", "TA": "southwest", "TQ": "southwest", "TR": "southwest",

	// East Anglia
	"CB": "eastAnglia", "CM": "eastAnglia", "CO": "eastAnglia", "IP": "eastAnglia",
	"NR": "eastAnglia", "PE": "eastAnglia", "SG": "eastAnglia", "SS": "eastAnglia",

	// East Midlands
	"DE": "eastMidlands", "LE": "eastMidlands", "LN": "eastMidlands",
	"NG": "eastMidlands", "NN": "eastMidlands",

	// West Midlands
	"B": "westMidlands", "CV": "westMidlands", "DY": "westMidlands", "HR": "westMidlands",
	"ST": "westMidlands", "SY": "westMidlands", "TF": "westMidlands", "WR": "westMidlands",
	"WS": "westMidlands", "WV": "westMidlands",

	// North West
	"BB": "northwest", "BL": "northwest", "CA": "northwest", "CH": "northwest",
	"CW": "northwest", "FY": "northwest", "L": "northwest", "LA": "northwest",
	"M": "northwest", "OL": "northwest", "PR": "northwest", "SK": "northwest",
	"WA": "northwest", "WN": "northwest",

	// North East
	"DH": "northeast", "DL": "northeast", "NE": "northeast", "SR": "northeast", "TS": "northeast",

	// Yorkshire
	"BD": "yorkshire", "DN": "yorkshire", "HD": "yorkshire", "HG": "yorkshire",
	"HU": "yorkshire", "HX": "yorkshire", "LS": "yorkshire", "S": "yorkshire",
	"WF": "yorkshire", "YO": "yorkshire",

	// Wales
	"CF": "wales", "LD": "wales", "LL": "wales", "NP": "wales", "SA": "wales",

	// Scotland
	"AB": "scotland", "DD": "scotland", "DG": "scotland", "EH": "scotland",
	"FK": "scotland", "G": "scotland", "HS": "scotland", "IV": "scotland",
	"KA": "scotland", "KW": "scotland", "KY": "scotland", "ML": "scotland",
	"PA": "scotland", "PH": "scotland", "TD": "scotland", "ZE": "scotland",

	// Northern Ireland
	"BT": "northernIreland",
}

// Regions returns every region in table order.
func Regions() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}

// Lookup returns the region with the given key.
func Lookup(key string) (Region, bool) {
	r, ok := regionByKey[key]
	return r, ok
}

// RegionForPostcode returns the region key for a postcode and whether the
// postcode area was recognised.
func RegionForPostcode(postcode string) (string, bool) {
	area := ExtractArea(postcode)
	if area == "" {
		return "", false
	}
	key, ok := postcodeAreas[area]
	return key, ok
}

// Climate is the design climate resolved for a postcode.
type Climate struct {
	Region
	Postcode  string `json:"postcode"`
	IsDefault bool   `json:"isDefault"`
}

// ForPostcode resolves the climate of a postcode, falling back to the
// default region when the area is unknown.
func ForPostcode(postcode string) Climate {
	key, ok := RegionForPostcode(postcode)
	if !ok {
		return Climate{Region: regionByKey[DefaultRegion], Postcode: postcode, IsDefault: true}
	}
	return Climate{Region: regionByKey[key], Postcode: postcode}
}

// ColdestRegions returns up to limit regions ordered by external design
// temperature, coldest first. Ties keep table order.
func ColdestRegions(limit int) []Region {
	out := Regions()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExternalDesignTemp < out[j].ExternalDesignTemp
	})
	if limit >= 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}
