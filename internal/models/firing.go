package models

// Firing is one kiln session: its metadata, who packed and unpacked it,
// and the work entries whose prices are being adjusted.
type Firing struct {
	// ID is the unique identifier for an archived firing (UUID format).
	// The in-progress sheet has no ID until it is archived.
	ID string `json:"id,omitempty"`

	// Date is the day the firing started, ISO format (YYYY-MM-DD).
	Date string `json:"firingDate"`

	// Type is the firing type name, one of the FiringTypes catalog.
	Type string `json:"firingType"`

	// Temp is the top temperature in degrees Celsius.
	Temp int `json:"firingTemp"`

	// Cost is the fixed total cost of the firing to be distributed
	// across the makers.
	Cost float64 `json:"firingCost"`

	// PackedBy lists the members who packed the kiln.
	PackedBy []Member `json:"packedBy"`

	// PricedBy lists the members who unpacked the kiln and priced the
	// work.
	PricedBy []Member `json:"pricedBy"`

	// Work holds one Maker per contributing member.
	Work []Maker `json:"work"`

	// CreatedAt is the Unix timestamp when the firing was archived.
	CreatedAt int64 `json:"createdAt,omitempty"`
}

// FiringType is a catalog entry describing a kind of firing and the
// temperature range it may legitimately run at.
type FiringType struct {
	Name        string `json:"name"`
	DefaultTemp int    `json:"default"`
	MinTemp     int    `json:"min"`
	MaxTemp     int    `json:"max"`
}

// FiringTypes is the catalog of firing types the co-op runs. Temperature
// bounds are in degrees Celsius.
var FiringTypes = []FiringType{
	{Name: "Bisque", DefaultTemp: 1000, MinTemp: 573, MaxTemp: 1120},
	{Name: "Earthenware", DefaultTemp: 1080, MinTemp: 1000, MaxTemp: 1160},
	{Name: "Midfire", DefaultTemp: 1210, MinTemp: 1160, MaxTemp: 1250},
	{Name: "Stoneware", DefaultTemp: 1280, MinTemp: 1250, MaxTemp: 1320},
}

// FiringTypeByName looks up a catalog entry. The second return is false
// when the name is not in the catalog.
func FiringTypeByName(name string) (FiringType, bool) {
	for _, ft := range FiringTypes {
		if ft.Name == name {
			return ft, true
		}
	}
	return FiringType{}, false
}
