package domain

type PropertyType string

const (
	PropertyCondo      PropertyType = "CONDO"
	PropertyLanded     PropertyType = "LANDED"
	PropertyRoom       PropertyType = "ROOM"
	PropertyEntireUnit PropertyType = "ENTIRE_UNIT"
)

func (t PropertyType) Valid() bool {
	switch t {
	case PropertyCondo, PropertyLanded, PropertyRoom, PropertyEntireUnit:
		return true
	}
	return false
}

type Furnishing string

const (
	FullyFurnished     Furnishing = "FULLY"
	PartiallyFurnished Furnishing = "PARTIALLY"
	Unfurnished        Furnishing = "UNFURNISHED"
)

func (f Furnishing) Valid() bool {
	switch f {
	case FullyFurnished, PartiallyFurnished, Unfurnished:
		return true
	}
	return false
}

// Property is a published listing. Listings are immutable once loaded into
// the catalog; there is no update path outside the seed.
type Property struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Location    string       `json:"location"`
	Price       int          `json:"price"`
	Type        PropertyType `json:"type"`
	Furnishing  Furnishing   `json:"furnishing"`
	Rooms       int          `json:"rooms"`
	Bathrooms   int          `json:"bathrooms"`
	Sqft        int          `json:"sqft"`
	Tags        []string     `json:"tags,omitempty"`
	Description string       `json:"description,omitempty"`
	OwnerID     int64        `json:"owner_id"`
}
