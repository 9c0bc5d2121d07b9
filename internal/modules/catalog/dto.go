package catalog

// Filter narrows the catalog. Empty slices and a zero MaxPrice mean no
// constraint on that attribute; an empty result is a valid outcome, not an
// error.
type Filter struct {
	Types       []string `form:"type"`
	Furnishings []string `form:"furnishing"`
	MaxPrice    int      `form:"max_price"`
}
