package domain

type FilterField string

const (
	FilterBrand        FilterField = "brand"
	FilterModel        FilterField = "model"
	FilterFuelType     FilterField = "fuel_type"
	FilterTransmission FilterField = "transmission"
	FilterYear         FilterField = "year"
	FilterPrice        FilterField = "price"
	FilterMileage      FilterField = "mileage"
)

// Numeric reports whether the field filters around a numeric anchor
// instead of matching a string value exactly.
func (f FilterField) Numeric() bool {
	switch f {
	case FilterYear, FilterPrice, FilterMileage:
		return true
	}
	return false
}

// FilterCriteria describes a single filter dimension. Exactly one of
// Value (exact-match fields) or Anchor (numeric fields) is meaningful.
type FilterCriteria struct {
	Field  FilterField
	Value  string
	Anchor int
}

// NumericRange is a derived [Min, Max] interval. Unbounded means the
// interval has no upper cap.
type NumericRange struct {
	Min       int
	Max       int
	Unbounded bool
}

// RangeAround derives the interval for a price/mileage anchor. The two
// sentinel anchors mirror the listing form's first and last bucket:
// 5000 means "anything up to 10000" and 1000000 means "1000000 and up".
func RangeAround(anchor int) NumericRange {
	switch anchor {
	case 5000:
		return NumericRange{Min: 0, Max: 10000}
	case 1000000:
		return NumericRange{Min: 1000000, Unbounded: true}
	default:
		return NumericRange{Min: anchor - 5000, Max: anchor + 5000}
	}
}

// RecommendedCriteria is the fixed "recommended cars" view. Defaults
// live in config and can be overridden through the environment.
type RecommendedCriteria struct {
	Models        []string
	Brands        []string
	Years         []int
	Transmission  string
	FuelType      string
	PriceAnchor   int
	PriceSpread   int
	MileageAnchor int
	MileageSpread int
}
