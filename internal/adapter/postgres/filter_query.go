package postgres

import (
	"fmt"

	"github.com/lib/pq"

	"github.com/autolot/car-inventory-service/internal/core/domain"
)

const carColumns = "id, brand, model, year, price, mileage, fuel_type, transmission, color, image_paths, created_at, updated_at"

// filterColumns whitelists the columns a filter may touch. Only values
// from this map ever reach the SQL text; user input is always bound.
var filterColumns = map[domain.FilterField]string{
	domain.FilterBrand:        "brand",
	domain.FilterModel:        "model",
	domain.FilterFuelType:     "fuel_type",
	domain.FilterTransmission: "transmission",
	domain.FilterYear:         "year",
	domain.FilterPrice:        "price",
	domain.FilterMileage:      "mileage",
}

// buildFilterQuery turns one filter dimension into parameterized SQL.
//
// Exact-match fields compare literally. Numeric fields order matching
// rows anchor-first (rank 0), then the rest of the interval ascending.
// Year does not widen into a range; ties are broken by price.
func buildFilterQuery(criteria domain.FilterCriteria) (string, []interface{}, error) {
	column, ok := filterColumns[criteria.Field]
	if !ok {
		return "", nil, fmt.Errorf("%w: unknown filter field %q", domain.ErrInvalidParameter, criteria.Field)
	}

	switch criteria.Field {
	case domain.FilterBrand, domain.FilterModel, domain.FilterFuelType, domain.FilterTransmission:
		query := fmt.Sprintf("SELECT %s FROM cars WHERE %s = $1", carColumns, column)
		return query, []interface{}{criteria.Value}, nil

	case domain.FilterYear:
		query := fmt.Sprintf(`SELECT %s FROM cars
		WHERE year = $1
		ORDER BY CASE WHEN year = $2 THEN 0 ELSE 1 END, price ASC`, carColumns)
		return query, []interface{}{criteria.Anchor, criteria.Anchor}, nil

	case domain.FilterPrice, domain.FilterMileage:
		rng := domain.RangeAround(criteria.Anchor)
		if rng.Unbounded {
			query := fmt.Sprintf(`SELECT %s FROM cars
		WHERE %s >= $1
		ORDER BY CASE WHEN %s = $2 THEN 0 ELSE 1 END, %s ASC`, carColumns, column, column, column)
			return query, []interface{}{rng.Min, criteria.Anchor}, nil
		}
		query := fmt.Sprintf(`SELECT %s FROM cars
		WHERE %s BETWEEN $1 AND $2
		ORDER BY CASE WHEN %s = $3 THEN 0 ELSE 1 END, %s ASC`, carColumns, column, column, column)
		return query, []interface{}{rng.Min, rng.Max, criteria.Anchor}, nil
	}

	return "", nil, fmt.Errorf("%w: unknown filter field %q", domain.ErrInvalidParameter, criteria.Field)
}

// buildRecommendedQuery builds the fixed multi-criteria view: membership
// sets for model/year/brand, exact transmission and fuel type, and
// configured spreads around the price and mileage anchors.
func buildRecommendedQuery(rec domain.RecommendedCriteria) (string, []interface{}) {
	query := fmt.Sprintf(`SELECT %s FROM cars
		WHERE transmission = $1
		AND model = ANY($2)
		AND year = ANY($3)
		AND fuel_type = $4
		AND brand = ANY($5)
		AND mileage BETWEEN $6 AND $7
		AND price BETWEEN $8 AND $9`, carColumns)

	args := []interface{}{
		rec.Transmission,
		pq.Array(rec.Models),
		pq.Array(rec.Years),
		rec.FuelType,
		pq.Array(rec.Brands),
		rec.MileageAnchor - rec.MileageSpread,
		rec.MileageAnchor + rec.MileageSpread,
		rec.PriceAnchor - rec.PriceSpread,
		rec.PriceAnchor + rec.PriceSpread,
	}
	return query, args
}
