package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autolot/car-inventory-service/internal/core/domain"
)

func TestBuildFilterQueryExactMatch(t *testing.T) {
	query, args, err := buildFilterQuery(domain.FilterCriteria{
		Field: domain.FilterBrand,
		Value: "toyota",
	})

	require.NoError(t, err)
	assert.Contains(t, query, "WHERE brand = $1")
	assert.NotContains(t, query, "toyota", "user input must never appear in SQL text")
	assert.Equal(t, []interface{}{"toyota"}, args)
}

func TestBuildFilterQueryYear(t *testing.T) {
	query, args, err := buildFilterQuery(domain.FilterCriteria{
		Field:  domain.FilterYear,
		Anchor: 2021,
	})

	require.NoError(t, err)
	assert.Contains(t, query, "WHERE year = $1")
	assert.Contains(t, query, "CASE WHEN year = $2 THEN 0 ELSE 1 END")
	assert.Contains(t, query, "price ASC", "year ties break on price, not year")
	assert.Equal(t, []interface{}{2021, 2021}, args)
}

func TestBuildFilterQueryPriceRange(t *testing.T) {
	query, args, err := buildFilterQuery(domain.FilterCriteria{
		Field:  domain.FilterPrice,
		Anchor: 20000,
	})

	require.NoError(t, err)
	assert.Contains(t, query, "WHERE price BETWEEN $1 AND $2")
	assert.Contains(t, query, "CASE WHEN price = $3 THEN 0 ELSE 1 END")
	assert.Contains(t, query, "price ASC")
	assert.Equal(t, []interface{}{15000, 25000, 20000}, args)
}

func TestBuildFilterQueryPriceSentinels(t *testing.T) {
	_, args, err := buildFilterQuery(domain.FilterCriteria{
		Field:  domain.FilterPrice,
		Anchor: 5000,
	})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{0, 10000, 5000}, args)

	query, args, err := buildFilterQuery(domain.FilterCriteria{
		Field:  domain.FilterPrice,
		Anchor: 1000000,
	})
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE price >= $1", "top bucket has no upper cap")
	assert.Equal(t, []interface{}{1000000, 1000000}, args)
}

func TestBuildFilterQueryMileageRange(t *testing.T) {
	query, args, err := buildFilterQuery(domain.FilterCriteria{
		Field:  domain.FilterMileage,
		Anchor: 30000,
	})

	require.NoError(t, err)
	assert.Contains(t, query, "WHERE mileage BETWEEN $1 AND $2")
	assert.Contains(t, query, "mileage ASC")
	assert.Equal(t, []interface{}{25000, 35000, 30000}, args)
}

func TestBuildFilterQueryUnknownField(t *testing.T) {
	_, _, err := buildFilterQuery(domain.FilterCriteria{Field: "color"})
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestBuildRecommendedQuery(t *testing.T) {
	rec := domain.RecommendedCriteria{
		Models:        []string{"corolla", "civic"},
		Brands:        []string{"toyota", "honda"},
		Years:         []int{2021, 2022},
		Transmission:  "manual",
		FuelType:      "Petrol",
		PriceAnchor:   25000,
		PriceSpread:   10000,
		MileageAnchor: 15000,
		MileageSpread: 1000,
	}

	query, args := buildRecommendedQuery(rec)

	assert.Contains(t, query, "transmission = $1")
	assert.Contains(t, query, "model = ANY($2)")
	assert.Contains(t, query, "year = ANY($3)")
	assert.Contains(t, query, "fuel_type = $4")
	assert.Contains(t, query, "brand = ANY($5)")
	assert.Contains(t, query, "mileage BETWEEN $6 AND $7")
	assert.Contains(t, query, "price BETWEEN $8 AND $9")

	require.Len(t, args, 9)
	assert.Equal(t, "manual", args[0])
	assert.Equal(t, "Petrol", args[3])
	assert.Equal(t, 14000, args[5])
	assert.Equal(t, 16000, args[6])
	assert.Equal(t, 15000, args[7])
	assert.Equal(t, 35000, args[8])
}
