package market

import (
	"github.com/shopspring/decimal"

	"github.com/agrisync/agrisync/predict"
)

type staticRow struct {
	crop           string
	unit           string
	category       predict.Category
	prices         []string
	recommendation string
}

var staticDates = []string{"2025-03-16", "2025-03-23", "2025-03-30", "2025-04-06"}

var staticRows = []staticRow{
	{
		crop:     "banana",
		unit:     "Rs./Dozen",
		category: predict.CategoryFruit,
		prices:   []string{"15.01", "15.01", "18.0", "18.0"},
		recommendation: "Prices expected to rise by 20% in coming weeks. Consider delaying harvest " +
			"if possible to maximize profits.",
	},
	{
		crop:     "onion",
		unit:     "Rs./Kg",
		category: predict.CategoryVegetable,
		prices:   []string{"21.74", "21.93", "22.1", "23.0"},
		recommendation: "Steady price increase suggests holding inventory if storage conditions permit. " +
			"Plan regular market supply.",
	},
	{
		crop:     "tomato",
		unit:     "Rs./Kg",
		category: predict.CategoryVegetable,
		prices:   []string{"12.91", "12.86", "12.92", "12.95"},
		recommendation: "Price stability indicates a balanced market. Focus on quality to secure " +
			"premium pricing.",
	},
	{
		crop:     "wheat",
		unit:     "Rs./Kg",
		category: predict.CategoryGrain,
		prices:   []string{"44.13", "44.18", "45.0", "48.47"},
		recommendation: "Sharp price increase expected in early April. Consider futures contracts " +
			"to lock in higher prices.",
	},
	{
		crop:     "carrot",
		unit:     "Rs./Kg",
		category: predict.CategoryVegetable,
		prices:   []string{"14.96", "15.95", "17.5", "18.0"},
		recommendation: "Strong upward trend indicates high demand. Consider staggered harvesting " +
			"to benefit from peak prices.",
	},
	{
		crop:     "potato",
		unit:     "Rs./Kg",
		category: predict.CategoryVegetable,
		prices:   []string{"19.25", "19.50", "19.75", "20.25"},
		recommendation: "Modest price growth indicates steady demand. Consider cold storage for " +
			"gradual market release.",
	},
	{
		crop:     "rice",
		unit:     "Rs./Kg",
		category: predict.CategoryGrain,
		prices:   []string{"55.10", "54.90", "54.85", "54.50"},
		recommendation: "Slight downward trend suggests selling sooner rather than later.",
	},
}

// Static returns the bundled forecast table used when live data is not
// available. Each call returns a fresh copy.
func Static() []Entry {
	entries := make([]Entry, len(staticRows))
	for i, row := range staticRows {
		points := make([]predict.PricePoint, len(row.prices))
		for j, p := range row.prices {
			date, err := predict.NewDate(staticDates[j])
			if err != nil {
				panic(err)
			}
			points[j] = predict.PricePoint{
				Date:  date,
				Price: decimal.RequireFromString(p),
			}
		}

		entries[i] = newEntry(predict.Forecast{
			Crop:     row.crop,
			Unit:     row.unit,
			Category: row.category,
			Points:   points,
		})
		entries[i].Recommendation = row.recommendation
	}

	return entries
}
