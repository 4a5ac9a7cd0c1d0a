package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/demandcast/demandcast/pkg/domain/entities"
)

// demandKey groups resolved consumption by (store, calendar day)
type demandKey struct {
	storeID entities.StoreID
	date    time.Time
}

// Aggregate sums resolved consumption by (store, calendar day). The sum is
// commutative and associative, so the result is identical for any permutation
// of the input; output is sorted by (store, date).
func Aggregate(rows []*entities.ResolvedConsumption) []*entities.DailyDemand {
	totals := make(map[demandKey]decimal.Decimal)

	for _, row := range rows {
		key := demandKey{storeID: row.StoreID, date: entities.Day(row.Date)}
		totals[key] = totals[key].Add(row.Quantity)
	}

	demand := make([]*entities.DailyDemand, 0, len(totals))
	for key, total := range totals {
		demand = append(demand, &entities.DailyDemand{
			StoreID: key.storeID,
			Date:    key.date,
			Total:   total,
		})
	}

	sort.Slice(demand, func(i, j int) bool {
		if demand[i].StoreID != demand[j].StoreID {
			return demand[i].StoreID < demand[j].StoreID
		}
		return demand[i].Date.Before(demand[j].Date)
	})

	return demand
}

// ForStore filters aggregated demand down to one store, preserving order
func ForStore(demand []*entities.DailyDemand, storeID entities.StoreID) []*entities.DailyDemand {
	var out []*entities.DailyDemand
	for _, d := range demand {
		if d.StoreID == storeID {
			out = append(out, d)
		}
	}
	return out
}
