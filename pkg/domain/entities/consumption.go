package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsumptionPath identifies which join path produced a resolved row
type ConsumptionPath int

const (
	DirectPath ConsumptionPath = iota
	SubRecipePath
)

// String method for ConsumptionPath enum
func (p ConsumptionPath) String() string {
	switch p {
	case DirectPath:
		return "Direct"
	case SubRecipePath:
		return "SubRecipe"
	default:
		return "Unknown"
	}
}

// ResolvedConsumption is the derived per-order-line ingredient consumption.
// It always traces to exactly one order line and one ingredient.
type ResolvedConsumption struct {
	OrderID      OrderID
	StoreID      StoreID
	Date         time.Time
	IngredientID IngredientID
	Quantity     decimal.Decimal
	Path         ConsumptionPath
}

// DailyDemand is total resolved consumption for one store on one calendar day
type DailyDemand struct {
	StoreID StoreID
	Date    time.Time
	Total   decimal.Decimal
}
