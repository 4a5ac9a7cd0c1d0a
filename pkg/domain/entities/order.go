package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderID represents a unique order identifier
type OrderID string

// PLU represents a menu item's price-lookup code as sold at the register
type PLU string

// OrderLine represents one menu item sold within an order
type OrderLine struct {
	OrderID  OrderID
	StoreID  StoreID
	PLU      PLU
	Quantity decimal.Decimal
	Date     time.Time // calendar day of the order, normalized to UTC midnight
}

// NewOrderLine creates a validated OrderLine. The order date is normalized to
// its calendar day.
func NewOrderLine(orderID OrderID, storeID StoreID, plu PLU, quantity decimal.Decimal, date time.Time) (*OrderLine, error) {
	if string(orderID) == "" {
		return nil, fmt.Errorf("order id cannot be empty")
	}
	if string(storeID) == "" {
		return nil, fmt.Errorf("store id cannot be empty")
	}
	if string(plu) == "" {
		return nil, fmt.Errorf("plu cannot be empty")
	}
	if date.IsZero() {
		return nil, fmt.Errorf("order date cannot be zero")
	}
	return &OrderLine{
		OrderID:  orderID,
		StoreID:  storeID,
		PLU:      plu,
		Quantity: quantity,
		Date:     Day(date),
	}, nil
}

// Day normalizes a timestamp to its calendar day at UTC midnight. All date
// keys in the pipeline go through this so map lookups and comparisons agree.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
