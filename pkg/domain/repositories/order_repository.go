package repositories

import (
	"time"

	"github.com/demandcast/demandcast/pkg/domain/entities"
)

// OrderRepository provides access to order-line fact data
type OrderRepository interface {
	// GetOrderLines returns every loaded order line.
	GetOrderLines() ([]*entities.OrderLine, error)

	// GetOrderLinesInRange returns order lines whose day falls inside the range.
	GetOrderLinesInRange(r entities.DateRange) ([]*entities.OrderLine, error)

	// DateBounds returns the earliest and latest order days present.
	// ok is false when no order lines are loaded.
	DateBounds() (min, max time.Time, ok bool)

	LoadOrderLines(lines []*entities.OrderLine) error
}
