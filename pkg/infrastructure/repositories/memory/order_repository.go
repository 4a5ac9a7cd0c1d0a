package memory

import (
	"time"

	"github.com/demandcast/demandcast/pkg/domain/entities"
	"github.com/demandcast/demandcast/pkg/domain/repositories"
)

// OrderRepository provides an in-memory order-line store with date bounds
// tracked at load time
type OrderRepository struct {
	lines   []entities.OrderLine
	minDate time.Time
	maxDate time.Time
}

// NewOrderRepository creates an in-memory order repository
func NewOrderRepository(expectedLines int) *OrderRepository {
	return &OrderRepository{
		lines: make([]entities.OrderLine, 0, expectedLines),
	}
}

// Verify interface compliance
var _ repositories.OrderRepository = (*OrderRepository)(nil)

// AddOrderLine adds an order line to the repository
func (r *OrderRepository) AddOrderLine(line entities.OrderLine) {
	line.Date = entities.Day(line.Date)
	if len(r.lines) == 0 || line.Date.Before(r.minDate) {
		r.minDate = line.Date
	}
	if len(r.lines) == 0 || line.Date.After(r.maxDate) {
		r.maxDate = line.Date
	}
	r.lines = append(r.lines, line)
}

// GetOrderLines returns every loaded order line
func (r *OrderRepository) GetOrderLines() ([]*entities.OrderLine, error) {
	lines := make([]*entities.OrderLine, 0, len(r.lines))
	for i := range r.lines {
		lines = append(lines, &r.lines[i])
	}
	return lines, nil
}

// GetOrderLinesInRange returns order lines whose day falls inside the range
func (r *OrderRepository) GetOrderLinesInRange(rng entities.DateRange) ([]*entities.OrderLine, error) {
	var lines []*entities.OrderLine
	for i := range r.lines {
		if rng.Contains(r.lines[i].Date) {
			lines = append(lines, &r.lines[i])
		}
	}
	return lines, nil
}

// DateBounds returns the earliest and latest order days present
func (r *OrderRepository) DateBounds() (min, max time.Time, ok bool) {
	if len(r.lines) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return r.minDate, r.maxDate, true
}

// LoadOrderLines loads order lines into the repository
func (r *OrderRepository) LoadOrderLines(lines []*entities.OrderLine) error {
	for _, line := range lines {
		r.AddOrderLine(*line)
	}
	return nil
}
