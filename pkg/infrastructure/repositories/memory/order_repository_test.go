package memory

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/demandcast/demandcast/pkg/domain/entities"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOrderRepository_DateBounds(t *testing.T) {
	repo := NewOrderRepository(10)

	if _, _, ok := repo.DateBounds(); ok {
		t.Error("Expected no bounds on empty repository")
	}

	repo.AddOrderLine(entities.OrderLine{OrderID: "O1", StoreID: "S1", PLU: "P1", Quantity: decimal.NewFromInt(1), Date: day(2023, 3, 5)})
	repo.AddOrderLine(entities.OrderLine{OrderID: "O2", StoreID: "S1", PLU: "P1", Quantity: decimal.NewFromInt(2), Date: day(2023, 3, 1)})
	repo.AddOrderLine(entities.OrderLine{OrderID: "O3", StoreID: "S2", PLU: "P2", Quantity: decimal.NewFromInt(1), Date: day(2023, 3, 9)})

	min, max, ok := repo.DateBounds()
	if !ok {
		t.Fatal("Expected bounds after loading lines")
	}
	if !min.Equal(day(2023, 3, 1)) || !max.Equal(day(2023, 3, 9)) {
		t.Errorf("Expected bounds [2023-03-01, 2023-03-09], got [%s, %s]",
			min.Format("2006-01-02"), max.Format("2006-01-02"))
	}
}

func TestOrderRepository_RangeFilter(t *testing.T) {
	repo := NewOrderRepository(10)
	for d := 1; d <= 10; d++ {
		repo.AddOrderLine(entities.OrderLine{
			OrderID:  entities.OrderID("O" + string(rune('0'+d%10))),
			StoreID:  "S1",
			PLU:      "P1",
			Quantity: decimal.NewFromInt(1),
			Date:     day(2023, 3, d),
		})
	}

	rng, err := entities.NewDateRange(day(2023, 3, 3), day(2023, 3, 6))
	if err != nil {
		t.Fatalf("NewDateRange failed: %v", err)
	}
	lines, err := repo.GetOrderLinesInRange(rng)
	if err != nil {
		t.Fatalf("GetOrderLinesInRange failed: %v", err)
	}
	if len(lines) != 4 {
		t.Errorf("Expected 4 lines in range, got %d", len(lines))
	}
	for _, line := range lines {
		if !rng.Contains(line.Date) {
			t.Errorf("Line dated %s is outside the requested range", line.Date.Format("2006-01-02"))
		}
	}
}

func TestOrderRepository_NormalizesIntradayTimestamps(t *testing.T) {
	repo := NewOrderRepository(1)
	repo.AddOrderLine(entities.OrderLine{
		OrderID:  "O1",
		StoreID:  "S1",
		PLU:      "P1",
		Quantity: decimal.NewFromInt(1),
		Date:     time.Date(2023, 3, 5, 18, 45, 0, 0, time.UTC),
	})

	min, max, _ := repo.DateBounds()
	if !min.Equal(day(2023, 3, 5)) || !max.Equal(day(2023, 3, 5)) {
		t.Errorf("Expected timestamps normalized to calendar day, got [%s, %s]", min, max)
	}
}
