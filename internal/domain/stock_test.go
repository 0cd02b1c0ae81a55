package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewStockUsage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		count int
		used  int
		want  StockUsage
	}{
		{"unused", 5, 0, StockUsage{Count: 5, Used: 0, Available: 5}},
		{"partial", 5, 3, StockUsage{Count: 5, Used: 3, Available: 2}},
		{"exhausted", 5, 5, StockUsage{Count: 5, Used: 5, Available: 0}},
		{"overcommitted clamps at zero", 3, 8, StockUsage{Count: 3, Used: 8, Available: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewStockUsage(tc.count, tc.used); got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestCapacityError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("allocate: %w", &CapacityError{Available: 2})
	ce, ok := AsCapacityError(err)
	if !ok {
		t.Fatalf("expected CapacityError through wrapping, got %v", err)
	}
	if ce.Available != 2 {
		t.Fatalf("expected available 2, got %d", ce.Available)
	}

	if _, ok := AsCapacityError(errors.New("plain")); ok {
		t.Fatal("expected no match for unrelated error")
	}
}

func TestZoneAllocationUsageRemaining(t *testing.T) {
	t.Parallel()

	u := ZoneAllocationUsage{
		Allocation: ZoneAllocation{Quantity: 4},
		Placed:     3,
	}
	if got := u.Remaining(); got != 1 {
		t.Fatalf("expected remaining 1, got %d", got)
	}
}
