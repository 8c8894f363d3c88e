package maps

import (
	"context"
	"os"
	"testing"
)

func TestMetersToMiles(t *testing.T) {
	cases := []struct {
		meters int
		want   float64
	}{
		{0, 0},
		{1609, 1},
		{48280, 30},
		{72420, 45},
		{100, 0.06},
	}
	for _, tc := range cases {
		if got := metersToMiles(tc.meters); got != tc.want {
			t.Errorf("metersToMiles(%d) = %v, want %v", tc.meters, got, tc.want)
		}
	}
}

func TestNewDistanceService_RequiresOrigin(t *testing.T) {
	if _, err := NewDistanceService("key", ""); err == nil {
		t.Fatal("expected error for empty origin")
	}
}

func TestDrivingMiles_Live(t *testing.T) {
	key := os.Getenv("HIBACHI_MAPS_KEY")
	if key == "" {
		t.Skip("HIBACHI_MAPS_KEY not set; skipping live maps test")
	}
	svc, err := NewDistanceService(key, "Sacramento, CA")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	miles, err := svc.DrivingMiles(context.Background(), "Davis, CA")
	if err != nil {
		t.Fatalf("DrivingMiles: %v", err)
	}
	if miles < 5 || miles > 40 {
		t.Errorf("unexpected distance %.2f", miles)
	}
}
