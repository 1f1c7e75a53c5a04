package quatjulia

import (
	"context"
	"errors"
	"testing"
)

func TestEstimateStretchBounds(t *testing.T) {
	lo, hi, err := EstimateStretch(context.Background(), smallParams(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if lo < 0 || hi > 1 || !(lo < hi) {
		t.Fatalf("stretch [%g, %g]", lo, hi)
	}
	p := smallParams()
	p.MinStretchDistance, p.MaxStretchDistance = lo, hi
	if err := p.Validate(); err != nil {
		t.Fatalf("estimated bounds do not validate: %v", err)
	}
}

func TestEstimateStretchErrors(t *testing.T) {
	if _, _, err := EstimateStretch(context.Background(), smallParams(), 0); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("zero stride: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := EstimateStretch(ctx, smallParams(), 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled: %v", err)
	}
}
