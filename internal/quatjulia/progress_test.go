package quatjulia

import (
	"context"
	"testing"
)

type progressLog []float64

func (l *progressLog) record(v float64) { *l = append(*l, v) }

func TestProgressMonotonicAndComplete(t *testing.T) {
	var got progressLog
	pr := newProgress(context.Background(), got.record, 10, 50, 4)
	for i := 0; i < 4; i++ {
		pr.tileDone()
	}
	pr.finish(false)

	if len(got) < 2 || got[0] != 10 || got[len(got)-1] != 60 {
		t.Fatalf("progress = %v", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] || got[i] > 60 {
			t.Fatalf("not monotonic within range: %v", got)
		}
	}
}

func TestProgressCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var got progressLog
	pr := newProgress(ctx, got.record, 25, 50, 3)
	pr.tileDone()
	pr.finish(true)
	if len(got) != 1 || got[0] != 25 {
		t.Fatalf("cancelled progress = %v, want only the start", got)
	}
}

func TestProgressNilSink(t *testing.T) {
	pr := newProgress(context.Background(), nil, 0, 100, 1)
	pr.tileDone()
	pr.finish(false)
}

func TestProgressFractionalSumNeverOvershoots(t *testing.T) {
	// 0.1*3/3 rounds above 0.1 in float64.
	var got progressLog
	pr := newProgress(context.Background(), got.record, 0, 0.1, 3)
	for i := 0; i < 3; i++ {
		pr.tileDone()
	}
	pr.finish(false)

	if len(got) != 4 || got[len(got)-1] != 0.1 {
		t.Fatalf("progress = %v", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] || got[i] > 0.1 {
			t.Fatalf("progress went backwards or overshot: %v", got)
		}
	}
}
