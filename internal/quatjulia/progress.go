package quatjulia

import "context"

// ProgressFunc receives progress in percent. It is always called from a
// single goroutine and never with a smaller value than the previous call.
type ProgressFunc func(percent float64)

// progress drains tile completions into fn. Workers only send on a channel;
// they never touch the accumulator.
type progress struct {
	ctx        context.Context
	fn         ProgressFunc
	start, sum float64
	total      int
	ch         chan struct{}
	done       chan struct{}
	completed  bool // start+sum already emitted by loop
}

// newProgress emits start immediately and begins draining.
func newProgress(ctx context.Context, fn ProgressFunc, start, sum float64, total int) *progress {
	pr := &progress{
		ctx:   ctx,
		fn:    fn,
		start: start,
		sum:   sum,
		total: total,
		ch:    make(chan struct{}, total),
		done:  make(chan struct{}),
	}
	pr.emit(start)
	go pr.loop()
	return pr
}

func (pr *progress) emit(v float64) {
	if pr.fn != nil {
		pr.fn(v)
	}
}

func (pr *progress) loop() {
	defer close(pr.done)
	finished := 0
	for range pr.ch {
		finished++
		if pr.ctx.Err() != nil {
			continue
		}
		if finished >= pr.total {
			pr.emit(pr.start + pr.sum)
			pr.completed = true
			continue
		}
		v := pr.start + pr.sum*float64(finished)/float64(pr.total)
		if v > pr.start+pr.sum {
			v = pr.start + pr.sum
		}
		pr.emit(v)
	}
}

// tileDone records one finished tile.
func (pr *progress) tileDone() { pr.ch <- struct{}{} }

// finish stops the reporter and, unless the render was cancelled or the
// last tile already reported it, emits start+sum.
func (pr *progress) finish(cancelled bool) {
	close(pr.ch)
	<-pr.done
	if !cancelled && !pr.completed && pr.ctx.Err() == nil {
		pr.emit(pr.start + pr.sum)
	}
}
