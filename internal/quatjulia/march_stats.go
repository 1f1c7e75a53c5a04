package quatjulia

import "fmt"

// MarchStats counts ray outcomes over a render. Each tile keeps its own
// copy; they are summed after the join.
type MarchStats struct {
	Hits              int64
	Diverged          int64
	Exhausted         int64
	Rescues           int64 // NaN/Inf distance estimates replaced by 0
	DegenerateNormals int64 // hits whose gradient had zero length
}

func (s *MarchStats) record(r MarchResult) {
	switch r.State {
	case MarchHit:
		s.Hits++
	case MarchDiverged:
		s.Diverged++
	default:
		s.Exhausted++
	}
	s.Rescues += int64(r.Rescues)
}

func (s *MarchStats) add(o MarchStats) {
	s.Hits += o.Hits
	s.Diverged += o.Diverged
	s.Exhausted += o.Exhausted
	s.Rescues += o.Rescues
	s.DegenerateNormals += o.DegenerateNormals
}

// Rays is the number of rays recorded.
func (s MarchStats) Rays() int64 { return s.Hits + s.Diverged + s.Exhausted }

func (s MarchStats) String() string {
	return fmt.Sprintf("rays=%d hit=%d diverged=%d exhausted=%d rescues=%d degenerateNormals=%d",
		s.Rays(), s.Hits, s.Diverged, s.Exhausted, s.Rescues, s.DegenerateNormals)
}
