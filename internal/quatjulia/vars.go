package quatjulia

import "time"

var (
	Debug   = false // set to true for verbose debug output (DebugLog)
	RAW     = false // set to true to also dump the raw image next to the picture
	Stats   = false // set to true to log march outcome counters after each run
	Workers = 0     // tile workers; 0 means runtime.NumCPU()
)

// Timeout bounds a single render; 0 means no limit.
var Timeout time.Duration
