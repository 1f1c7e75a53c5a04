package quatjulia

// Defaults applied by loadConfig and DefaultParams.
const (
	DefaultWidth          = 640
	DefaultHeight         = 480
	DefaultIterations     = 12
	DefaultBailout        = 4.0
	DefaultMaxRaySteps    = 200
	DefaultMinRayDistance = 0.001
	DefaultStepDivisor    = 1.0
	DefaultNormalDistance = 0.01
	DefaultPaletteSize    = 256
	DefaultTileWidth      = 40 // px per tile hint
	DefaultIFSScale       = 2.0
	DefaultAmbient        = 0.3
	DefaultOut            = "julia.png"
	DefaultProbeStride    = 8 // every Nth pixel in each axis when estimating stretch
	MinTileWidth          = 3
)
