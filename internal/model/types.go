// Package model defines shared data structures.
package model

// Hand identifies the hand conventionally used for a key.
type Hand string

// Hand values. Keys reachable by either hand (space, modifiers) are HandBoth.
const (
	HandLeft  Hand = "left"
	HandRight Hand = "right"
	HandBoth  Hand = "both"
)

// Finger identifies the finger conventionally assigned to a key on a
// QWERTY layout. An empty Finger means the key is not mapped.
type Finger string

// Finger values.
const (
	FingerLeftPinky   Finger = "left-pinky"
	FingerLeftRing    Finger = "left-ring"
	FingerLeftMiddle  Finger = "left-middle"
	FingerLeftIndex   Finger = "left-index"
	FingerRightIndex  Finger = "right-index"
	FingerRightMiddle Finger = "right-middle"
	FingerRightRing   Finger = "right-ring"
	FingerRightPinky  Finger = "right-pinky"
	FingerThumb       Finger = "thumb"
)

// KeystrokeEvent is one completed press/release pair. Events are immutable
// once recorded. DwellMs is never negative: a release without a matching
// open press is discarded before an event is created.
type KeystrokeEvent struct {
	Key        string // typed glyph
	Code       string // physical key code ("KeyA", "Space", ...)
	PressedAt  int64  // monotonic milliseconds
	ReleasedAt int64
	DwellMs    int64
	FlightMs   *int64 // press minus previous release; nil for the first event
	Correct    bool
	Expected   string // expected character at time of typing; "" if unknown
	Position   int    // index into the expected text
	Finger     Finger // "" if the key is unmapped
	Hand       Hand   // "" if the key is unmapped
}

// DigraphTiming is the aggregated transition timing for a two-key sequence.
type DigraphTiming struct {
	Digraph string
	MeanMs  float64
	Count   int
}

// PeakWindow is the best-performing contiguous stretch of a session.
type PeakWindow struct {
	StartPosition int
	EndPosition   int
	WPM           float64
}

// WordTiming records how long one expected word took to type.
type WordTiming struct {
	Word       string
	DurationMs int64
}

// ErrorKind classifies an incorrect keystroke.
type ErrorKind string

// ErrorKind values.
const (
	ErrorDoublet      ErrorKind = "doublet"      // typed key equals the expected key
	ErrorSubstitution ErrorKind = "substitution" // typed key differs from the expected key
	ErrorOther        ErrorKind = "other"        // no expected key was recorded
)

// AntiCheatResult is the outcome of the synthetic-input heuristics.
// It is produced once per session and never mutated.
type AntiCheatResult struct {
	Suspicious             bool
	Flags                  []string
	ValidationScore        int
	MinIntervalMs          *float64 // nil when no positive inter-press interval exists
	IntervalVarianceMs2    *float64
	SyntheticInputDetected bool
}

// AnalyticsReport is the complete derived output for one closed session.
// Pointer-typed numeric fields are nil when the sample is too small to
// compute them; consumers must treat every field as optional.
type AnalyticsReport struct {
	WPM         *float64
	RawWPM      *float64
	AdjustedWPM *float64
	BurstWPM    *float64
	Accuracy    *float64 // percent

	Consistency  *float64 // 0-100
	TypingRhythm *float64 // 0-100

	AvgDwellMs     *float64
	AvgFlightMs    *float64
	StdDevFlightMs *float64

	FastestDigraph *DigraphTiming
	SlowestDigraph *DigraphTiming
	TopDigraphs    []DigraphTiming
	BottomDigraphs []DigraphTiming

	FingerUsage map[Finger]int
	HandBalance *float64 // left share of handed keystrokes, 0-1
	KeyHeatmap  map[string]int

	TotalErrors     int
	ErrorTypes      map[ErrorKind]int
	ErrorKeys       []string
	ErrorBurstCount *int
	SlowestWords    []WordTiming

	WPMByPosition    []float64 // nil or exactly 10 buckets
	RollingAccuracy  []float64 // nil or exactly 5 buckets
	PeakWindow       *PeakWindow
	FatigueIndicator *int // percent speed change, first half to second half

	AntiCheat AntiCheatResult
}
