package tickcounter

// Source is a hardware tick counter. Exactly one implementation is compiled
// into a binary, chosen by the target architecture.
type Source interface {
	// Start reads the counter at the beginning of a timed region.
	Start() uint64
	// Stop reads the counter at the end of a timed region.
	Stop() uint64
	// Frequency returns the counter rate in Hz and its provenance.
	Frequency() (uint64, FrequencyBase)
}

var _ Source = source

// Default returns the counter for the running architecture.
func Default() Source {
	return source
}

// TickCounter holds a counter value captured by Capture. It is a plain
// value owned by whoever captured it.
type TickCounter struct {
	start uint64
}

// Capture reads the counter and returns a TickCounter anchored at it.
func Capture() TickCounter {
	return TickCounter{start: source.Start()}
}

// Start returns the captured counter value.
func (c TickCounter) Start() uint64 {
	return c.start
}

// Elapsed returns the ticks passed since Capture. It may be called any
// number of times.
//
// The subtraction wraps. If the two reads happen on cores whose counters
// are not synchronized, the result is meaningless; this is not detected.
func (c TickCounter) Elapsed() uint64 {
	return source.Stop() - c.start
}
