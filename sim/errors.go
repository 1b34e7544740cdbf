package sim

import "errors"

// Error kinds returned by the engine. Operations wrap one of these with
// context; classify with errors.Is or Kind.
var (
	// ErrConfiguration rejects a Config before any state exists.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrCapacity means the request cannot fit even if every frame is evicted.
	ErrCapacity = errors.New("request exceeds memory capacity")
	// ErrInvalidSize rejects allocations of fewer than one byte.
	ErrInvalidSize = errors.New("invalid allocation size")
	// ErrInvalidAddress means the address maps outside the frame table.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrNotAllocated means a deallocation targeted a free frame.
	ErrNotAllocated = errors.New("no allocated memory at address")
	// ErrExhausted signals a replacement policy asked to evict more frames
	// than it tracks. It indicates broken engine bookkeeping.
	ErrExhausted = errors.New("no pages to replace")
)

var errorKinds = []struct {
	err  error
	kind string
}{
	{ErrConfiguration, "configuration"},
	{ErrCapacity, "capacity"},
	{ErrInvalidSize, "invalid_size"},
	{ErrInvalidAddress, "invalid_address"},
	{ErrNotAllocated, "not_allocated"},
	{ErrExhausted, "exhausted"},
}

// Kind returns a short machine-readable name for the engine error wrapped in err,
// or "internal" when err carries none of them. Kind(nil) is "".
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "internal"
}
