package compositor

import "strings"

// Status is the bitmask returned to the host after drawing a frame.
type Status uint32

const (
	// StatusDraw asks the host to draw another frame.
	StatusDraw Status = 1 << iota

	// StatusInvoke asks the host to invoke the compositor again even if
	// nothing on its side changed.
	StatusInvoke
)

// StatusDone is the empty status: nothing more to do.
const StatusDone Status = 0

// Has reports whether all bits of flag are set in s.
func (s Status) Has(flag Status) bool {
	return s&flag == flag
}

// String returns the set flags joined by "|", or "Done".
func (s Status) String() string {
	if s == StatusDone {
		return "Done"
	}
	var parts []string
	if s.Has(StatusDraw) {
		parts = append(parts, "Draw")
	}
	if s.Has(StatusInvoke) {
		parts = append(parts, "Invoke")
	}
	if rest := s &^ (StatusDraw | StatusInvoke); rest != 0 {
		parts = append(parts, "Unknown")
	}
	return strings.Join(parts, "|")
}
