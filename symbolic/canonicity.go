package symbolic

import (
	"errors"
	"fmt"
	"strings"
)

// Canonicity controls how eagerly a Set merges the vectors inserted into it.
type Canonicity int

const (
	// None inserts vectors as they come.
	None Canonicity = iota
	// Semi merges an inserted vector with every member it is mergeable with.
	Semi
	// Full additionally moves sharing parts into existing members and splits
	// the inserted vector so that members never overlap.
	Full
)

var ErrUnknownCanonicity = errors.New("unknown canonicity level")

func (c Canonicity) String() string {
	switch c {
	case None:
		return "none"
	case Semi:
		return "semi"
	case Full:
		return "full"
	}
	return fmt.Sprintf("Canonicity(%d)", int(c))
}

func ParseCanonicity(s string) (Canonicity, error) {
	switch strings.ToLower(s) {
	case "none", "0":
		return None, nil
	case "semi", "1":
		return Semi, nil
	case "full", "2":
		return Full, nil
	}
	return None, fmt.Errorf("%q: %w", s, ErrUnknownCanonicity)
}
