package petri

import (
	"fmt"
	"strconv"
	"strings"
)

// Marking holds the number of tokens of every place of a net, indexed like Net.Places.
type Marking []int

// Capacity is the per place token bound used when firing or reverting transitions.
type Capacity = Marking

// Zero returns the empty marking over n places.
func Zero(n int) Marking {
	return make(Marking, n)
}

// Unit returns the marking over n places with v tokens in place p and none elsewhere.
func Unit(n, p, v int) Marking {
	m := make(Marking, n)
	m[p] = v
	return m
}

func (m Marking) Clone() Marking {
	c := make(Marking, len(m))
	copy(c, m)
	return c
}

// Leq reports whether m is pointwise smaller than or equal to o.
func (m Marking) Leq(o Marking) bool {
	for i := range m {
		if m[i] > o[i] {
			return false
		}
	}
	return true
}

// Geq reports whether m is pointwise greater than or equal to o.
func (m Marking) Geq(o Marking) bool {
	return o.Leq(m)
}

// Less reports whether m is pointwise smaller than or equal to o and differs from it.
func (m Marking) Less(o Marking) bool {
	return m.Leq(o) && !m.Equal(o)
}

func (m Marking) Equal(o Marking) bool {
	if len(m) != len(o) {
		return false
	}
	for i := range m {
		if m[i] != o[i] {
			return false
		}
	}
	return true
}

// Compare is a total order on markings, lexicographic by place index. It
// refines Leq and only serves deterministic iteration.
func (m Marking) Compare(o Marking) int {
	for i := range m {
		switch {
		case m[i] < o[i]:
			return -1
		case m[i] > o[i]:
			return 1
		}
	}
	return len(m) - len(o)
}

// Key is a compact string usable as a map key.
func (m Marking) Key() string {
	var sb strings.Builder
	for i, v := range m {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}

func (m Marking) String() string {
	return fmt.Sprint([]int(m))
}

// Max is the componentwise maximum of a and b.
func Max(a, b Marking) Marking {
	r := make(Marking, len(a))
	for i := range a {
		r[i] = max(a[i], b[i])
	}
	return r
}
