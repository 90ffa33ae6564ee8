package names

import (
	"bytes"
	"errors"
	"sort"
)

var ErrNoNames = errors.New("no names found")

// Shape tells which layout of the names key produced a list.
type Shape int

const (
	ShapeNone Shape = iota
	ShapeInline
	ShapeBlock
)

func (s Shape) String() string {
	switch s {
	case ShapeInline:
		return "inline"
	case ShapeBlock:
		return "block"
	default:
		return "none"
	}
}

// List is a dense, ordered list of class names. Position i is class id i.
type List []string

// Bytes renders the list as the .names text format: one name per line with a trailing newline.
func (l List) Bytes() []byte {
	var buf bytes.Buffer
	for _, n := range l {
		buf.WriteString(n)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Table maps class index to name. Slots may be missing or empty until Compact.
type Table struct {
	slots map[int]string
	next  int
}

func NewTable() *Table {
	return &Table{slots: map[int]string{}}
}

// Set assigns name to idx. Negative indices are ignored.
func (t *Table) Set(idx int, name string) {
	if idx < 0 {
		return
	}
	t.slots[idx] = name
	if idx+1 > t.next {
		t.next = idx + 1
	}
}

// Append places name right after the highest index seen so far.
func (t *Table) Append(name string) {
	t.Set(t.next, name)
}

func (t *Table) Len() int {
	return len(t.slots)
}

// Empty reports whether the table holds no non-empty name.
func (t *Table) Empty() bool {
	for _, v := range t.slots {
		if v != "" {
			return false
		}
	}
	return true
}

// Compact returns the non-empty names in ascending index order.
func (t *Table) Compact() List {
	keys := make([]int, 0, len(t.slots))
	for k, v := range t.slots {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Ints(keys)
	out := make(List, 0, len(keys))
	for _, k := range keys {
		out = append(out, t.slots[k])
	}
	return out
}
