package tree

import "fmt"

type ChangeType int

const (
	Added ChangeType = iota
	Removed
	Modified
)

func (c ChangeType) String() string {
	switch c {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Modified:
		return "modified"
	}
	return fmt.Sprintf("change(%d)", int(c))
}

// Change describes how one name differs between two trees. Old is zero for
// Added, New is zero for Removed.
type Change struct {
	Type ChangeType
	Name string
	Old  Record
	New  Record
}

func (c Change) String() string {
	return fmt.Sprintf("%s\t%s", c.Type, c.Name)
}

// Diff compares two trees in a single merge walk over their names and
// returns the changes in name order. A nil tree is treated as empty.
func Diff(from, to *Tree) []Change {
	a, b := from.entries(), to.entries()

	var changes []Change
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j == len(b) || (i < len(a) && a[i].Key < b[j].Key):
			changes = append(changes, Change{Type: Removed, Name: a[i].Key, Old: a[i].Value})
			i++
		case i == len(a) || b[j].Key < a[i].Key:
			changes = append(changes, Change{Type: Added, Name: b[j].Key, New: b[j].Value})
			j++
		default:
			if a[i].Value != b[j].Value {
				changes = append(changes, Change{Type: Modified, Name: a[i].Key, Old: a[i].Value, New: b[j].Value})
			}
			i++
			j++
		}
	}
	return changes
}
