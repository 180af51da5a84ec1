package core

import (
	"slices"
	"strings"
)

// PriorityName is the source that DisplayOrder always places first.
const PriorityName = "error.log"

// CompareNames orders two source names for display: PriorityName sorts before
// everything else, remaining names compare byte-wise.
func CompareNames(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == PriorityName:
		return -1
	case b == PriorityName:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// DisplayOrder returns names sorted for display. The input is not modified.
func DisplayOrder(names []string) []string {
	out := slices.Clone(names)
	slices.SortFunc(out, CompareNames)
	return out
}
