package domain

import (
	"strings"
)

// Selection tokens name items of a project as "<kind>/<id>"; only nodes are scheduled.
const NodeSelectionPrefix = "nodes/"

// ParseSelection extracts the node ids from selection tokens, ignoring other
// kinds of items. explicit is false when no tokens were given at all, which
// means every node of the project.
func ParseSelection(items []string) (ids []string, explicit bool) {
	if len(items) == 0 {
		return nil, false
	}
	seen := map[string]bool{}
	for _, item := range items {
		if !strings.HasPrefix(item, NodeSelectionPrefix) {
			continue
		}
		id := item[len(NodeSelectionPrefix):]
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, true
}
