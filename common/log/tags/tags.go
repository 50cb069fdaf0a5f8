// Package tags holds the identifiers attached to scheduler log lines.
package tags

import (
	log "github.com/sirupsen/logrus"
)

type LogTags struct {
	RunID     string
	ProjectID string
	ComputeID string
	NodeID    string
	NodeName  string
}

// Fields returns the non-empty tags as logrus fields.
func (t LogTags) Fields() log.Fields {
	f := log.Fields{}
	add := func(k, v string) {
		if v != "" {
			f[k] = v
		}
	}
	add("runID", t.RunID)
	add("projectID", t.ProjectID)
	add("computeID", t.ComputeID)
	add("nodeID", t.NodeID)
	add("nodeName", t.NodeName)
	return f
}

// WithCompute returns a copy scoped to a compute host.
func (t LogTags) WithCompute(computeID string) LogTags {
	t.ComputeID = computeID
	t.NodeID, t.NodeName = "", ""
	return t
}

// WithNode returns a copy scoped to a node.
func (t LogTags) WithNode(nodeID, nodeName string) LogTags {
	t.NodeID, t.NodeName = nodeID, nodeName
	return t
}
