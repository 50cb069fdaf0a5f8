package controller

import (
	"github.com/netlab/startnodes/launcher/domain"
)

// Version is the controller's /v2/version record.
type Version struct {
	Version string `json:"version"`
	Local   bool   `json:"local"`
}

// nodeRecord is a node as served by /v2/projects/{project_id}/nodes.
type nodeRecord struct {
	NodeId      string `json:"node_id"`
	Name        string `json:"name"`
	NodeType    string `json:"node_type"`
	Status      string `json:"status"`
	ComputeId   string `json:"compute_id"`
	ProjectId   string `json:"project_id"`
	Console     *int   `json:"console"`
	ConsoleType string `json:"console_type"`
	ConsoleHost string `json:"console_host"`
}

func (r nodeRecord) toDomain() domain.Node {
	return domain.Node{
		Id:        r.NodeId,
		Name:      r.Name,
		Type:      domain.NodeType(r.NodeType),
		Status:    domain.NodeStatus(r.Status),
		ComputeId: r.ComputeId,
		ProjectId: r.ProjectId,
	}
}

// computeRecord is a compute as served by /v2/computes/{compute_id}.
type computeRecord struct {
	ComputeId          string  `json:"compute_id"`
	Host               string  `json:"host"`
	Name               string  `json:"name"`
	Connected          bool    `json:"connected"`
	CPUUsagePercent    float64 `json:"cpu_usage_percent"`
	MemoryUsagePercent float64 `json:"memory_usage_percent"`
}

func (r computeRecord) toDomain() domain.ComputeHost {
	return domain.ComputeHost{
		Id:              r.ComputeId,
		Name:            r.Name,
		Host:            r.Host,
		Connected:       r.Connected,
		CPUUsagePercent: r.CPUUsagePercent,
	}
}

// errorRecord is the body of a failed request.
type errorRecord struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}
