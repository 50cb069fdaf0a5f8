// Package domain holds the snapshot types the launcher schedules: nodes of a
// project, the compute hosts running them, and the per-host start queues.
package domain

import (
	"fmt"
	"strings"
)

type NodeType string

// Node types known to the controller.
const (
	NodeTypeQemu           NodeType = "qemu"
	NodeTypeVirtualBox     NodeType = "virtualbox"
	NodeTypeVMware         NodeType = "vmware"
	NodeTypeDocker         NodeType = "docker"
	NodeTypeDynamips       NodeType = "dynamips"
	NodeTypeIOU            NodeType = "iou"
	NodeTypeVPCS           NodeType = "vpcs"
	NodeTypeTraceNG        NodeType = "traceng"
	NodeTypeCloud          NodeType = "cloud"
	NodeTypeNAT            NodeType = "nat"
	NodeTypeEthernetSwitch NodeType = "ethernet_switch"
	NodeTypeEthernetHub    NodeType = "ethernet_hub"
)

type NodeStatus string

const (
	NodeStarted   NodeStatus = "started"
	NodeStopped   NodeStatus = "stopped"
	NodeSuspended NodeStatus = "suspended"
)

// Node is a snapshot of one project node, taken once when a run starts.
type Node struct {
	Id        string
	Name      string
	Type      NodeType
	Status    NodeStatus
	ComputeId string
	ProjectId string
}

func (n Node) IsStarted() bool {
	return n.Status == NodeStarted
}

func (n Node) String() string {
	return fmt.Sprintf("%s(%s, %s@%s)", n.Name, n.Id, n.Type, n.ComputeId)
}

// ComputeHost is a backend host as last observed; CPUUsagePercent is refreshed on every probe.
type ComputeHost struct {
	Id              string
	Name            string
	Host            string
	Connected       bool
	CPUUsagePercent float64
}

// TypeSet is a set of node types, used to classify heavy-virtualization nodes.
type TypeSet map[NodeType]bool

// DefaultHeavyTypes are the full hardware emulation and hypervisor backed types.
func DefaultHeavyTypes() TypeSet {
	return NewTypeSet(NodeTypeQemu, NodeTypeVirtualBox, NodeTypeVMware)
}

func NewTypeSet(types ...NodeType) TypeSet {
	s := TypeSet{}
	for _, t := range types {
		s[NodeType(strings.ToLower(string(t)))] = true
	}
	return s
}

func (s TypeSet) Contains(t NodeType) bool {
	return s[NodeType(strings.ToLower(string(t)))]
}
