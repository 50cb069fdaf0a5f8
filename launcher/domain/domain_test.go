package domain

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestParseSelection(t *testing.T) {
	ids, explicit := ParseSelection(nil)
	assert.False(t, explicit)
	assert.Nil(t, ids)

	ids, explicit = ParseSelection([]string{"nodes/a", "links/l1", "nodes/b", "nodes/a", "nodes/", "drawings/d"})
	assert.True(t, explicit)
	assert.Equal(t, []string{"a", "b"}, ids)

	ids, explicit = ParseSelection([]string{"links/l1"})
	assert.True(t, explicit)
	assert.Empty(t, ids)
}

func TestHeavyTypes(t *testing.T) {
	heavy := DefaultHeavyTypes()
	for _, nt := range []NodeType{NodeTypeQemu, NodeTypeVirtualBox, NodeTypeVMware, "QEMU"} {
		assert.True(t, heavy.Contains(nt), "%s should be heavy", nt)
	}
	for _, nt := range []NodeType{NodeTypeDocker, NodeTypeVPCS, NodeTypeDynamips, NodeTypeIOU, NodeTypeEthernetSwitch} {
		assert.False(t, heavy.Contains(nt), "%s should be light", nt)
	}
	assert.True(t, NewTypeSet("Docker").Contains(NodeTypeDocker))
}

func TestHostQueue(t *testing.T) {
	q := NewHostQueue("local", Node{Id: "1", Name: "alpha"}, Node{Id: "2", Name: "bravo"})
	assert.Equal(t, 2, q.Remaining())

	head, ok := q.Head()
	assert.True(t, ok)
	assert.Equal(t, "alpha", head.Name)
	q.Advance()
	head, _ = q.Head()
	assert.Equal(t, "bravo", head.Name)
	assert.Equal(t, []Node{{Id: "1", Name: "alpha"}}, q.Started())
	q.Advance()
	q.Advance()

	assert.True(t, q.Done())
	_, ok = q.Head()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Remaining())
	assert.Equal(t, "local: [alpha bravo] (2/2 started)", q.String())
}

func TestErrorTaxonomy(t *testing.T) {
	node := Node{Id: "n1", Name: "alpha"}
	startErr := errors.Wrap(NewStartCommandError(node, fmt.Errorf("409 conflict")), "run aborted")
	assert.True(t, IsStartCommandError(startErr))
	assert.False(t, IsConnectivityError(startErr))
	sce, ok := AsStartCommandError(startErr)
	assert.True(t, ok)
	assert.Equal(t, "n1", sce.Node.Id)
	assert.Contains(t, startErr.Error(), "Can't start node 'alpha'")

	assert.True(t, IsConnectivityError(NewConnectivityError("Can't get node information", fmt.Errorf("eof"))))
	assert.True(t, IsEmptySelectionError(errors.WithStack(NewEmptySelectionError("No node selected"))))

	interrupted := NewInterruptedError(context.Canceled)
	assert.True(t, IsInterruptedError(interrupted))
	assert.Equal(t, "Aborted", interrupted.Error())
	assert.False(t, IsInterruptedError(nil))
}

func TestErrorCauseChain(t *testing.T) {
	base := fmt.Errorf("503 service unavailable")
	node := Node{Id: "n1", Name: "alpha"}

	startErr := errors.Wrap(NewStartCommandError(node, base), "run aborted")
	assert.Equal(t, base, errors.Cause(startErr))
	assert.True(t, IsStartCommandError(startErr))

	connErr := errors.WithStack(NewConnectivityError("Can't get node information", base))
	assert.Equal(t, base, errors.Cause(connErr))
	assert.True(t, IsConnectivityError(connErr))

	interrupted := NewInterruptedError(context.Canceled)
	assert.Equal(t, context.Canceled, errors.Cause(interrupted))
	assert.True(t, IsInterruptedError(errors.Wrap(interrupted, "coordinator")))

	// no cause to expose
	empty := NewEmptySelectionError("No node selected")
	assert.Equal(t, empty, errors.Cause(empty))
}
