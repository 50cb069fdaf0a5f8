package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCommaSep(t *testing.T) {
	assert.Equal(t, []string{"qemu", "vmware", "docker"}, SplitCommaSep("qemu, vmware,,docker"))
	assert.Equal(t, []string{}, SplitCommaSep(""))
	assert.Equal(t, []string{}, SplitCommaSep(" , "))
}

func TestGenUUID(t *testing.T) {
	a, b := GenUUID(), GenUUID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
