package diagcli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenameExt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "diagram.svg", renameExt("diagram.json", ".svg"))
	assert.Equal(t, "diagram.svg", renameExt("diagram", ".svg"))
	assert.Equal(t, "a/b.c/diagram.svg", renameExt("a/b.c/diagram.json", ".svg"))
}

func TestRegistryNames(t *testing.T) {
	t.Parallel()

	names := RegistryNames()
	assert.Contains(t, names, "arrow")
	assert.Contains(t, names, "diamond")
}
