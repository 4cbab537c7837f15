package render_test

import (
	"testing"

	"github.com/dargueta/fat16vol/shell/render"
	"github.com/dargueta/fat16vol/volume"
	"github.com/stretchr/testify/assert"
)

func TestNameStripsPadding(t *testing.T) {
	assert.Contains(t, render.Name("FOO        ", volume.AttrArchive), "FOO")
}

func TestNameReinsertsDotForExtension(t *testing.T) {
	assert.Contains(t, render.Name("FOO     BAR", volume.AttrArchive), "FOO.BAR")
}

func TestNamePassesThroughNonEightThreeStrings(t *testing.T) {
	assert.Equal(t, "short", render.Name("short", volume.AttrArchive))
}
