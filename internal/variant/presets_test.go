package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/fkopp/vchess/internal/types"
)

func TestByNameBuildsEveryRegisteredPreset(t *testing.T) {
	for name := range Presets {
		desc, err := ByName(name)
		assert.NoError(t, err, "preset %q", name)
		assert.NotEmpty(t, desc.Name, "preset %q", name)
		assert.NotEmpty(t, desc.Pieces, "preset %q", name)
		assert.NotNil(t, desc.Tables[White], "preset %q", name)
	}
}

func TestByNameUnknownPresetErrors(t *testing.T) {
	_, err := ByName("not-a-real-variant")
	assert.Error(t, err)
}

func TestByNameReturnsIndependentDescriptors(t *testing.T) {
	a, err := ByName("standard")
	assert.NoError(t, err)
	b, err := ByName("standard")
	assert.NoError(t, err)
	assert.NotSame(t, a, b)
}
