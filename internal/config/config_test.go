package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchDefaultsMatchCompiledInValues(t *testing.T) {
	Setup()
	assert.True(t, Settings.Search.UseTT)
	assert.Equal(t, 64, Settings.Search.TTSize)
	assert.True(t, Settings.Search.UseQuiescence)
	assert.Equal(t, 1, Settings.Search.MaxThreads)
}

func TestEvalDefaultsMatchCompiledInValues(t *testing.T) {
	Setup()
	assert.False(t, Settings.Eval.UseLazyEval)
	assert.Equal(t, int16(10), Settings.Eval.Tempo)
}

func TestVariantDefaultsMatchCompiledInValues(t *testing.T) {
	Setup()
	assert.Equal(t, 4.0, Settings.Variant.MobilityWeight)
	assert.Equal(t, 0.5, Settings.Variant.PromotionProximity)
}

func TestSetupIsIdempotentAfterTheFirstCall(t *testing.T) {
	Setup()
	Settings.Search.TTSize = 999
	Setup()
	assert.Equal(t, 999, Settings.Search.TTSize, "a second Setup call must not re-read the file over a runtime change")
	Settings.Search.TTSize = 64
}
