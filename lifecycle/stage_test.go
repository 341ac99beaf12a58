package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageOrdering(t *testing.T) {
	ordered := []Stage{Uninitialized, Initializing, InitFailed,
		Initialized, Destroying, Destroyed}
	for i := 1; i < len(ordered); i++ {
		assert.True(t, ordered[i] > ordered[i-1],
			"%s must rank above %s", ordered[i], ordered[i-1])
	}
}

func TestStageHasAchieved(t *testing.T) {
	// Reflexive.
	for _, s := range []Stage{Uninitialized, Initializing, InitFailed,
		Initialized, Destroying, Destroyed} {
		assert.True(t, s.HasAchieved(s))
	}

	assert.True(t, Initialized.HasAchieved(Initializing))
	assert.False(t, Initializing.HasAchieved(Initialized))

	// A failed initialization has achieved Initializing, but not
	// Initialized.
	assert.True(t, InitFailed.HasAchieved(Initializing))
	assert.False(t, InitFailed.HasAchieved(Initialized))

	assert.True(t, Destroyed.HasAchieved(Destroying))
	assert.False(t, Uninitialized.HasAchieved(Initializing))
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "Uninitialized", Uninitialized.String())
	assert.Equal(t, "InitFailed", InitFailed.String())
	assert.Equal(t, "Destroyed", Destroyed.String())
	assert.Equal(t, "42", Stage(42).String())
}

func TestInitModeString(t *testing.T) {
	assert.Equal(t, "Concurrent", InitConcurrent.String())
	assert.Equal(t, "Consecutive", InitConsecutive.String())
}
