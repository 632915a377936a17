package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequriedString(t *testing.T) {
	t.Setenv("TEST_REQUIRED", "value")
	got, err := requriedString("TEST_REQUIRED")
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	_, err = requriedString("TEST_REQUIRED_MISSING")
	assert.Error(t, err)
}

func TestStringWithDefault(t *testing.T) {
	t.Setenv("TEST_STRING", "set")
	assert.Equal(t, "set", stringWithDefault("TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", stringWithDefault("TEST_STRING_MISSING", "fallback"))
}

func TestIntWithDefault(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	got, err := intWithDefault("TEST_INT", 7)
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	got, err = intWithDefault("TEST_INT_MISSING", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	t.Setenv("TEST_INT_BAD", "nope")
	_, err = intWithDefault("TEST_INT_BAD", 7)
	assert.Error(t, err)
}
