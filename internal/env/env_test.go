package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	t.Setenv("TEST_STR", "value")

	assert.Equal(t, "value", GetString("TEST_STR", "fallback"))
	assert.Equal(t, "fallback", GetString("TEST_STR_MISSING", "fallback"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT_BAD", "not a number")

	assert.Equal(t, 42, GetInt("TEST_INT", 7))
	assert.Equal(t, 7, GetInt("TEST_INT_BAD", 7))
	assert.Equal(t, 7, GetInt("TEST_INT_MISSING", 7))
}

func TestGetBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_BOOL_BAD", "si")

	assert.True(t, GetBool("TEST_BOOL", false))
	assert.False(t, GetBool("TEST_BOOL_BAD", false))
	assert.True(t, GetBool("TEST_BOOL_MISSING", true))
}
