package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	assert.Equal(t, 100.0, Number("100"))
	assert.Equal(t, 12.5, Number("12.5"))
	assert.Equal(t, -3.0, Number("-3"))

	// anything unparseable degrades to zero, never NaN
	assert.Equal(t, 0.0, Number(""))
	assert.Equal(t, 0.0, Number("abc"))
	assert.Equal(t, 0.0, Number("12px"))
	assert.Equal(t, 0.0, Number("NaN"))
	assert.Equal(t, 0.0, Number("+Inf"))
}

func TestBool(t *testing.T) {
	assert.True(t, Bool("true", false))
	assert.False(t, Bool("false", true))

	// only the two literal tokens count; everything else is the default
	assert.True(t, Bool("", true))
	assert.False(t, Bool("", false))
	assert.True(t, Bool("yes", true))
	assert.False(t, Bool("TRUE", false))
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString(""))

	got := OptionalString("ws-1")
	if assert.NotNil(t, got) {
		assert.Equal(t, "ws-1", *got)
	}
}

func TestStringOr(t *testing.T) {
	assert.Equal(t, "#3972F6", StringOr("", "#3972F6"))
	assert.Equal(t, "#FF6B6B", StringOr("#FF6B6B", "#3972F6"))
}
