package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsGradient(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "empty clears", input: "", want: true},
		{name: "default linear", input: "linear-gradient(135deg, #1db954 0%, #1ed760 100%)", want: true},
		{name: "radial", input: "radial-gradient(circle, #fff, #000)", want: true},
		{name: "repeating conic", input: "repeating-conic-gradient(red 0 15deg, blue 0 30deg)", want: true},
		{name: "short hex", input: "#abc", want: true},
		{name: "long hex", input: "#A1B2C3", want: true},
		{name: "named colour", input: "red", want: true},
		{name: "rgb function", input: "rgb(1,2,3)", want: true},
		{name: "image url", input: "url(bg.png)", want: true},
		{name: "css injection", input: "linear-gradient(red, blue); color: red", want: false},
		{name: "rule break", input: "red} body{display:none", want: false},
		{name: "markup", input: "<script>alert(1)</script>", want: false},
		{name: "too long", input: "linear-gradient(" + strings.Repeat("a", MaxGradientLen) + ")", want: false},
		{name: "at the bound", input: strings.Repeat("a", MaxGradientLen), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGradient(tt.input))
		})
	}
}

func TestNewValidator(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	type req struct {
		Gradient string `json:"gradient" validate:"omitempty,gradient"`
	}

	assert.NoError(t, v.Struct(req{Gradient: "#123456"}))

	assert.NoError(t, v.Struct(req{Gradient: "red"}))

	err = v.Struct(req{Gradient: "red; color: blue"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'gradient'")
}

func TestRegisterGradientValidatorTwice(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)
	assert.NoError(t, RegisterGradientValidator(v))
}
