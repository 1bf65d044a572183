package profanity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Contains(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{name: "clean text", text: "hello everyone", expected: false},
		{name: "banned word", text: "well shit happens", expected: true},
		{name: "case insensitive", text: "SHIT", expected: true},
		{name: "word boundary respected", text: "scunthorpe", expected: false},
		{name: "empty string", text: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, filter.Contains(tt.text))
		})
	}
}

func TestFilter_Mask(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{name: "single word", text: "well shit happens", expected: "well **** happens"},
		{name: "uppercase match", text: "CRAP, that was close", expected: "****, that was close"},
		{name: "clean text untouched", text: "hello everyone", expected: "hello everyone"},
		{name: "empty string", text: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, filter.Mask(tt.text))
		})
	}
}

func TestNewFilter_ReturnsSharedInstance(t *testing.T) {
	assert.Same(t, NewFilter(), NewFilter())
}
