package sdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBareToken(t *testing.T) {
	tests := map[string]string{
		"":               "",
		"abc":            "abc",
		"Bearer abc":     "abc",
		"bearer  abc ":   "abc",
		"BEARER\tabc":    "abc",
		"Bearer":         "",
		"Bearerabc":      "Bearerabc",
		"  Bearer x.y.z": "x.y.z",
	}
	for in, want := range tests {
		assert.Equal(t, want, BareToken(in), "input %q", in)
	}
}
