package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagSet_Apply(t *testing.T) {
	baseline := FlagEllipsis | FlagNormalizeWhitespace

	tests := []struct {
		name      string
		overrides []FlagOverride
		expected  FlagSet
	}{
		{"no overrides", nil, baseline},
		{"enable skip", []FlagOverride{{Flag: FlagSkip, Enable: true}}, baseline | FlagSkip},
		{"disable ellipsis", []FlagOverride{{Flag: FlagEllipsis, Enable: false}}, FlagNormalizeWhitespace},
		{
			"later override wins",
			[]FlagOverride{{Flag: FlagSkip, Enable: true}, {Flag: FlagSkip, Enable: false}},
			baseline,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, baseline.Apply(tt.overrides))
		})
	}
}

func TestFlagSet_ApplyDoesNotMutateBaseline(t *testing.T) {
	baseline := FlagEllipsis

	_ = baseline.Apply([]FlagOverride{{Flag: FlagSkip, Enable: true}})

	assert.False(t, baseline.Has(FlagSkip))
}

func TestParseFlag(t *testing.T) {
	for name, want := range map[string]FlagSet{
		"ellipsis":             FlagEllipsis,
		"normalize-whitespace": FlagNormalizeWhitespace,
		"ignore-fault-detail":  FlagIgnoreFaultDetail,
		"skip":                 FlagSkip,
	} {
		got, ok := ParseFlag(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, ok := ParseFlag("bogus")
	assert.False(t, ok)
}

func TestExample_ExpectsFault(t *testing.T) {
	assert.False(t, Example{Want: "2\n"}.ExpectsFault())
	assert.True(t, Example{WantFault: "boom\n"}.ExpectsFault())
}
