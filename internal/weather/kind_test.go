package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := ParseKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
	got, ok := ParseKind(" rainy ")
	assert.True(t, ok)
	assert.Equal(t, Rainy, got)

	_, ok = ParseKind("SNOW")
	assert.False(t, ok)
}

func TestKindParamsTable(t *testing.T) {
	assert.Equal(t, Params{Roughness: 0.8, Reflection: 0.2, WindBaseline: 0.1}, Dry.Params())
	assert.Equal(t, Params{Roughness: 0.1, Reflection: 0.5, WindBaseline: 0.3}, Wet.Params())
	assert.Equal(t, Params{Roughness: 0.05, Reflection: 0.8, WindBaseline: 0.7}, Rainy.Params())
	assert.False(t, Kind(9).Valid())
	assert.Equal(t, "UNKNOWN", Kind(9).String())
}

func TestSuggestKind(t *testing.T) {
	cases := map[string]Kind{
		"RAINYY": Rainy,
		"rany":   Rainy,
		"drye":   Dry,
		"wett":   Wet,
	}
	for in, want := range cases {
		got, ok := SuggestKind(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "SNOW", "hurricane"} {
		_, ok := SuggestKind(in)
		assert.False(t, ok, in)
	}
}
