package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Primary(t *testing.T) {
	tests := []struct {
		code int
		want Special
	}{
		{8, Delete},
		{9, Tab},
		{13, Return},
		{27, Esc},
		{37, Left},
		{38, Up},
		{39, Right},
		{40, Down},
	}
	for _, tt := range tests {
		got, ok := Normalize(tt.code)
		assert.True(t, ok, "code %d", tt.code)
		assert.Equal(t, tt.want, got, "code %d", tt.code)
	}
}

func TestNormalize_Aliases(t *testing.T) {
	down, ok := Normalize(63233)
	assert.True(t, ok)
	assert.Equal(t, Down, down)

	up, _ := Normalize(63232)
	assert.Equal(t, Up, up)

	left, _ := Normalize(63234)
	assert.Equal(t, Left, left)

	right, _ := Normalize(63235)
	assert.Equal(t, Right, right)
}

func TestNormalize_Unknown(t *testing.T) {
	got, ok := Normalize(65)
	assert.False(t, ok)
	assert.Equal(t, Special(""), got)
}

func TestLookup_MisconfiguredTableTerminates(t *testing.T) {
	looped := Table{
		Names:   map[int]Special{1: Tab},
		Aliases: map[int]int{100: 200, 200: 100, 300: 1},
	}

	_, ok := looped.Lookup(100)
	assert.False(t, ok, "alias chains are not followed past one level")

	name, ok := looped.Lookup(300)
	assert.True(t, ok)
	assert.Equal(t, Tab, name)
}

func TestLookup_EmptyTable(t *testing.T) {
	_, ok := Table{}.Lookup(40)
	assert.False(t, ok)
}
