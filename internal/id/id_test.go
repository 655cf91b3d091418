package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		v := New()
		require.True(t, Valid(v), "invalid id %q", v)
		require.False(t, seen[v], "duplicate id %q", v)
		seen[v] = true
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("3f1c9a2e-7b4d-4c1e-9a8f-0123456789ab"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("1700000000000"))
}

func TestShort(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"3f1c9a2e-7b4d-4c1e-9a8f-0123456789ab", "3f1c9a2e"},
		{"abc", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Short(tt.input))
	}
}

func TestMatchPrefix(t *testing.T) {
	ids := []string{"aaaa-1", "aaab-2", "b", "bc"}

	got, err := MatchPrefix(ids, "aaaa")
	require.NoError(t, err)
	assert.Equal(t, "aaaa-1", got)

	// Exact match wins over a longer id sharing the prefix.
	got, err = MatchPrefix(ids, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}

func TestMatchPrefix_Errors(t *testing.T) {
	ids := []string{"aaaa-1", "aaab-2"}

	_, err := MatchPrefix(ids, "aaa")
	assert.ErrorIs(t, err, ErrAmbiguous)

	_, err = MatchPrefix(ids, "zzz")
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = MatchPrefix(ids, "")
	assert.ErrorIs(t, err, ErrNoMatch)
}
