package ahocorasick

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMayMatch(t *testing.T) {
	p := New([]string{"precision", "recall"})
	require.NotNil(t, p)
	assert.Equal(t, 2, p.TermCount())

	assert.True(t, p.MayMatch("a test of precision"))
	assert.False(t, p.MayMatch("nothing relevant"))
}

func TestMayMatchIgnoresCase(t *testing.T) {
	p := New([]string{"WHO", "recall"})
	require.NotNil(t, p)

	assert.True(t, p.MayMatch("the who said"))
	assert.True(t, p.MayMatch("RECALL issued"))
}

func TestMayMatchSubstringOverApproximates(t *testing.T) {
	p := New([]string{"recall"})
	require.NotNil(t, p)

	// Substring matching may pass documents the word-anchored pattern will
	// later reject; that is the contract, misses are what must be exact.
	assert.True(t, p.MayMatch("recalls were issued"))
}

func TestNewEmptyTerms(t *testing.T) {
	assert.Nil(t, New(nil))
	assert.Nil(t, New([]string{"", ""}))
}

func TestNewSkipsEmptyTerms(t *testing.T) {
	p := New([]string{"", "recall", ""})
	require.NotNil(t, p)
	assert.Equal(t, 1, p.TermCount())
}
