package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_ChildrenShareEntries(t *testing.T) {
	root := NewMockLogger()
	child := root.WithField(FieldComponent, "normalizer")
	child.Debug("row dropped", F(FieldRow, 3))
	root.Info("done")

	entries := root.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "DEBUG", entries[0].Level)

	v, ok := entries[0].FieldValue(FieldComponent)
	require.True(t, ok)
	assert.Equal(t, "normalizer", v)
	v, ok = entries[0].FieldValue(FieldRow)
	require.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = entries[1].FieldValue(FieldComponent)
	assert.False(t, ok)
}

func TestMockLogger_WithErrorAndFatal(t *testing.T) {
	root := NewMockLogger()
	err := errors.New("bad file")
	root.WithError(err).Fatalf("cannot load %s", "x.csv")

	require.True(t, root.HasEntry("FATAL", "cannot load x.csv"))
	assert.Equal(t, err, root.EntriesByLevel("FATAL")[0].Error)

	root.Clear()
	assert.Empty(t, root.Entries())
}

func TestMockLogger_ZeroValueUsable(t *testing.T) {
	var m MockLogger
	m.Warn("zero value")
	assert.True(t, m.HasEntry("WARN", "zero value"))
}
