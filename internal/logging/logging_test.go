package logging

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_RecordsEntries(t *testing.T) {
	m := NewMockLogger()

	m.Info("hello", Field{Key: "k", Value: "v"})
	m.Warn("careful")

	require.Len(t, m.Entries, 2)
	assert.Equal(t, "INFO", m.Entries[0].Level)
	assert.Equal(t, "hello", m.Entries[0].Message)
	assert.Equal(t, "v", m.Entries[0].Fields[0].Value)
	assert.True(t, m.HasEntry("WARN", "careful"))
	assert.False(t, m.HasEntry("ERROR", "careful"))
}

func TestMockLogger_WithErrorReachesParent(t *testing.T) {
	m := NewMockLogger()
	err := errors.New("boom")

	m.WithError(err).Error("failed")

	require.Len(t, m.Entries, 1)
	assert.Equal(t, err, m.Entries[0].Error)
}

func TestMockLogger_WithFieldChains(t *testing.T) {
	m := NewMockLogger()

	m.WithField("a", 1).WithField("b", 2).Info("chained")

	require.Len(t, m.Entries, 1)
	require.Len(t, m.Entries[0].Fields, 2)
	assert.Equal(t, "a", m.Entries[0].Fields[0].Key)
	assert.Equal(t, "b", m.Entries[0].Fields[1].Key)
}

func TestGetLogger_ReturnsSameInstance(t *testing.T) {
	assert.Same(t, GetLogger(), GetLogger())
}

func TestNewLogrusAdapterFromLogger(t *testing.T) {
	base := logrus.New()
	base.SetLevel(logrus.DebugLevel)

	logger := NewLogrusAdapterFromLogger(base)
	require.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.Debug("wrapped") })

	// Nil input falls back to a fresh logrus instance.
	assert.NotNil(t, NewLogrusAdapterFromLogger(nil))
}

func TestNewLogrusAdapter(t *testing.T) {
	logger := NewLogrusAdapter("debug", "json")
	require.NotNil(t, logger)

	// Chained loggers must remain usable.
	assert.NotPanics(t, func() {
		logger.WithField("k", "v").WithError(errors.New("x")).Warn("message")
	})
}
