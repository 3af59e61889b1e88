package logger

import (
	"testing"

	logrus "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupConfiguresStandardLogger(t *testing.T) {
	Setup()

	std := logrus.StandardLogger()
	assert.Equal(t, logrus.DebugLevel, std.GetLevel())
	_, ok := std.Formatter.(*logrus.TextFormatter)
	assert.True(t, ok)
}

func TestGormLoggerSharesTheAppLogger(t *testing.T) {
	// SQL logging must land in the same rotating file as everything else.
	require.Same(t, logrus.StandardLogger(), GormLogger())
}
