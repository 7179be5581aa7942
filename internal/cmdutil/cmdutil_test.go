package cmdutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWarnf(t *testing.T) {
	var b bytes.Buffer
	Warnf(&b, true, "x %d", 1)
	assert.Zero(t, b.Len())
	Warnf(&b, false, "x %d", 1)
	assert.Equal(t, "WARN: x 1\n", b.String())
}

func TestNewLogger_JSON(t *testing.T) {
	var b bytes.Buffer
	log, err := NewLogger("info", "json", &b)
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("run started", zap.String("mode", "list"))
	require.NoError(t, log.Sync())

	var line map[string]any
	require.NoError(t, json.Unmarshal(b.Bytes(), &line))
	assert.Equal(t, "run started", line["msg"])
	assert.Equal(t, "list", line["mode"])
	assert.Equal(t, "info", line["level"])
}

func TestNewLogger_DefaultsToWarn(t *testing.T) {
	var b bytes.Buffer
	log, err := NewLogger("", "", &b)
	require.NoError(t, err)
	log.Info("quiet")
	assert.Zero(t, b.Len())
	log.Warn("loud")
	assert.Contains(t, b.String(), "WARN")
	assert.Contains(t, b.String(), "loud")
}

func TestNewLogger_Rejects(t *testing.T) {
	_, err := NewLogger("chatty", "json", &bytes.Buffer{})
	assert.Error(t, err)
	_, err = NewLogger("info", "xml", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestExitCodeFor(t *testing.T) {
	usage := errors.New("usage")
	classify := func(err error) (int, bool) {
		if errors.Is(err, usage) {
			return ExitUsage, true
		}
		return 0, false
	}
	assert.Equal(t, ExitOK, ExitCodeFor(nil, classify))
	assert.Equal(t, ExitCanceled, ExitCodeFor(fmt.Errorf("step 4: %w", context.Canceled), classify))
	assert.Equal(t, ExitUsage, ExitCodeFor(fmt.Errorf("bad: %w", usage), classify))
	assert.Equal(t, ExitIO, ExitCodeFor(errors.New("disk"), classify))
	assert.Equal(t, ExitIO, ExitCodeFor(errors.New("disk"), nil))
}
