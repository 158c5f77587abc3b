package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCheckWarn(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	assert.False(t, CheckWarn(logger, nil, "nothing"))
	assert.True(t, CheckWarn(logger, errors.New("boom"), "something failed"))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "something failed", entries[0].Message)
	}
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError(nil, "ctx"))

	base := errors.New("boom")
	err := WrapError(base, "ctx")
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "ctx: boom", err.Error())
}
