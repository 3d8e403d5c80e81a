package main

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"testing"
)

func TestMigrateAndDump(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, migrateAndDump(testContext(t), &out, zap.NewNop().Sugar()))

	schema := out.String()
	assert.Contains(t, schema, "create table keyboard_states")
	assert.Contains(t, schema, "create table sqlite_master")
}

// testContext returns a context canceled when the test finishes.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
