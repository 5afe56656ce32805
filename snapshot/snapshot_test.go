package snapshot_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cbarrick/gogp/snapshot"
)

func TestWriterFlushesPendingValueOnClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.json")
	logger := zap.NewNop().Sugar()

	w := snapshot.New(path, time.Hour, logger)
	w.Submit(map[string]int{"gen": 3})
	w.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]int
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 3, got["gen"])
}

func TestWriterTicksPeriodically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.json")
	logger := zap.NewNop().Sugar()

	w := snapshot.New(path, 10*time.Millisecond, logger)
	defer w.Close()
	w.Submit(map[string]int{"gen": 1})

	require.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return err == nil
	}, time.Second, 5*time.Millisecond)
}
