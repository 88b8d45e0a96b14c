package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Jazz4325/ndvi-pipeline/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestResultCacheRoundTrip(t *testing.T) {
	t.Setenv("ROOT_PATH", t.TempDir())

	outputPath := filepath.Join(os.Getenv("ROOT_PATH"), "out.tif")
	touch(t, outputPath)

	c := NewResultCache("batch")
	key := c.Key("input.tif", outputPath, 4, 8, -9999.0, "")
	modTime := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	_, ok := c.Get(key, modTime)
	assert.False(t, ok, "empty cache misses")

	stats := raster.Summary{Count: 4, Min: -0.3, Max: 0.5, Mean: 0.1, StdDev: 0.2}
	require.NoError(t, c.Set(key, JobResult{Output: outputPath, Stats: &stats, InputModTime: modTime}))

	result, ok := c.Get(key, modTime)
	require.True(t, ok)
	assert.Equal(t, outputPath, result.Output)
	require.NotNil(t, result.Stats)
	assert.Equal(t, stats, *result.Stats)
}

func TestResultCacheInvalidation(t *testing.T) {
	t.Setenv("ROOT_PATH", t.TempDir())

	outputPath := filepath.Join(os.Getenv("ROOT_PATH"), "out.tif")
	touch(t, outputPath)

	c := NewResultCache("batch")
	key := c.Key("input.tif", outputPath)
	modTime := time.Now().Truncate(time.Second)
	require.NoError(t, c.Set(key, JobResult{Output: outputPath, InputModTime: modTime}))

	_, ok := c.Get(key, modTime.Add(time.Minute))
	assert.False(t, ok, "changed input invalidates the entry")

	require.NoError(t, os.Remove(outputPath))
	_, ok = c.Get(key, modTime)
	assert.False(t, ok, "missing output invalidates the entry")
}

func TestKeyStability(t *testing.T) {
	c := NewResultCache("batch")

	assert.Equal(t, c.Key("a", 1, 2.5), c.Key("a", 1, 2.5))
	assert.NotEqual(t, c.Key("a", 1, 2.5), c.Key("a", 1, 2.6))
}
