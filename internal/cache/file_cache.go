package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Jazz4325/ndvi-pipeline/internal/properties"
	"github.com/Jazz4325/ndvi-pipeline/internal/raster"
)

// JobResult is one finished batch job: where its artifacts landed and the
// statistics observed when it ran. InputModTime invalidates the entry when
// the source raster changes.
type JobResult struct {
	Output       string          `json:"output"`
	Clipped      string          `json:"clipped,omitempty"`
	Stats        *raster.Summary `json:"stats,omitempty"`
	InputModTime time.Time       `json:"input_mod_time"`
	FinishedAt   time.Time       `json:"finished_at"`
}

// ResultCache persists batch job results as JSON files so re-running a
// manifest skips rows whose inputs and outputs are untouched.
type ResultCache struct {
	cacheDir string
}

func NewResultCache(subDir string) *ResultCache {
	return &ResultCache{cacheDir: filepath.Join(properties.RootPath(), "data", "cache", subDir)}
}

// Key derives a stable cache key from job parameters.
func (c *ResultCache) Key(params ...interface{}) string {
	var keyData string
	for _, param := range params {
		keyData += fmt.Sprintf("%v_", param)
	}
	h := sha1.Sum([]byte(keyData))
	return hex.EncodeToString(h[:])
}

// Get returns a cached result when the entry exists, its input is unchanged
// and its output file is still on disk.
func (c *ResultCache) Get(key string, inputModTime time.Time) (JobResult, bool) {
	data, err := os.ReadFile(filepath.Join(c.cacheDir, key+".json"))
	if err != nil {
		return JobResult{}, false
	}

	var result JobResult
	if err := json.Unmarshal(data, &result); err != nil {
		return JobResult{}, false
	}

	if !result.InputModTime.Equal(inputModTime) {
		return JobResult{}, false
	}
	if _, err := os.Stat(result.Output); err != nil {
		return JobResult{}, false
	}
	if result.Clipped != "" {
		if _, err := os.Stat(result.Clipped); err != nil {
			return JobResult{}, false
		}
	}
	return result, true
}

// Set stores a result atomically (write-then-rename) so a crash never leaves
// a torn cache entry.
func (c *ResultCache) Set(key string, result JobResult) error {
	if err := os.MkdirAll(c.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %v", err)
	}

	result.FinishedAt = time.Now()
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %v", err)
	}

	cacheFile := filepath.Join(c.cacheDir, key+".json")
	tmpFile := cacheFile + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp cache file: %v", err)
	}
	if err := os.Rename(tmpFile, cacheFile); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to rename temp cache file: %v", err)
	}
	return nil
}
