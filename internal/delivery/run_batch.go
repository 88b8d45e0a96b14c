package delivery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Jazz4325/ndvi-pipeline/internal/cache"
	"github.com/Jazz4325/ndvi-pipeline/internal/notification"
	"github.com/Jazz4325/ndvi-pipeline/internal/properties"
	"github.com/Jazz4325/ndvi-pipeline/internal/raster"
	"github.com/Jazz4325/ndvi-pipeline/internal/utils"
	"github.com/gammazero/workerpool"
	"github.com/gocarina/gocsv"
	"github.com/schollz/progressbar/v3"
)

// BatchJob is one row of a batch manifest. An empty nodata column means the
// default sentinel; an empty boundary column skips the clip stage.
type BatchJob struct {
	Input    string  `csv:"input"`
	Output   string  `csv:"output"`
	RedBand  int     `csv:"red_band"`
	NIRBand  int     `csv:"nir_band"`
	NoData   float64 `csv:"nodata"`
	Boundary string  `csv:"boundary"`
}

// RunBatch processes every row of a CSV manifest in data/batch: generate an
// NDVI raster per row, clip it when a boundary is given, and cache the
// result so re-running the manifest skips untouched rows. Individual rows
// fail independently; only a fully failed batch is an error.
func RunBatch(manifestFileName string) error {
	manifestPath := fmt.Sprintf("%s/data/batch/%s", properties.RootPath(), manifestFileName)
	file, err := os.Open(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to open batch manifest: %v", err)
	}
	defer file.Close()

	var jobs []*BatchJob
	if err := gocsv.UnmarshalFile(file, &jobs); err != nil {
		return fmt.Errorf("failed to parse batch manifest: %v", err)
	}
	if len(jobs) == 0 {
		return fmt.Errorf("empty batch manifest %s", manifestPath)
	}

	fmt.Printf("Running %d NDVI jobs from %s\n", len(jobs), manifestPath)

	resultCache := cache.NewResultCache("batch")
	var (
		mu       sync.Mutex
		failures []string
		results  = make(map[string]cache.JobResult)
	)
	progressBar := progressbar.Default(int64(len(jobs)), "Processing NDVI jobs")

	wp := workerpool.New(properties.BatchWorkers())
	for _, job := range jobs {
		j := job
		wp.Submit(func() {
			defer progressBar.Add(1)
			result, err := runJob(resultCache, j)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, fmt.Sprintf("%s: %v", j.Input, err))
				return
			}
			results[j.Input] = result
		})
	}
	wp.StopWait()

	for _, input := range utils.SortedKeys(results) {
		result := results[input]
		if result.Stats != nil {
			fmt.Printf("%s -> %s  %s\n", input, result.Output, result.Stats)
		} else {
			fmt.Printf("%s -> %s  (no valid pixels)\n", input, result.Output)
		}
	}

	if err := writeBatchReport(manifestFileName, results); err != nil {
		fmt.Printf("Warning: failed to write batch report: %v\n", err)
	}

	if len(failures) == len(jobs) {
		return fmt.Errorf("all batch jobs failed: %s", strings.Join(failures, "; "))
	}
	if len(failures) > 0 {
		fmt.Printf("Batch finished with %d failed jobs:\n%s\n", len(failures), strings.Join(failures, "\n"))
		notification.SendDiscordWarnNotification(fmt.Sprintf("Batch %s finished with %d of %d jobs failed.\n%s",
			manifestFileName, len(failures), len(jobs), strings.Join(failures, "\n")))
		return nil
	}

	fmt.Println("Batch finished successfully")
	notification.SendDiscordSuccessNotification(fmt.Sprintf("Batch %s finished: %d jobs succeeded.", manifestFileName, len(jobs)))
	return nil
}

func runJob(resultCache *cache.ResultCache, job *BatchJob) (cache.JobResult, error) {
	if job.Input == "" || job.Output == "" {
		return cache.JobResult{}, fmt.Errorf("manifest row needs both input and output")
	}

	noData := job.NoData
	if noData == 0 {
		noData = properties.DefaultNoData
	}

	info, err := os.Stat(job.Input)
	if err != nil {
		return cache.JobResult{}, fmt.Errorf("failed to stat input raster: %v", err)
	}

	key := resultCache.Key(job.Input, job.Output, job.RedBand, job.NIRBand, noData, job.Boundary)
	if result, ok := resultCache.Get(key, info.ModTime()); ok {
		return result, nil
	}

	outputPath, err := GenerateNDVIRaster(job.Input, job.Output, job.RedBand, job.NIRBand, noData)
	if err != nil {
		return cache.JobResult{}, err
	}

	result := cache.JobResult{Output: outputPath, InputModTime: info.ModTime()}

	if job.Boundary != "" {
		clippedPath := clippedOutputPath(outputPath)
		if result.Clipped, err = ClipNDVIByShapefile(outputPath, job.Boundary, clippedPath); err != nil {
			return cache.JobResult{}, err
		}
	}

	if summary, ok := summarizeRaster(outputPath, noData); ok {
		result.Stats = &summary
	}

	if err := resultCache.Set(key, result); err != nil {
		fmt.Printf("Warning: failed to cache result for %s: %v\n", job.Input, err)
	}
	return result, nil
}

// ReportRow is one line of the CSV report written after a batch run.
type ReportRow struct {
	Input   string   `csv:"input"`
	Output  string   `csv:"output"`
	Clipped string   `csv:"clipped"`
	Count   int      `csv:"valid_pixels"`
	Min     *float64 `csv:"min"`
	Max     *float64 `csv:"max"`
	Mean    *float64 `csv:"mean"`
	Std     *float64 `csv:"std"`
}

func writeBatchReport(manifestFileName string, results map[string]cache.JobResult) error {
	reportDir := filepath.Join(properties.RootPath(), "data", "result")
	if err := os.MkdirAll(reportDir, os.ModePerm); err != nil {
		return err
	}
	reportPath := filepath.Join(reportDir, strings.TrimSuffix(manifestFileName, ".csv")+"_report.csv")

	rows := make([]*ReportRow, 0, len(results))
	for _, input := range utils.SortedKeys(results) {
		result := results[input]
		row := &ReportRow{Input: input, Output: result.Output, Clipped: result.Clipped}
		if result.Stats != nil {
			row.Count = result.Stats.Count
			row.Min = &result.Stats.Min
			row.Max = &result.Stats.Max
			row.Mean = &result.Stats.Mean
			row.Std = &result.Stats.StdDev
		}
		rows = append(rows, row)
	}

	file, err := os.Create(reportPath)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return err
	}
	fmt.Printf("Batch report written to: %s\n", reportPath)
	return nil
}

func clippedOutputPath(outputPath string) string {
	ext := filepath.Ext(outputPath)
	return strings.TrimSuffix(outputPath, ext) + "_clipped" + ext
}

func summarizeRaster(path string, noData float64) (raster.Summary, bool) {
	ds, err := openRaster(path)
	if err != nil {
		return raster.Summary{}, false
	}
	defer ds.Close()

	values, err := raster.ReadBand(ds, 1)
	if err != nil {
		return raster.Summary{}, false
	}

	valid := []float64{}
	for i := range values {
		for j := range values[i] {
			if values[i][j] != noData {
				valid = append(valid, values[i][j])
			}
		}
	}
	return raster.Summarize(valid)
}
