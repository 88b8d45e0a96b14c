package ui

import (
	"fmt"
	"path/filepath"

	"github.com/Jazz4325/ndvi-pipeline/internal/delivery"
	"github.com/Jazz4325/ndvi-pipeline/internal/notification"
)

// RunBatch prompts for a CSV manifest in data/batch and runs every job in
// it. Manifest columns: input, output, red_band, nir_band, nodata, boundary.
func RunBatch() {
	PrintWarning("Batch manifests are read from the data/batch folder.\nColumns: input, output, red_band, nir_band, nodata (empty = -9999), boundary (empty = no clip).")

	manifestPath, err := SelectFile("batch", []string{".csv"}, "Enter the number of the manifest to run: ")
	if err != nil {
		PrintError(err.Error())
		return
	}

	if err := delivery.RunBatch(filepath.Base(manifestPath)); err != nil {
		PrintError(fmt.Sprintf("running batch: %s", err.Error()))
		notification.SendDiscordErrorNotification(fmt.Sprintf("Error running batch %s: %s", filepath.Base(manifestPath), err.Error()))
		return
	}

	PrintSuccess("Batch finished")
}
