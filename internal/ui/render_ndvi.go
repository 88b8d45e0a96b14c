package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Jazz4325/ndvi-pipeline/output"
)

// RenderNDVI prompts for a generated NDVI raster and exports it as a
// colormapped PNG in data/result.
func RenderNDVI() {
	PrintWarning("NDVI rasters are read from the data/ndvi folder.\nPNG exports are written to the data/result folder.")

	rasterPath, err := SelectFile("ndvi", []string{".tif", ".tiff"}, "Enter the number of the NDVI raster to render: ")
	if err != nil {
		PrintError(err.Error())
		return
	}

	outputDir, err := EnsureResultDirectory("result")
	if err != nil {
		PrintError(err.Error())
		return
	}
	name := strings.TrimSuffix(filepath.Base(rasterPath), filepath.Ext(rasterPath))
	outputPath := filepath.Join(outputDir, name+".png")

	result, err := output.CreateNDVIImage(rasterPath, outputPath)
	if err != nil {
		PrintError(fmt.Sprintf("rendering NDVI raster: %s", err.Error()))
		return
	}

	PrintSuccess("NDVI image created at: " + result)
}
