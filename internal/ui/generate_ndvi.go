package ui

import (
	"fmt"
	"path/filepath"

	"github.com/Jazz4325/ndvi-pipeline/internal/delivery"
	"github.com/Jazz4325/ndvi-pipeline/internal/notification"
	"github.com/Jazz4325/ndvi-pipeline/internal/properties"
)

// GenerateNDVI prompts for a multispectral raster and band layout, then
// produces an NDVI raster in data/ndvi.
func GenerateNDVI() {
	PrintWarning("Input rasters are read from the data/rasters folder.\nGenerated NDVI rasters are written to the data/ndvi folder.")

	inputPath, err := SelectFile("rasters", []string{".tif", ".tiff"}, "Enter the number of the raster to process: ")
	if err != nil {
		PrintError(err.Error())
		return
	}

	// Sentinel-2: red is band 4, NIR is band 8. Landsat 8/9: red 4, NIR 5.
	redBand, err := ReadPositiveInt("Enter the red band number (Sentinel-2: 4, Landsat 8/9: 4): ")
	if err != nil {
		PrintError(err.Error())
		return
	}
	nirBand, err := ReadPositiveInt("Enter the NIR band number (Sentinel-2: 8, Landsat 8/9: 5): ")
	if err != nil {
		PrintError(err.Error())
		return
	}
	noData, err := ReadFloatDefault("Enter the output nodata value", properties.DefaultNoData)
	if err != nil {
		PrintError(err.Error())
		return
	}

	outputName := ReadString("Enter the output file name (without extension): ")
	if outputName == "" {
		PrintError("output file name cannot be empty")
		return
	}
	outputDir, err := EnsureResultDirectory("ndvi")
	if err != nil {
		PrintError(err.Error())
		return
	}
	outputPath := filepath.Join(outputDir, outputName+".tif")

	result, err := delivery.GenerateNDVIRaster(inputPath, outputPath, redBand, nirBand, noData)
	if err != nil {
		PrintError(fmt.Sprintf("generating NDVI raster: %s", err.Error()))
		notification.SendDiscordErrorNotification(fmt.Sprintf("Error generating NDVI raster from %s: %s", inputPath, err.Error()))
		return
	}

	PrintSuccess("NDVI raster created at: " + result)
}
