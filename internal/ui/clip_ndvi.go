package ui

import (
	"fmt"
	"path/filepath"

	"github.com/Jazz4325/ndvi-pipeline/internal/delivery"
	"github.com/Jazz4325/ndvi-pipeline/internal/notification"
)

// ClipNDVI prompts for a generated NDVI raster and a vector boundary, then
// writes the cropped raster next to the other NDVI outputs.
func ClipNDVI() {
	PrintWarning("NDVI rasters are read from the data/ndvi folder.\nBoundaries (shapefile, zipped shapefile, GeoJSON or GeoPackage) are read from the data/boundaries folder.")

	rasterPath, err := SelectFile("ndvi", []string{".tif", ".tiff"}, "Enter the number of the NDVI raster to clip: ")
	if err != nil {
		PrintError(err.Error())
		return
	}
	boundaryPath, err := SelectFile("boundaries", []string{".shp", ".zip", ".geojson", ".json", ".gpkg"}, "Enter the number of the boundary to clip with: ")
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

	result, err := delivery.ClipNDVIByShapefile(rasterPath, boundaryPath, outputPath)
	if err != nil {
		PrintError(fmt.Sprintf("clipping NDVI raster: %s", err.Error()))
		notification.SendDiscordErrorNotification(fmt.Sprintf("Error clipping %s with %s: %s", rasterPath, boundaryPath, err.Error()))
		return
	}

	PrintSuccess("Clipped NDVI raster created at: " + result)
}
