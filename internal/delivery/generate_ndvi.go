package delivery

import (
	"fmt"

	"github.com/Jazz4325/ndvi-pipeline/internal/ndvi"
	"github.com/Jazz4325/ndvi-pipeline/internal/raster"
	"github.com/airbusgeo/godal"
)

func openRaster(path string) (*godal.Dataset, error) {
	return godal.Open(path, godal.ErrLogger(func(ec godal.ErrorCategory, code int, msg string) error {
		if ec == godal.CE_Warning || ec == godal.CE_Debug {
			return nil
		}
		return fmt.Errorf("%s", msg)
	}))
}

// GenerateNDVIRaster reads the red and NIR bands of a multispectral raster,
// computes NDVI, masks nodata pixels with the given sentinel and writes the
// result as a single-band float32 raster carrying the input's geotransform
// and projection. Statistics over the valid pixels are printed once the
// output is written. Returns the output path on success.
func GenerateNDVIRaster(inputPath, outputPath string, redBand, nirBand int, noData float64) (string, error) {
	fmt.Printf("Reading input raster: %s\n", inputPath)
	ds, err := openRaster(inputPath)
	if err != nil {
		return "", fmt.Errorf("failed to open input raster %s: %v", inputPath, err)
	}
	defer ds.Close()

	profile, err := raster.ReadProfile(ds)
	if err != nil {
		return "", err
	}

	fmt.Printf("Reading red band (band %d)...\n", redBand)
	red, err := raster.ReadBand(ds, redBand)
	if err != nil {
		return "", err
	}

	fmt.Printf("Reading NIR band (band %d)...\n", nirBand)
	nir, err := raster.ReadBand(ds, nirBand)
	if err != nil {
		return "", err
	}

	mask := raster.NoDataMask(red, nir, profile.NoData)

	fmt.Println("Calculating NDVI...")
	result, err := ndvi.Calculate(red, nir)
	if err != nil {
		return "", err
	}
	raster.ApplyNoData(result, mask, noData)

	outProfile := profile
	outProfile.Bands = 1
	outProfile.DataType = godal.Float32
	outProfile.NoData = &noData

	fmt.Printf("Writing NDVI raster to: %s\n", outputPath)
	if err := raster.Write(outputPath, outProfile, [][][]float64{result}, []string{"NDVI"}); err != nil {
		return "", err
	}

	if summary, ok := raster.Summarize(raster.ValidValues(result, mask)); ok {
		fmt.Printf("\nNDVI statistics:\n  %s\n", summary)
	} else {
		fmt.Println("\nNo valid pixels; statistics skipped.")
	}

	fmt.Printf("\nNDVI raster successfully created: %s\n", outputPath)
	return outputPath, nil
}
