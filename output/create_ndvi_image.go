package output

import (
	"fmt"
	"strings"

	"github.com/Jazz4325/ndvi-pipeline/internal/raster"
	"github.com/airbusgeo/godal"
	"github.com/fogleman/gg"
)

type rampStop struct {
	value   float64
	r, g, b int
}

// Brown-to-green NDVI ramp; water and clouds fall below zero.
var ndviRamp = []rampStop{
	{-1.0, 44, 74, 145},
	{0.0, 190, 165, 130},
	{0.3, 210, 210, 100},
	{0.6, 110, 170, 70},
	{1.0, 20, 90, 30},
}

func rampColor(value float64) (int, int, int) {
	if value <= ndviRamp[0].value {
		first := ndviRamp[0]
		return first.r, first.g, first.b
	}
	for i := 1; i < len(ndviRamp); i++ {
		if value <= ndviRamp[i].value {
			low, high := ndviRamp[i-1], ndviRamp[i]
			t := (value - low.value) / (high.value - low.value)
			return low.r + int(t*float64(high.r-low.r)),
				low.g + int(t*float64(high.g-low.g)),
				low.b + int(t*float64(high.b-low.b))
		}
	}
	last := ndviRamp[len(ndviRamp)-1]
	return last.r, last.g, last.b
}

// CreateNDVIImage renders band 1 of an NDVI raster as a colormapped PNG.
// Nodata pixels stay transparent.
func CreateNDVIImage(ndviRasterPath, outputImagePath string) (string, error) {
	if !strings.HasSuffix(outputImagePath, ".png") {
		outputImagePath += ".png"
	}

	ds, err := godal.Open(ndviRasterPath)
	if err != nil {
		return "", fmt.Errorf("failed to open NDVI raster %s: %v", ndviRasterPath, err)
	}
	defer ds.Close()

	profile, err := raster.ReadProfile(ds)
	if err != nil {
		return "", err
	}
	values, err := raster.ReadBand(ds, 1)
	if err != nil {
		return "", err
	}

	dc := gg.NewContext(profile.Width, profile.Height)
	for i := range values {
		for j, value := range values[i] {
			if profile.NoData != nil && value == *profile.NoData {
				continue
			}
			r, g, b := rampColor(value)
			dc.SetRGB255(r, g, b)
			dc.SetPixel(j, i)
		}
	}

	if err := dc.SavePNG(outputImagePath); err != nil {
		return "", fmt.Errorf("failed to save image: %v", err)
	}

	fmt.Println("PNG image created successfully as", outputImagePath)
	return outputImagePath, nil
}
