package delivery

import (
	"fmt"

	"github.com/Jazz4325/ndvi-pipeline/internal/boundary"
	"github.com/Jazz4325/ndvi-pipeline/internal/raster"
	"github.com/paulmach/orb"
	"github.com/schollz/progressbar/v3"
)

// ClipNDVIByShapefile crops a raster to the footprint of a vector boundary.
// The boundary is reprojected to the raster's reference system when the two
// differ; the raster itself is never reprojected. Pixels inside the cropped
// window but outside the geometry are filled with the raster's nodata value
// (or 0 when none is declared). A boundary that does not overlap the raster
// at all is an error, not a zero-size output.
func ClipNDVIByShapefile(ndviRasterPath, shapefilePath, outputPath string) (string, error) {
	b, err := boundary.Load(shapefilePath)
	if err != nil {
		return "", err
	}

	ds, err := openRaster(ndviRasterPath)
	if err != nil {
		return "", fmt.Errorf("failed to open raster %s: %v", ndviRasterPath, err)
	}
	defer ds.Close()

	profile, err := raster.ReadProfile(ds)
	if err != nil {
		return "", err
	}

	if err := b.ReprojectTo(profile.ProjectionWKT); err != nil {
		return "", err
	}

	win, ok := raster.WindowFromBound(profile.GeoTransform, b.Bound(), profile.Width, profile.Height)
	if !ok {
		return "", fmt.Errorf("%w: %s does not overlap %s", raster.ErrEmptyIntersection, shapefilePath, ndviRasterPath)
	}
	croppedGT := win.Transform(profile.GeoTransform)

	fill := 0.0
	if profile.NoData != nil {
		fill = *profile.NoData
	}

	fmt.Printf("Clipping raster %s...\n", ndviRasterPath)
	bands := make([][][]float64, profile.Bands)
	progressBar := progressbar.Default(int64(profile.Bands*win.Height), "Masking pixels")
	for bi := 1; bi <= profile.Bands; bi++ {
		data, err := raster.ReadBandWindow(ds, bi, win)
		if err != nil {
			return "", err
		}
		for i := range data {
			y := croppedGT[3] + (float64(i)+0.5)*croppedGT[5]
			for j := range data[i] {
				x := croppedGT[0] + (float64(j)+0.5)*croppedGT[1]
				if !b.Contains(orb.Point{x, y}) {
					data[i][j] = fill
				}
			}
			progressBar.Add(1)
		}
		bands[bi-1] = data
	}

	outProfile := profile
	outProfile.Width = win.Width
	outProfile.Height = win.Height
	outProfile.GeoTransform = croppedGT

	if err := raster.Write(outputPath, outProfile, bands, nil); err != nil {
		return "", err
	}

	fmt.Printf("Clipped raster saved to: %s\n", outputPath)
	return outputPath, nil
}
