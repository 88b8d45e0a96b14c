package raster

// NoDataMask marks every position where either band equals the declared
// nodata sentinel. When the dataset declares no sentinel the mask is
// all-false and nothing propagates.
func NoDataMask(red, nir [][]float64, nodata *float64) [][]bool {
	mask := make([][]bool, len(red))
	for i := range red {
		mask[i] = make([]bool, len(red[i]))
		if nodata == nil {
			continue
		}
		for j := range red[i] {
			if red[i][j] == *nodata || nir[i][j] == *nodata {
				mask[i][j] = true
			}
		}
	}
	return mask
}

// ApplyNoData overwrites every masked element with the sentinel value.
func ApplyNoData(values [][]float64, mask [][]bool, sentinel float64) {
	for i := range values {
		for j := range values[i] {
			if mask[i][j] {
				values[i][j] = sentinel
			}
		}
	}
}

// ValidValues collects the unmasked elements. Masked positions are skipped
// entirely so later statistics never see them.
func ValidValues(values [][]float64, mask [][]bool) []float64 {
	valid := []float64{}
	for i := range values {
		for j := range values[i] {
			if !mask[i][j] {
				valid = append(valid, values[i][j])
			}
		}
	}
	return valid
}
