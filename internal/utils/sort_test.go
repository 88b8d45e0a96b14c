package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"c.tif": 3, "a.tif": 1, "b.tif": 2}

	assert.Equal(t, []string{"a.tif", "b.tif", "c.tif"}, SortedKeys(m))
	assert.Empty(t, SortedKeys(map[int]string{}))
}
