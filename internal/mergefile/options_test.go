package mergefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionsWithDefaults(t *testing.T) {
	assert.Equal(t, DefaultOptions(), Options{}.withDefaults())

	custom := Options{OurLabel: "HEAD", BaseLabel: "merged common ancestors", TheirLabel: "feature", Style: StyleDiff3, MarkerSize: 10}
	assert.Equal(t, custom, custom.withDefaults())

	assert.Equal(t, StyleDiff, Options{Style: "bogus"}.withDefaults().Style)
	assert.Equal(t, DefaultMarkerSize, Options{MarkerSize: -3}.withDefaults().MarkerSize)
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, Options{}.Validate())
	assert.NoError(t, DefaultOptions().Validate())
	assert.NoError(t, Options{Style: StyleDiff3, MarkerSize: 10}.Validate())

	assert.Error(t, Options{Style: "merge"}.Validate())
	assert.Error(t, Options{MarkerSize: -1}.Validate())
}
