package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextIDsNeverRegress(t *testing.T) {
	agg := Empty()

	assert.Equal(t, 1, agg.NextFairID())
	agg.Fairs = append(agg.Fairs, Fair{ID: 1})
	assert.Equal(t, 2, agg.NextFairID())
	agg.Fairs = append(agg.Fairs, Fair{ID: 2})

	// Deleting the highest-numbered record must not free its id.
	agg.Fairs = agg.Fairs[:1]
	assert.Equal(t, 3, agg.NextFairID())

	// A document written before counters existed starts from the
	// highest id present.
	legacy := Empty()
	legacy.Artisans = append(legacy.Artisans, Artisan{ID: 7})
	assert.Equal(t, 8, legacy.NextArtisanID())
	assert.Equal(t, 8, legacy.Counters.Artisan)
}
