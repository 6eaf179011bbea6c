package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimestampNormalization(t *testing.T) {
	// 2024-06-15T12:00:00Z expressed in each browser's native encoding.
	want := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC).Unix()

	chromiumMicros := (want + chromiumEpochOffset) * 1_000_000
	firefoxMicros := want * 1_000_000
	safariSeconds := float64(want - safariEpochOffset)

	assert.Equal(t, want, chromiumTimeToUnix(chromiumMicros))
	assert.Equal(t, want, firefoxTimeToUnix(firefoxMicros))
	assert.Equal(t, want, safariTimeToUnix(safariSeconds))
}

func TestTimestampZeroMeansUnknown(t *testing.T) {
	assert.Equal(t, int64(0), chromiumTimeToUnix(0))
	assert.Equal(t, int64(0), firefoxTimeToUnix(0))
	assert.Equal(t, int64(0), safariTimeToUnix(0))
}

func TestSafariFractionalSecondsTruncate(t *testing.T) {
	got := safariTimeToUnix(100.75)
	assert.Equal(t, int64(100)+safariEpochOffset, got)
}
