package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBTimeScan(t *testing.T) {
	want := time.Date(2025, 3, 4, 13, 30, 0, 123000000, time.UTC)

	inputs := []any{
		"2025-03-04 13:30:00.123000000+00:00",
		[]byte("2025-03-04 10:30:00.123-03:00"),
		"2025-03-04T13:30:00.123Z",
		want.In(time.FixedZone("X", 3600)),
	}
	for _, in := range inputs {
		var got DBTime
		require.NoError(t, got.Scan(in), "%v", in)
		assert.True(t, want.Equal(got.Time), "%v scanned as %v", in, got.Time)
		assert.Equal(t, time.UTC, got.Location())
	}

	var zero DBTime
	require.NoError(t, zero.Scan(nil))
	assert.True(t, zero.IsZero())

	assert.Error(t, zero.Scan("yesterday"))
	assert.Error(t, zero.Scan(12))
}
