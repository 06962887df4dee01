package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationBucketMillis(t *testing.T) {
	assert.Equal(t, int64(1_800_000), Duration30m.Millis())
	assert.Equal(t, int64(3_600_000), Duration1h.Millis())
	assert.Equal(t, int64(10_800_000), Duration3h.Millis())
	assert.Equal(t, int64(0), DurationBucket("2h").Millis())
}

func TestDurationBucketValid(t *testing.T) {
	assert.True(t, Duration30m.Valid())
	assert.True(t, Duration1h.Valid())
	assert.True(t, Duration3h.Valid())
	assert.False(t, DurationBucket("").Valid())
	assert.False(t, DurationBucket("45m").Valid())
}

func TestDurationBucketWindow(t *testing.T) {
	assert.Equal(t, 30*time.Minute, Duration30m.Window())
	assert.Equal(t, 3*time.Hour, Duration3h.Window())
}

func TestDirectionValid(t *testing.T) {
	assert.True(t, DirectionLong.Valid())
	assert.True(t, DirectionShort.Valid())
	assert.False(t, Direction("hold").Valid())
}
