package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreams_SameSeedSameSequence(t *testing.T) {
	a, b := NewStreams(42), NewStreams(42)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Get(RouterStream).Float64(), b.Get(RouterStream).Float64(), "draw %d", i)
	}
}

func TestStreams_DrawsOnOneStreamLeaveOthersUntouched(t *testing.T) {
	// GIVEN a stream set where sensor_0 has been drawn from heavily
	busy := NewStreams(42)
	for i := 0; i < 10; i++ {
		busy.Get(SensorStream(0)).ExpFloat64()
	}

	// THEN the router stream starts exactly where a fresh one does
	fresh := NewStreams(42)
	assert.Equal(t, fresh.Get(RouterStream).Float64(), busy.Get(RouterStream).Float64())
}

func TestStreams_GetReturnsCachedInstance(t *testing.T) {
	s := NewStreams(7)
	assert.Same(t, s.Get("x"), s.Get("x"))
	assert.Equal(t, int64(7), s.Seed())
}

func TestStreams_SensorsAreDistinct(t *testing.T) {
	s := NewStreams(42)
	assert.NotEqual(t, s.Get(SensorStream(0)).Float64(), s.Get(SensorStream(1)).Float64())
}

func TestStreams_ExtremeSeeds(t *testing.T) {
	for _, seed := range []int64{0, -1, math.MaxInt64, math.MinInt64} {
		v := NewStreams(seed).Get(RouterStream).Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestSensorStream_Name(t *testing.T) {
	assert.Equal(t, "sensor_3", SensorStream(3))
}
