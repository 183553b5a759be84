package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalGetSet(t *testing.T) {
	count := NewSignal(0)
	assert.Equal(t, 0, count.Get())
	count.Set(1)
	assert.Equal(t, 1, count.Get())
}

func TestEffectRunsOnDependencyChange(t *testing.T) {
	count := NewSignal(0)
	runCount := 0

	NewEffect(func() {
		_ = count.Get()
		runCount++
	})

	assert.Equal(t, 1, runCount)
	count.Set(1)
	assert.Equal(t, 2, runCount)
	count.Set(2)
	assert.Equal(t, 3, runCount)
}

func TestComputedMemoizesUntilDependencyChanges(t *testing.T) {
	count := NewSignal(1)
	evalCount := 0
	double := NewComputed(func() int {
		evalCount++
		return count.Get() * 2
	})

	assert.Equal(t, 2, double.Get())
	assert.Equal(t, 2, double.Get())
	assert.Equal(t, 1, evalCount)

	count.Set(2)
	assert.Equal(t, 4, double.Get())
	assert.Equal(t, 2, evalCount)
}

func TestBatchDefersNotificationUntilOutermostReturns(t *testing.T) {
	a := NewSignal(1)
	b := NewSignal(2)
	runCount := 0

	NewEffect(func() {
		_ = a.Get() + b.Get()
		runCount++
	})
	assert.Equal(t, 1, runCount)

	Batch(func() {
		a.Set(10)
		b.Set(20)
	})
	assert.Equal(t, 2, runCount, "batched updates should coalesce into a single effect run")
}
