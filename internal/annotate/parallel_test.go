package annotate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqann/bedann/internal/bed"
	"github.com/seqann/bedann/internal/catalog"
	"github.com/seqann/bedann/internal/gtf"
)

func makeItems(n int) <-chan WorkItem {
	ch := make(chan WorkItem, n)
	for i := 0; i < n; i++ {
		ch <- WorkItem{
			Seq:      i,
			Interval: bed.Interval{Chrom: "1", Start: int64(i * 10), End: int64(i*10 + 5)},
		}
	}
	close(ch)
	return ch
}

func emptyCatalog() catalog.Catalog {
	return catalog.NewMemory(map[string][]*gtf.Feature{})
}

func TestParallelAnnotate_OrderPreservation(t *testing.T) {
	ann := NewAnnotator(emptyCatalog())

	items := makeItems(200)
	results := ann.ParallelAnnotate(items, 8)

	var collected []int
	err := OrderedCollect(results, func(r WorkResult) error {
		require.NoError(t, r.Err)
		collected = append(collected, r.Seq)
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, collected, 200)
	for i, seq := range collected {
		assert.Equal(t, i, seq, "result %d out of order", i)
	}
}

func TestParallelAnnotate_SingleWorker(t *testing.T) {
	ann := NewAnnotator(emptyCatalog())

	items := makeItems(50)
	results := ann.ParallelAnnotate(items, 1)

	var collected []int
	err := OrderedCollect(results, func(r WorkResult) error {
		collected = append(collected, r.Seq)
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, collected, 50)
	for i, seq := range collected {
		assert.Equal(t, i, seq)
	}
}

func TestParallelAnnotate_PlaceholderPerInterval(t *testing.T) {
	ann := NewAnnotator(emptyCatalog())

	items := makeItems(10)
	results := ann.ParallelAnnotate(items, 4)

	err := OrderedCollect(results, func(r WorkResult) error {
		require.NoError(t, r.Err)
		require.Len(t, r.Rows, 1)
		assert.True(t, r.Rows[0].IsPlaceholder())
		return nil
	})
	require.NoError(t, err)
}

func TestOrderedCollect_ErrorStopsAndDrains(t *testing.T) {
	ann := NewAnnotator(emptyCatalog())

	items := makeItems(100)
	results := ann.ParallelAnnotate(items, 4)

	calls := 0
	err := OrderedCollect(results, func(r WorkResult) error {
		calls++
		if r.Seq == 3 {
			return errors.New("sink failed")
		}
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, 4, calls)
}
