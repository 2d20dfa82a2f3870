package regret

import (
	"sync"
	"testing"
)

func TestLookupAbsentEntry(t *testing.T) {
	table := NewTable()
	_, _, ok := table.Lookup("infoset-a")
	if ok {
		t.Fatal("expected absent entry to report ok=false")
	}
}

func TestUpdateCreatesZeroedEntry(t *testing.T) {
	table := NewTable()
	table.Update("infoset-a", []float64{1, 2, 3}, nil)

	strategySum, regretSum, ok := table.Lookup("infoset-a")
	if !ok {
		t.Fatal("expected entry to exist after Update")
	}
	if want := []float64{0, 0, 0}; !approxEqual(strategySum, want, 0) {
		t.Errorf("strategySum = %v, want %v", strategySum, want)
	}
	if want := []float64{1, 2, 3}; !approxEqual(regretSum, want, 0) {
		t.Errorf("regretSum = %v, want %v", regretSum, want)
	}
}

func TestUpdateAccumulates(t *testing.T) {
	table := NewTable()
	table.Update("k", []float64{1, 1}, []float64{2, 2})
	table.Update("k", []float64{1, 1}, []float64{2, 2})

	strategySum, regretSum, ok := table.Lookup("k")
	if !ok {
		t.Fatal("expected entry")
	}
	if want := []float64{2, 2}; !approxEqual(regretSum, want, 0) {
		t.Errorf("regretSum = %v, want %v", regretSum, want)
	}
	if want := []float64{4, 4}; !approxEqual(strategySum, want, 0) {
		t.Errorf("strategySum = %v, want %v", strategySum, want)
	}
}

func TestUpdateLengthMismatchIsFatal(t *testing.T) {
	table := NewTable()
	table.Update("k", []float64{1, 2}, nil)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on length mismatch")
		}
	}()
	table.Update("k", []float64{1, 2, 3}, nil)
}

func TestConcurrentUpdatesArePerKeyAtomic(t *testing.T) {
	table := NewTable()
	const workers = 64
	const perWorker = 500

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				table.Update("shared-key", []float64{1}, []float64{1})
			}
		}()
	}
	wg.Wait()

	strategySum, regretSum, ok := table.Lookup("shared-key")
	if !ok {
		t.Fatal("expected entry")
	}
	want := float64(workers * perWorker)
	if regretSum[0] != want || strategySum[0] != want {
		t.Errorf("got regretSum=%v strategySum=%v, want both %v", regretSum, strategySum, want)
	}
}

func TestTableSize(t *testing.T) {
	table := NewTable()
	table.Update("a", []float64{1}, nil)
	table.Update("b", []float64{1}, nil)
	table.Update("a", []float64{1}, nil)

	if got := table.Size(); got != 2 {
		t.Errorf("Size() = %d, want 2", got)
	}
}
