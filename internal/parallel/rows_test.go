package parallel

import (
	"sync/atomic"
	"testing"
)

func TestRowsCoversEveryRowOnce(t *testing.T) {
	orig := Workers()
	t.Cleanup(func() { SetWorkers(orig) })

	for _, w := range []int{1, 2, 3, 8, 64} {
		for _, h := range []int{1, 2, 7, 100, 1025} {
			SetWorkers(w)
			hits := make([]atomic.Int32, h)
			Rows(h, func(y0, y1 int) {
				for y := y0; y < y1; y++ {
					hits[y].Add(1)
				}
			})
			for y := range hits {
				if got := hits[y].Load(); got != 1 {
					t.Fatalf("workers=%d h=%d: row %d visited %d times, want 1", w, h, y, got)
				}
			}
		}
	}
}

func TestRowsEmpty(t *testing.T) {
	called := false
	Rows(0, func(int, int) { called = true })
	if called {
		t.Error("Rows(0) called fn, want no call")
	}
}

func TestSetWorkersDefault(t *testing.T) {
	orig := Workers()
	t.Cleanup(func() { SetWorkers(orig) })

	SetWorkers(-3)
	if Workers() < 1 {
		t.Errorf("Workers() = %d, want >= 1", Workers())
	}
	SetWorkers(5)
	if Workers() != 5 {
		t.Errorf("Workers() = %d, want 5", Workers())
	}
}
