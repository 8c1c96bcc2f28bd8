package httpx

import (
	"context"
	"errors"
	"testing"
)

// pagedSource simulates a capped collection endpoint over a fixed item set.
type pagedSource struct {
	items       []int
	reportTotal bool
	calls       int
}

func (s *pagedSource) fetch(_ context.Context, offset, limit int) (Page[int], error) {
	s.calls++
	if offset >= len(s.items) {
		return Page[int]{Total: s.total()}, nil
	}
	end := offset + limit
	if end > len(s.items) {
		end = len(s.items)
	}
	return Page[int]{Items: s.items[offset:end], Total: s.total()}, nil
}

func (s *pagedSource) total() int {
	if s.reportTotal {
		return len(s.items)
	}
	return 0
}

func sequence(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestPagedCollectsEveryItemInOrder(t *testing.T) {
	src := &pagedSource{items: sequence(250), reportTotal: true}

	got, err := Paged(context.Background(), 100, src.fetch)
	if err != nil {
		t.Fatalf("Paged: %v", err)
	}
	if len(got) != 250 {
		t.Fatalf("got %d items, want 250", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("item %d out of order: got %d", i, v)
		}
	}
	if src.calls != 3 {
		t.Errorf("got %d requests, want 3", src.calls)
	}
}

func TestPagedStopsOnShortPageWithoutTotal(t *testing.T) {
	src := &pagedSource{items: sequence(150)}

	got, err := Paged(context.Background(), 100, src.fetch)
	if err != nil {
		t.Fatalf("Paged: %v", err)
	}
	if len(got) != 150 {
		t.Errorf("got %d items, want 150", len(got))
	}
	if src.calls != 2 {
		t.Errorf("got %d requests, want 2", src.calls)
	}
}

func TestPagedExactMultipleUsesReportedTotal(t *testing.T) {
	src := &pagedSource{items: sequence(200), reportTotal: true}

	got, err := Paged(context.Background(), 100, src.fetch)
	if err != nil {
		t.Fatalf("Paged: %v", err)
	}
	if len(got) != 200 {
		t.Errorf("got %d items, want 200", len(got))
	}
	// The reported total makes a third, empty request unnecessary.
	if src.calls != 2 {
		t.Errorf("got %d requests, want 2", src.calls)
	}
}

func TestPagedEmptyCollection(t *testing.T) {
	src := &pagedSource{reportTotal: true}

	got, err := Paged(context.Background(), 100, src.fetch)
	if err != nil {
		t.Fatalf("Paged: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d items, want 0", len(got))
	}
	if src.calls != 1 {
		t.Errorf("got %d requests, want 1", src.calls)
	}
}

func TestPagedPropagatesFetchError(t *testing.T) {
	boom := errors.New("upstream down")
	_, err := Paged(context.Background(), 100, func(context.Context, int, int) (Page[int], error) {
		return Page[int]{}, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("got %v, want wrapped upstream error", err)
	}
}
