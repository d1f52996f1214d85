package cache

import (
	"context"
	"errors"
	"testing"
)

func TestNoopAlwaysMisses(t *testing.T) {
	c := NewNoop()
	ctx := context.Background()

	if err := c.Set(ctx, "k", 1, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	var v int
	if err := c.Get(ctx, "k", &v); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Get error = %v, want ErrCacheMiss", err)
	}
}

func TestNoopGetOrSetCallsFetcher(t *testing.T) {
	c := NewNoop()
	type item struct {
		Name string `json:"name"`
	}

	calls := 0
	var got []item
	err := c.GetOrSet(context.Background(), "k", 0, func() (interface{}, error) {
		calls++
		return []item{{Name: "Haute saison"}}, nil
	}, &got)
	if err != nil {
		t.Fatalf("GetOrSet: %v", err)
	}
	if calls != 1 || len(got) != 1 || got[0].Name != "Haute saison" {
		t.Fatalf("calls=%d got=%v", calls, got)
	}
}

func TestNoopGetOrSetPropagatesFetcherError(t *testing.T) {
	want := errors.New("db down")
	var dest int
	err := NewNoop().GetOrSet(context.Background(), "k", 0, func() (interface{}, error) {
		return nil, want
	}, &dest)
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}
