package store

import (
	"testing"
)

func TestMemStoreGetStoredValue(t *testing.T) {
	store := NewMemStore()

	store.Set("key1", "value1")
	store.Set("key2", "value2")

	if value, ok := store.Get("key1"); !ok || value != "value1" {
		t.Fatalf("Expected %q got %q or value is missing", "value1", value)
	}
	if value, ok := store.Get("key2"); !ok || value != "value2" {
		t.Fatalf("Expected %q got %q or value is missing", "value2", value)
	}
}

func TestMemStoreOverwrite(t *testing.T) {
	store := NewMemStore()

	store.Set("key1", "value1")
	before := store.Len()

	store.Set("key1", "value2")
	if value, ok := store.Get("key1"); !ok || value != "value2" {
		t.Fatalf("Expected %q got %q or value is missing", "value2", value)
	}
	if store.Len() != before {
		t.Fatalf("overwrite changed cardinality: %d -> %d", before, store.Len())
	}
}

func TestMemStoreGetMissingValue(t *testing.T) {
	store := NewMemStore()

	store.Set("key1", "value1")

	if value, ok := store.Get("key2"); ok || value != "" {
		t.Fatalf("Expected key2 to be missing, got %q", value)
	}
	if store.Len() != 1 {
		t.Fatalf("get changed cardinality to %d", store.Len())
	}
}

func TestMemStoreRemove(t *testing.T) {
	tests := []struct {
		name    string
		initial map[string]string
		key     string
		wantLen int
	}{
		{name: "present key", initial: map[string]string{"a": "1", "b": "2"}, key: "a", wantLen: 1},
		{name: "absent key", initial: map[string]string{"b": "2"}, key: "a", wantLen: 1},
		{name: "empty store", initial: nil, key: "a", wantLen: 0},
		{name: "empty key", initial: map[string]string{"": "x"}, key: "", wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemStore()
			for k, v := range tt.initial {
				store.Set(k, v)
			}

			store.Remove(tt.key)

			if _, ok := store.Get(tt.key); ok {
				t.Fatalf("Expected %q to be missing after remove", tt.key)
			}
			if store.Len() != tt.wantLen {
				t.Fatalf("Expected len %d got %d", tt.wantLen, store.Len())
			}
		})
	}
}

func TestMemStoreEmptyKeyAndValue(t *testing.T) {
	store := NewMemStore()

	store.Set("", "")

	value, ok := store.Get("")
	if !ok {
		t.Fatal("Expected empty key to be present")
	}
	if value != "" {
		t.Fatalf("Expected empty value got %q", value)
	}
	if store.Len() != 1 {
		t.Fatalf("Expected len 1 got %d", store.Len())
	}
}

func TestMemStoreScenario(t *testing.T) {
	store := NewMemStore()

	steps := []struct {
		do      func()
		wantLen int
		key     string
		want    string
		found   bool
	}{
		{do: func() { store.Set("a", "1") }, wantLen: 1, key: "a", want: "1", found: true},
		{do: func() { store.Set("a", "2") }, wantLen: 1, key: "a", want: "2", found: true},
		{do: func() { store.Set("b", "3") }, wantLen: 2, key: "b", want: "3", found: true},
		{do: func() { store.Remove("a") }, wantLen: 1, key: "a", found: false},
		{do: func() { store.Remove("a") }, wantLen: 1, key: "a", found: false},
	}

	for i, step := range steps {
		step.do()
		if store.Len() != step.wantLen {
			t.Fatalf("step %d: Expected len %d got %d", i, step.wantLen, store.Len())
		}
		value, ok := store.Get(step.key)
		if ok != step.found || value != step.want {
			t.Fatalf("step %d: Get(%q) = %q, %v; want %q, %v", i, step.key, value, ok, step.want, step.found)
		}
	}
}

func TestMemStoreReturnedValueIsIndependent(t *testing.T) {
	store := NewMemStore()

	buf := []byte("original")
	store.Set("k", string(buf))
	buf[0] = 'X'

	got, _ := store.Get("k")
	if got != "original" {
		t.Fatalf("caller buffer leaked into store: %q", got)
	}

	store.Set("k", "changed")
	if got != "original" {
		t.Fatalf("returned value changed after overwrite: %q", got)
	}

	store.Remove("k")
	if got != "original" {
		t.Fatalf("returned value changed after remove: %q", got)
	}
}
