package id

import "testing"

func TestUUIDGenerator_NewID(t *testing.T) {
	t.Parallel()

	gen := NewUUIDGenerator()
	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first == second {
		t.Fatalf("expected distinct ids, got %s twice", first)
	}
	if !IsValid(first) || !IsValid(second) {
		t.Fatalf("expected valid uuids got=%s,%s", first, second)
	}
	if IsValid("not-a-uuid") {
		t.Fatalf("expected invalid uuid to be rejected")
	}
}

func TestSequenceGenerator(t *testing.T) {
	t.Parallel()

	gen := &SequenceGenerator{Prefix: "match"}
	a, _ := gen.NewID()
	b, _ := gen.NewID()
	if a != "match-1" || b != "match-2" {
		t.Fatalf("got=%s,%s", a, b)
	}
}
