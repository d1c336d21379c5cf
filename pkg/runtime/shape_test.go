package runtime

import "testing"

func TestShapeAddGetKeepsInsertionOrder(t *testing.T) {
	s := NewShape()
	s.Add(StringKey("a"), CompleteDataDescriptor(), 0)
	s.Add(StringKey("b"), CompleteDataDescriptor(), 1)
	s.Add(StringKey("c"), CompleteDataDescriptor(), 2)

	keys := s.Keys()
	want := []string{"a", "b", "c"}
	for i, w := range want {
		if keys[i].String() != w {
			t.Fatalf("Keys()[%d] = %q, want %q", i, keys[i].String(), w)
		}
	}
}

func TestShapeRemoveTombstonesAndHidesKey(t *testing.T) {
	s := NewShape()
	s.Add(StringKey("a"), CompleteDataDescriptor(), 0)
	s.Add(StringKey("b"), CompleteDataDescriptor(), 1)

	if !s.Remove(StringKey("a")) {
		t.Fatalf("Remove(a) should succeed")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if s.GetOffset(StringKey("a")) != tombstoneSlot {
		t.Fatalf("removed key must report the tombstone slot")
	}
	for _, k := range s.Keys() {
		if k.String() == "a" {
			t.Fatalf("Keys() must not include a removed key")
		}
	}
}

func TestShapeCompactRenumbersSlots(t *testing.T) {
	s := NewShape()
	s.Add(StringKey("a"), CompleteDataDescriptor(), 0)
	s.Add(StringKey("b"), CompleteDataDescriptor(), 1)
	s.Add(StringKey("c"), CompleteDataDescriptor(), 2)
	s.Remove(StringKey("b"))

	permutation := s.Compact()
	if s.Len() != 2 {
		t.Fatalf("Len() after compact = %d, want 2", s.Len())
	}
	if len(permutation) != 2 {
		t.Fatalf("permutation length = %d, want 2", len(permutation))
	}
	// Old slot 0 ("a") and old slot 2 ("c") survive, in that order.
	if permutation[0] != 0 || permutation[1] != 2 {
		t.Fatalf("permutation = %v, want [0 2]", permutation)
	}
	if s.GetOffset(StringKey("a")) != 0 {
		t.Fatalf("a's new slot = %d, want 0", s.GetOffset(StringKey("a")))
	}
	if s.GetOffset(StringKey("c")) != 1 {
		t.Fatalf("c's new slot = %d, want 1", s.GetOffset(StringKey("c")))
	}
}

func TestShapeShouldCompactThreshold(t *testing.T) {
	s := NewShape()
	for i := 0; i < 20; i++ {
		s.Add(IndexKey(uint32(i)), CompleteDataDescriptor(), i)
	}
	for i := 0; i < 8; i++ {
		s.Remove(IndexKey(uint32(i)))
	}
	if !s.ShouldCompact() {
		t.Fatalf("ShouldCompact() should be true once tombstones cross the threshold")
	}
}
