package soundstage

import "testing"

func TestVecMapInsertRejectsDuplicateAndOverCapacity(t *testing.T) {
	m := newVecMap[int, string](2)
	if !m.Insert(1, "a") {
		t.Fatal("first insert should succeed")
	}
	if m.Insert(1, "b") {
		t.Fatal("duplicate key insert should fail")
	}
	if !m.Insert(2, "b") {
		t.Fatal("second insert should succeed")
	}
	if m.Insert(3, "c") {
		t.Fatal("insert over capacity should fail")
	}
	if !m.Full() {
		t.Error("Full() should report true at capacity")
	}
}

func TestVecMapRemovePreservesOrder(t *testing.T) {
	m := newVecMap[int, string](4)
	m.Insert(1, "a")
	m.Insert(2, "b")
	m.Insert(3, "c")
	m.Remove(2)

	want := []int{1, 3}
	got := m.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestVecMapOldestTracksInsertionOrder(t *testing.T) {
	m := newVecMap[int, string](4)
	if _, ok := m.Oldest(); ok {
		t.Fatal("Oldest() on empty map should report false")
	}
	m.Insert(5, "x")
	m.Insert(6, "y")
	oldest, ok := m.Oldest()
	if !ok || oldest != 5 {
		t.Errorf("Oldest() = %v, %v, want 5, true", oldest, ok)
	}
	m.Remove(5)
	oldest, ok = m.Oldest()
	if !ok || oldest != 6 {
		t.Errorf("Oldest() after remove = %v, %v, want 6, true", oldest, ok)
	}
}

func TestVecMapEachVisitsInInsertionOrder(t *testing.T) {
	m := newVecMap[int, string](4)
	m.Insert(3, "c")
	m.Insert(1, "a")
	m.Insert(2, "b")

	var seen []int
	m.Each(func(k int, v string) {
		seen = append(seen, k)
	})
	want := []int{3, 1, 2}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("Each order[%d] = %d, want %d", i, seen[i], want[i])
		}
	}
}

func TestVecMapGetMissing(t *testing.T) {
	m := newVecMap[int, string](1)
	if _, ok := m.Get(99); ok {
		t.Error("Get on missing key should report false")
	}
}
