package dreamtable

import (
	"strings"
	"testing"
)

func TestEntityPoolReservesZero(t *testing.T) {
	p := newEntityPool()
	e := p.create()
	if e.Index() == 0 {
		t.Fatal("first entity got reserved index 0")
	}
	if p.alive(NoEntity) {
		t.Error("NoEntity reported alive")
	}
}

func TestEntityPoolRecyclesWithNewGeneration(t *testing.T) {
	p := newEntityPool()
	a := p.create()
	if !p.destroy(a) {
		t.Fatal("destroy(a) = false")
	}
	if p.destroy(a) {
		t.Error("double destroy returned true")
	}
	b := p.create()
	if b.Index() != a.Index() {
		t.Fatalf("index not recycled: %d vs %d", b.Index(), a.Index())
	}
	if b.Generation() == a.Generation() {
		t.Error("recycled entity kept its generation")
	}
	if p.alive(a) {
		t.Error("stale handle reported alive")
	}
	if !p.alive(b) {
		t.Error("new handle not alive")
	}
	if p.live != 1 {
		t.Errorf("live = %d, want 1", p.live)
	}
}

type testComp struct{ N int }

func TestStoreSetGetRemove(t *testing.T) {
	s := NewStore[testComp]()
	e1, e2, e3 := newEntity(1, 0), newEntity(2, 0), newEntity(3, 0)
	s.Set(e1, testComp{1})
	s.Set(e2, testComp{2})
	s.Set(e3, testComp{3})

	s.Remove(e1)
	if s.Has(e1) {
		t.Error("e1 still present after Remove")
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
	for _, e := range []Entity{e2, e3} {
		v, ok := s.Get(e)
		if !ok || v.N != int(e.Index()) {
			t.Errorf("Get(%d) = %v, %v after swap-remove", e.Index(), v, ok)
		}
	}
	s.Remove(e1) // no-op
	if s.Len() != 2 {
		t.Errorf("Len = %d after removing absent entity", s.Len())
	}
}

func TestStoreSetReplacesInPlace(t *testing.T) {
	s := NewStore[testComp]()
	e := newEntity(1, 0)
	p := s.Set(e, testComp{1})
	q := s.Set(e, testComp{2})
	if p != q {
		t.Error("Set on existing entity returned a new pointer")
	}
	if p.N != 2 {
		t.Errorf("N = %d, want 2", p.N)
	}
}

func TestStoreMustGetPanicsWithTypeName(t *testing.T) {
	s := NewStore[testComp]()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustGet did not panic")
		}
		msg, _ := r.(string)
		if msg == "" || !strings.Contains(msg, "testComp") {
			t.Errorf("panic message %q does not name the component", r)
		}
	}()
	s.MustGet(newEntity(7, 0))
}

func TestStoreEachToleratesRemoval(t *testing.T) {
	s := NewStore[testComp]()
	for i := uint32(1); i <= 4; i++ {
		s.Set(newEntity(i, 0), testComp{int(i)})
	}
	seen := 0
	s.Each(func(e Entity, _ *testComp) {
		seen++
		// Removing another entity mid-walk must not revisit or skip
		// anything still present.
		s.Remove(newEntity(4, 0))
	})
	if seen != 3 {
		t.Errorf("visited %d entities, want 3", seen)
	}
}

func TestEachJoinsOnSmallestStore(t *testing.T) {
	pos := NewStore[Position]()
	ext := NewStore[Extent]()
	hov := NewStore[Hoverable]()
	for i := uint32(1); i <= 10; i++ {
		pos.Set(newEntity(i, 0), Position{})
	}
	ext.Set(newEntity(2, 0), Extent{})
	ext.Set(newEntity(5, 0), Extent{})
	hov.Set(newEntity(5, 0), Hoverable{})
	hov.Set(newEntity(6, 0), Hoverable{})

	var got []Entity
	Each3(pos, ext, hov, func(e Entity, _ *Position, _ *Extent, _ *Hoverable) {
		got = append(got, e)
	})
	if len(got) != 1 || got[0] != newEntity(5, 0) {
		t.Errorf("Each3 = %v, want [5]", got)
	}

	n := 0
	Each2(pos, ext, func(Entity, *Position, *Extent) { n++ })
	if n != 2 {
		t.Errorf("Each2 visited %d, want 2", n)
	}
}

func TestComponentsCoverEveryStore(t *testing.T) {
	c := newComponents()
	names := make(map[string]bool)
	for _, s := range c.all {
		if names[s.name()] {
			t.Errorf("store %s registered twice", s.name())
		}
		names[s.name()] = true
	}
	for _, want := range []string{"Position", "Extent", "Camera", "Image", "CellRefs", "Glide"} {
		if !names[want] {
			t.Errorf("store %s missing from Components.all", want)
		}
	}
}
