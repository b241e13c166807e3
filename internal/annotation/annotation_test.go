package annotation

import (
	"image"
	"testing"
)

func TestStoreAddKeepsOrderAndDuplicates(t *testing.T) {
	s := NewStore()
	s.Add(image.Pt(5, 5), nil)
	s.Add(image.Pt(5, 5), nil)
	s.Add(image.Pt(-3, 900), &Angles{Elevation: 10, Bearing: 20})
	if s.Len() != 3 {
		t.Fatalf("expected 3 dots, got %d", s.Len())
	}
	all := s.All()
	if all[2].X != -3 || all[2].Y != 900 || all[2].Angles == nil {
		t.Errorf("unexpected last dot %v", all[2])
	}
	if all[0].ID == all[1].ID {
		t.Error("duplicate dots should have distinct IDs")
	}
}

func TestStoreAllIsCopy(t *testing.T) {
	s := NewStore()
	s.Add(image.Pt(1, 2), &Angles{Elevation: 1, Bearing: 2})
	all := s.All()
	all[0].X = 99
	all[0].Angles.Bearing = 99
	got := s.All()[0]
	if got.X != 1 || got.Angles.Bearing != 2 {
		t.Errorf("store mutated through copy: %v", got)
	}
}

func TestFindNear(t *testing.T) {
	s := NewStore()
	s.Add(image.Pt(10, 10), nil)
	s.Add(image.Pt(50, 50), nil)

	if d, ok := s.FindNear(image.Pt(12, 8), 2); !ok || d.X != 10 {
		t.Errorf("expected (10,10) within tolerance 2, got %v %v", d, ok)
	}
	if _, ok := s.FindNear(image.Pt(13, 10), 2); ok {
		t.Error("expected no match outside tolerance")
	}
	if d, ok := s.FindNear(image.Pt(50, 50), 0); !ok || d.Y != 50 {
		t.Errorf("expected exact match, got %v %v", d, ok)
	}
}

func TestRemove(t *testing.T) {
	s := NewStore()
	s.Add(image.Pt(1, 1), nil)
	s.Add(image.Pt(2, 2), nil)
	s.Add(image.Pt(1, 1), nil)

	if !s.Remove(Dot{X: 1, Y: 1}) {
		t.Fatal("expected value removal to succeed")
	}
	all := s.All()
	if len(all) != 2 || all[0].X != 2 || all[1].X != 1 {
		t.Fatalf("expected first (1,1) removed only, got %v", all)
	}
	if !s.Remove(all[1]) {
		t.Fatal("expected removal by ID to succeed")
	}
	if s.Remove(Dot{X: 7, Y: 7}) {
		t.Error("removing a missing dot should report false")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 dot left, got %d", s.Len())
	}
}

func TestRecomputeKeepsPositions(t *testing.T) {
	s := NewStore()
	s.Add(image.Pt(3, 4), nil)
	s.Add(image.Pt(6, 8), &Angles{Elevation: 1, Bearing: 1})
	s.Recompute(func(p image.Point) *Angles {
		return &Angles{Elevation: float64(p.X), Bearing: float64(p.Y)}
	})
	all := s.All()
	if len(all) != 2 {
		t.Fatalf("recompute dropped dots: %v", all)
	}
	for _, d := range all {
		if d.Angles == nil {
			t.Fatalf("dot %v has no angles", d)
		}
		if d.Angles.Elevation != float64(d.X) || d.Angles.Bearing != float64(d.Y) {
			t.Errorf("unexpected angles for %v", d)
		}
	}
	if all[0].X != 3 || all[1].X != 6 {
		t.Errorf("order or positions changed: %v", all)
	}
}
