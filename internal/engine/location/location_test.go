package location

import "testing"

func TestEqual(t *testing.T) {
	a := Index(1, 2)
	b := Index(1, 2)
	c := Index(1, 3)
	if !a.Equal(b) {
		t.Error("identical paths should be equal")
	}
	if a.Equal(c) {
		t.Error("different paths should not be equal")
	}
}

func TestChildAndAttr(t *testing.T) {
	loc := Root.Child(0).Child(2).Attr("textContent")
	if got, want := loc.Len(), 3; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if idx, isIndex := loc.IndexAt(1); !isIndex || idx != 2 {
		t.Errorf("IndexAt(1) = (%d, %v), want (2, true)", idx, isIndex)
	}
	if _, isIndex := loc.IndexAt(2); isIndex {
		t.Error("attribute-name leaf should not report as an index")
	}
}

func TestTransformShiftsAtOrAfterEditPoint(t *testing.T) {
	base := Index(0, 1) // insertion/removal among body's children at index 1
	loc := Index(0, 3)
	got := Transform(base, loc, 1)
	want := Index(0, 4)
	if !got.Equal(want) {
		t.Errorf("Transform() = %v, want %v", got, want)
	}
}

func TestTransformShiftsAtExactEditIndex(t *testing.T) {
	base := Index(0, 1)
	loc := Index(0, 1)
	got := Transform(base, loc, 1)
	want := Index(0, 2)
	if !got.Equal(want) {
		t.Errorf("Transform() = %v, want %v (base index <= loc index shifts)", got, want)
	}
}

func TestTransformLeavesEarlierSiblingUnchanged(t *testing.T) {
	base := Index(0, 2)
	loc := Index(0, 1)
	got := Transform(base, loc, 1)
	if !got.Equal(loc) {
		t.Errorf("Transform() = %v, want unchanged %v", got, loc)
	}
}

func TestTransformLeavesDifferentSubtreeUnchanged(t *testing.T) {
	base := Index(0, 1) // edit under child 0
	loc := Index(1, 0)  // location under a different child, 1
	got := Transform(base, loc, 1)
	if !got.Equal(loc) {
		t.Errorf("Transform() = %v, want unchanged %v", got, loc)
	}
}

func TestTransformOnAttributePathIsNoOp(t *testing.T) {
	base := Index(0, 1).Attr("textContent")
	loc := Index(0, 1).Attr("textContent")
	got := Transform(base, loc, 1)
	if !got.Equal(loc) {
		t.Errorf("Transform() on a string leaf must be a no-op, got %v want %v", got, loc)
	}
}

func TestTransformShorterLocationUnchanged(t *testing.T) {
	base := Index(0, 1, 2)
	loc := Index(0)
	got := Transform(base, loc, 1)
	if !got.Equal(loc) {
		t.Errorf("Transform() with loc shorter than base should be a no-op, got %v want %v", got, loc)
	}
}

func TestTransformNegativeDeltaForRemoval(t *testing.T) {
	base := Index(0, 1)
	loc := Index(0, 3)
	got := Transform(base, loc, -1)
	want := Index(0, 2)
	if !got.Equal(want) {
		t.Errorf("Transform() with removal = %v, want %v", got, want)
	}
}
