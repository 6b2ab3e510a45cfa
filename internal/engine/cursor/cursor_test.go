package cursor

import (
	"reflect"
	"testing"
)

func TestCollapsedIsCollapsed(t *testing.T) {
	s := Collapsed("b1", 3)
	if !s.IsCollapsed() {
		t.Error("Collapsed() should report IsCollapsed true")
	}
	if s.ID() != "b1" || s.Offset() != 3 {
		t.Errorf("ID/Offset = %q/%d, want b1/3", s.ID(), s.Offset())
	}
}

func TestOpenIsNotCollapsed(t *testing.T) {
	s := Open("b1", 0, "b2", 4)
	if s.IsCollapsed() {
		t.Error("Open() spanning two blocks should not be collapsed")
	}
}

func TestTransformOffsetEditBefore(t *testing.T) {
	if got := TransformOffset(10, 0, 2, 5); got != 13 {
		t.Errorf("TransformOffset() = %d, want 13", got)
	}
}

func TestTransformOffsetEditAfter(t *testing.T) {
	if got := TransformOffset(3, 5, 2, 5); got != 3 {
		t.Errorf("TransformOffset() = %d, want 3", got)
	}
}

func TestTransformOffsetEditSpans(t *testing.T) {
	if got := TransformOffset(4, 2, 5, 1); got != 3 {
		t.Errorf("TransformOffset() = %d, want 3", got)
	}
}

func TestTransformOnlyAffectsMatchingBlock(t *testing.T) {
	s := Open("b1", 3, "b2", 2)
	got := Transform(s, "b1", 0, 0, 2)
	want := Open("b1", 5, "b2", 2)
	if got != want {
		t.Errorf("Transform() = %+v, want %+v", got, want)
	}
}

func TestClamp(t *testing.T) {
	s := Open("b1", 10, "b2", -1)
	lengths := map[string]int{"b1": 4, "b2": 3}
	got := Clamp(s, func(id string) int { return lengths[id] })
	want := Open("b1", 4, "b2", 0)
	if got != want {
		t.Errorf("Clamp() = %+v, want %+v", got, want)
	}
}

func TestSplitByBlocksCollapsed(t *testing.T) {
	s := Collapsed("b1", 2)
	got := SplitByBlocks(s, []string{"b1", "b2"}, func(string) int { return 0 })
	want := []State{s}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitByBlocks() = %+v, want %+v", got, want)
	}
}

func TestSplitByBlocksSingleBlock(t *testing.T) {
	s := Open("b1", 1, "b1", 4)
	got := SplitByBlocks(s, []string{"b1", "b2"}, func(string) int { return 10 })
	want := []State{Open("b1", 1, "b1", 4)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitByBlocks() = %+v, want %+v", got, want)
	}
}

func TestSplitByBlocksThreeBlocks(t *testing.T) {
	s := Open("b1", 3, "b3", 2)
	order := []string{"b1", "b2", "b3"}
	lengths := map[string]int{"b1": 5, "b2": 4, "b3": 6}
	got := SplitByBlocks(s, order, func(id string) int { return lengths[id] })

	want := []State{
		Open("b1", 3, "b1", 5),
		Open("b2", 0, "b2", 4),
		Open("b3", 0, "b3", 2),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitByBlocks() = %+v, want %+v", got, want)
	}
}

func TestSplitByBlocksUnknownEndpoint(t *testing.T) {
	s := Open("b1", 0, "ghost", 1)
	got := SplitByBlocks(s, []string{"b1", "b2"}, func(string) int { return 0 })
	if got != nil {
		t.Errorf("SplitByBlocks() with an unknown endpoint = %+v, want nil", got)
	}
}
