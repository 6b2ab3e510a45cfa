package delta

import "testing"

func TestOpLen(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		want int
	}{
		{"retain", Retain(4), 4},
		{"delete", Delete(3), 3},
		{"insert ascii", Insert("abc"), 3},
		{"insert multibyte", Insert("héllo"), 5},
		{"insert embed", InsertEmbed(map[string]any{"image": "x"}, nil), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.op.Len(); got != tt.want {
				t.Errorf("Len() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDeltaPushMergesAdjacent(t *testing.T) {
	d := New()
	d.Insert("ab").Insert("cd")
	if len(d.Ops) != 1 || d.Ops[0].Text != "abcd" {
		t.Fatalf("adjacent plain inserts should merge, got %+v", d.Ops)
	}

	d2 := New()
	d2.InsertAttrs("ab", map[string]any{"bold": true}).InsertAttrs("cd", map[string]any{"bold": true})
	if len(d2.Ops) != 1 || d2.Ops[0].Text != "abcd" {
		t.Fatalf("inserts with identical attrs should merge, got %+v", d2.Ops)
	}

	d3 := New()
	d3.InsertAttrs("ab", map[string]any{"bold": true}).InsertAttrs("cd", map[string]any{"italic": true})
	if len(d3.Ops) != 2 {
		t.Fatalf("inserts with different attrs must not merge, got %+v", d3.Ops)
	}
}

func TestDeltaPushDropsZeroLength(t *testing.T) {
	d := New()
	d.Insert("").Retain(0).Delete(0).Insert("x")
	if len(d.Ops) != 1 || d.Ops[0].Text != "x" {
		t.Fatalf("zero-length ops should be dropped, got %+v", d.Ops)
	}
}

func TestDeltaPushReordersInsertAfterDelete(t *testing.T) {
	d := New()
	d.Delete(2).Insert("x")
	if len(d.Ops) != 2 {
		t.Fatalf("want 2 ops, got %+v", d.Ops)
	}
	if d.Ops[0].Kind != KindInsert || d.Ops[0].Text != "x" {
		t.Errorf("insert should be reordered before delete, got %+v", d.Ops[0])
	}
	if d.Ops[1].Kind != KindDelete || d.Ops[1].N != 2 {
		t.Errorf("delete should follow, got %+v", d.Ops[1])
	}
}

func TestDeltaPushMergesInsertIntoEarlierInsertAcrossDelete(t *testing.T) {
	d := New()
	d.Insert("a").Delete(2).Insert("b")
	if len(d.Ops) != 2 {
		t.Fatalf("want 2 ops, got %+v", d.Ops)
	}
	if d.Ops[0].Text != "ab" {
		t.Errorf("second insert should merge into the first across the delete, got %+v", d.Ops[0])
	}
	if d.Ops[1].Kind != KindDelete || d.Ops[1].N != 2 {
		t.Errorf("delete should remain second, got %+v", d.Ops[1])
	}
}

func TestDeltaLength(t *testing.T) {
	d := New(Insert("hello"), RetainAttrs(3, map[string]any{"bold": true}), Delete(2))
	if got, want := d.Length(), 5; got != want {
		t.Errorf("Length() = %d, want %d", got, want)
	}
}

func TestDeltaChangeLength(t *testing.T) {
	d := New(Retain(5), Insert("abc"), Delete(2))
	if got, want := d.ChangeLength(), 1; got != want {
		t.Errorf("ChangeLength() = %d, want %d", got, want)
	}
}

func TestDeltaEqual(t *testing.T) {
	a := New(Insert("abc"), RetainAttrs(2, map[string]any{"bold": true}))
	b := New(Insert("abc"), RetainAttrs(2, map[string]any{"bold": true}))
	c := New(Insert("abc"), Retain(2))
	if !a.Equal(b) {
		t.Error("identical deltas should be equal")
	}
	if a.Equal(c) {
		t.Error("deltas differing only in attrs should not be equal")
	}
}

func TestDeltaSlice(t *testing.T) {
	d := New(Insert("0123456789"))

	got := d.Slice(2, 5)
	want := New(Insert("234"))
	if !got.Equal(want) {
		t.Errorf("Slice(2,5) = %+v, want %+v", got.Ops, want.Ops)
	}

	got2 := d.Slice(7)
	want2 := New(Insert("789"))
	if !got2.Equal(want2) {
		t.Errorf("Slice(7) = %+v, want %+v", got2.Ops, want2.Ops)
	}
}

func TestDeltaSliceSpansAttributeBoundary(t *testing.T) {
	d := New(InsertAttrs("abc", map[string]any{"bold": true}), Insert("def"))
	got := d.Slice(1, 5)
	want := New(InsertAttrs("bc", map[string]any{"bold": true}), Insert("de"))
	if !got.Equal(want) {
		t.Errorf("Slice(1,5) = %+v, want %+v", got.Ops, want.Ops)
	}
}

func TestDeltaConcat(t *testing.T) {
	a := New(Insert("abc"))
	b := New(Insert("def"))
	got := a.Concat(b)
	want := New(Insert("abcdef"))
	if !got.Equal(want) {
		t.Errorf("Concat() = %+v, want %+v", got.Ops, want.Ops)
	}
}

func TestComposeInsertOntoInsert(t *testing.T) {
	a := New(Insert("abc"))
	b := New(Retain(3), Insert("def"))
	got := a.Compose(b)
	want := New(Insert("abcdef"))
	if !got.Equal(want) {
		t.Errorf("Compose() = %+v, want %+v", got.Ops, want.Ops)
	}
}

func TestComposeDeleteCancelsInsert(t *testing.T) {
	a := New(Insert("abc"))
	b := New(Delete(3))
	got := a.Compose(b)
	want := New()
	if !got.Equal(want) {
		t.Errorf("Compose() = %+v, want empty", got.Ops)
	}
}

func TestComposeRetainAttrsMergeOverPriorAttrs(t *testing.T) {
	a := New(InsertAttrs("abc", map[string]any{"bold": true}))
	b := New(RetainAttrs(3, map[string]any{"italic": true}))
	got := a.Compose(b)
	want := New(InsertAttrs("abc", map[string]any{"bold": true, "italic": true}))
	if !got.Equal(want) {
		t.Errorf("Compose() = %+v, want %+v", got.Ops, want.Ops)
	}
}

// TestComposeFormatToggleOff exercises the "every op in the selected
// range already has bold=true" case: composing a retain that explicitly
// sets bold to nil clears the attribute rather than leaving it set.
func TestComposeFormatToggleOff(t *testing.T) {
	a := New(InsertAttrs("abc", map[string]any{"bold": true}))
	clear := New(RetainAttrs(3, map[string]any{"bold": nil}))
	got := a.Compose(clear)

	if len(got.Ops) != 1 {
		t.Fatalf("want 1 op, got %+v", got.Ops)
	}
	if _, present := got.Ops[0].Attrs["bold"]; present {
		t.Errorf("bold should be cleared from the composed content, got attrs %+v", got.Ops[0].Attrs)
	}
}

func TestComposeRetainOnRetainKeepsNullForFurtherComposition(t *testing.T) {
	base := New(RetainAttrs(3, map[string]any{"bold": true}))
	clear := New(RetainAttrs(3, map[string]any{"bold": nil}))
	got := base.Compose(clear)

	if len(got.Ops) != 1 || got.Ops[0].Kind != KindRetain {
		t.Fatalf("want 1 retain op, got %+v", got.Ops)
	}
	if v, present := got.Ops[0].Attrs["bold"]; !present || v != nil {
		t.Errorf("retain-on-retain compose should keep the explicit null so it survives a further compose, got %+v", got.Ops[0].Attrs)
	}
}

func TestDiffIdentical(t *testing.T) {
	a := New(Insert("hello world"))
	got := a.Diff(a)
	if !got.IsEmpty() {
		t.Errorf("Diff of identical content should be empty, got %+v", got.Ops)
	}
}

func TestDiffPureInsertion(t *testing.T) {
	a := New(Insert("hello world"))
	b := New(Insert("hello there world"))
	got := a.Diff(b)
	want := New(Retain(6), Insert("there "), Retain(5))
	if !got.Equal(want) {
		t.Errorf("Diff() = %+v, want %+v", got.Ops, want.Ops)
	}
}

func TestDiffPureDeletion(t *testing.T) {
	a := New(Insert("hello there world"))
	b := New(Insert("hello world"))
	got := a.Diff(b)
	want := New(Retain(6), Delete(6), Retain(5))
	if !got.Equal(want) {
		t.Errorf("Diff() = %+v, want %+v", got.Ops, want.Ops)
	}
}

func TestDiffOffsetHintDisambiguatesRepeatedRun(t *testing.T) {
	a := New(Insert("aa"))
	b := New(Insert("aaa"))

	// Without a hint, the greedy common-prefix scan attributes the
	// insertion to the end of the run.
	got := a.Diff(b)
	want := New(Retain(2), Insert("a"))
	if !got.Equal(want) {
		t.Errorf("Diff() without hint = %+v, want %+v", got.Ops, want.Ops)
	}

	// A hint of 1 (cursor sat between the two original a's) should slide
	// the insertion point left.
	gotHinted := a.Diff(b, 1)
	wantHinted := New(Retain(1), Insert("a"), Retain(1))
	if !gotHinted.Equal(wantHinted) {
		t.Errorf("Diff() with hint=1 = %+v, want %+v", gotHinted.Ops, wantHinted.Ops)
	}
}

func TestDiffOffsetHintDisambiguatesRepeatedDeletion(t *testing.T) {
	a := New(Insert("baaa"))
	b := New(Insert("baa"))

	gotHinted := a.Diff(b, 1)
	wantHinted := New(Retain(1), Delete(1), Retain(2))
	if !gotHinted.Equal(wantHinted) {
		t.Errorf("Diff() with hint=1 = %+v, want %+v", gotHinted.Ops, wantHinted.Ops)
	}
}

func TestDiffAttributeOnlyChangeIsNotElided(t *testing.T) {
	a := New(Insert("abc"))
	b := New(InsertAttrs("abc", map[string]any{"bold": true}))
	got := a.Diff(b)
	if got.IsEmpty() {
		t.Fatal("an attribute-only change must not diff to empty")
	}
}

// TestDiffComposeRoundTrip exercises the testable property that
// composing a source Delta with its own diff against a target always
// reproduces that target's content, across a handful of edit shapes.
func TestDiffComposeRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		source Delta
		target Delta
	}{
		{"pure insertion", New(Insert("hello world")), New(Insert("hello there world"))},
		{"pure deletion", New(Insert("hello there world")), New(Insert("hello world"))},
		{"replacement", New(Insert("hello world")), New(Insert("goodbye world"))},
		{"attribute change", New(Insert("abc")), New(InsertAttrs("abc", map[string]any{"bold": true}))},
		{
			"embed in the middle",
			New(Insert("before"), Insert("after")),
			New(Insert("before"), InsertEmbed("img", nil), Insert("after")),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := tc.source.Diff(tc.target)
			got := tc.source.Compose(d)
			if !got.Equal(tc.target) {
				t.Errorf("source.Compose(source.Diff(target)) = %+v, want %+v", got.Ops, tc.target.Ops)
			}
		})
	}
}
