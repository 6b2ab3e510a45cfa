package textmodel

import (
	"testing"

	"github.com/fork-archive-hub/blocky-editor/internal/engine/delta"
)

func TestNewFromText(t *testing.T) {
	m := NewFromText("hello")
	if got, want := m.Length(), 5; got != want {
		t.Errorf("Length() = %d, want %d", got, want)
	}
	if got, want := m.String(), "hello"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNewStripsRetainAndDelete(t *testing.T) {
	d := delta.New(delta.Retain(3), delta.Insert("abc"), delta.Delete(2))
	m := New(d)
	if got, want := m.Length(), 3; got != want {
		t.Errorf("Length() = %d, want %d (retain/delete must not count as content)", got, want)
	}
	if got, want := m.String(), "abc"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCompose(t *testing.T) {
	m := NewFromText("hello world")
	edit := delta.New(delta.Retain(6), delta.Insert("there "), delta.Retain(5))
	got := m.Compose(edit)
	if want := "hello there world"; got.String() != want {
		t.Errorf("Compose() = %q, want %q", got.String(), want)
	}
}

func TestDiffRoundTrip(t *testing.T) {
	a := NewFromText("hello world")
	b := NewFromText("hello there world")
	edit := a.Diff(b)
	got := a.Compose(edit)
	if got.String() != b.String() {
		t.Errorf("a.Compose(a.Diff(b)) = %q, want %q", got.String(), b.String())
	}
}

func TestDiffOffsetHint(t *testing.T) {
	a := NewFromText("aa")
	b := NewFromText("aaa")
	edit := a.Diff(b, 1)
	want := delta.New(delta.Retain(1), delta.Insert("a"), delta.Retain(1))
	if !edit.Equal(want) {
		t.Errorf("Diff(hint=1) = %+v, want %+v", edit.Ops, want.Ops)
	}
}
