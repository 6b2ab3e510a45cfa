package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestIsQuitRecognizesEscCtrlCAndQ(t *testing.T) {
	quit := []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone),
	}
	for _, ev := range quit {
		if !isQuit(ev) {
			t.Errorf("isQuit(%v) = false, want true", ev.Name())
		}
	}
}

func TestIsQuitIgnoresOtherKeys(t *testing.T) {
	notQuit := []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone),
	}
	for _, ev := range notQuit {
		if isQuit(ev) {
			t.Errorf("isQuit(%v) = true, want false", ev.Name())
		}
	}
}
