package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/stretchr/testify/assert"
)

func TestKeyCombinationFromTcellRune(t *testing.T) {
	ev := tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)
	kc := keyCombinationFromTcell(ev)
	assert.Equal(t, "a", kc.Key)
	assert.False(t, kc.Ctrl)
}

func TestKeyCombinationFromTcellCtrlLetter(t *testing.T) {
	ev := tcell.NewEventKey(tcell.KeyCtrlJ, 0, tcell.ModCtrl)
	kc := keyCombinationFromTcell(ev)
	assert.True(t, kc.Ctrl)
	assert.Equal(t, "j", kc.Key)
}

func TestKeyCombinationFromTcellNamed(t *testing.T) {
	ev := tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
	kc := keyCombinationFromTcell(ev)
	assert.Equal(t, "esc", kc.Key)
}

func TestKeyCombinationFromTcellFunctionKey(t *testing.T) {
	ev := tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone)
	kc := keyCombinationFromTcell(ev)
	assert.Equal(t, "f5", kc.Key)
}

func TestStyleToTcellAppliesBold(t *testing.T) {
	st := styleToTcell(DefaultTheme("default").Match)
	_, _, attr := st.Decompose()
	assert.True(t, attr&tcell.AttrBold != 0)
}
