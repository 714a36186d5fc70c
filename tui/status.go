package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// statusLeft is the room and vitals half of the status bar.
func (m Model) statusLeft() string {
	e := m.ctl.Engine
	p := e.Player
	left := fmt.Sprintf(" %s | HP %d/%d MP %d/%d | Lv %d XP %d/%d",
		e.Room().Name, p.HP, p.MaxHP, p.MP, p.MaxMP, p.Level, p.XP, p.XPToLevel)
	if e.InCombat() {
		en := e.Combat.Session.Enemy
		left += fmt.Sprintf(" | Fighting %s %d/%d", en.Name, en.HP, en.MaxHP)
	}
	return left
}

// statusRight is the purse and clock half of the status bar.
func (m Model) statusRight() string {
	e := m.ctl.Engine
	return fmt.Sprintf("%d %s | Day %d %02d:00 ", e.Player.Gold, e.World.Currency(), e.Clock.Day, e.Clock.Hour)
}

// renderStatusBar produces a full-width inverted status line. It turns red
// while a fight is in progress.
func (m Model) renderStatusBar() string {
	left, right := m.statusLeft(), m.statusRight()

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		// Too narrow: drop the clock half.
		right, gap = "", max(0, m.width-lipgloss.Width(left))
	}

	bar := left + strings.Repeat(" ", gap) + right
	style := styleStatusBar
	if m.ctl.Engine.InCombat() {
		style = styleStatusCombat
	}
	return style.Width(m.width).Render(bar)
}
