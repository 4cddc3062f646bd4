package tui

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuicount/internal/model"
)

const (
	deadlineBarWidth = 20
	minAnswerWidth   = 4
)

// rowLayout aligns the operands of a page into columns.
type rowLayout struct {
	leftWidth   int
	rightWidth  int
	answerWidth int
}

func newRowLayout(problems []model.Problem) rowLayout {
	layout := rowLayout{answerWidth: minAnswerWidth}
	for _, p := range problems {
		if w := runewidth.StringWidth(strconv.Itoa(p.Operand1)); w > layout.leftWidth {
			layout.leftWidth = w
		}
		if w := runewidth.StringWidth(strconv.Itoa(p.Operand2)); w > layout.rightWidth {
			layout.rightWidth = w
		}
		// Room for the sign of the expected answer.
		if w := runewidth.StringWidth(strconv.Itoa(p.CorrectAnswer)) + 1; w > layout.answerWidth {
			layout.answerWidth = w
		}
	}
	return layout
}

// problem renders "  3 + 14 =" with both operands right-aligned.
func (l rowLayout) problem(p model.Problem) string {
	return padLeft(strconv.Itoa(p.Operand1), l.leftWidth) + " " +
		p.Operation.Symbol() + " " +
		padLeft(strconv.Itoa(p.Operand2), l.rightWidth) + " ="
}

func formatAnswer(digits string, negative bool) string {
	if negative {
		return "-" + digits
	}
	return digits
}

func padLeft(s string, width int) string {
	if pad := width - runewidth.StringWidth(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}

func padRight(s string, width int) string {
	if pad := width - runewidth.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// deadlineBar renders the used share of the deadline as a bar of width cells.
func deadlineBar(progress float64, width int) string {
	if width <= 0 {
		return ""
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
