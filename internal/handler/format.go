package handler

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"flashcards/internal/domain"
	"flashcards/internal/session"

	tele "gopkg.in/telebot.v3"
)

const progressBarWidth = 10

// formatCard renders a session screen as message text
func formatCard(s session.Screen) string {
	var b strings.Builder

	if p := s.Progress; p != nil {
		fmt.Fprintf(&b, "📊 Mastered %d/%d (%s%%)\n", p.Mastered, p.TotalWords, formatNumber(p.Percent))
		b.WriteString(progressBar(p.Percent, progressBarWidth))
		b.WriteString("\n")
		fmt.Fprintf(&b, "🎯 Accuracy %s%% · Practiced %d · Correct %d\n",
			formatNumber(p.Accuracy), p.TotalPracticed, p.TotalCorrect)
	}

	if s.ReviewMode {
		fmt.Fprintf(&b, "🔁 Review mode · %d left\n", s.ReviewRemaining)
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}

	if s.State == domain.StateCompleted {
		fmt.Fprintf(&b, "🎉 %s\n", s.CompletionText)
		return finishCard(&b, s)
	}

	if s.Word != "" {
		fmt.Fprintf(&b, "🇬🇧 %s\n", s.Word)
	}
	if s.Category != "" {
		fmt.Fprintf(&b, "(%s)\n", s.Category)
	}
	if s.Hint != "" {
		fmt.Fprintf(&b, "💡 %s\n", s.Hint)
	}
	if s.Draft != "" {
		fmt.Fprintf(&b, "\n✍️ %s\n", s.Draft)
	}

	if fb := s.Feedback; fb != nil {
		fmt.Fprintf(&b, "\n%s %s\n", fb.Icon, fb.Text)
		if len(fb.Answers) > 0 {
			fmt.Fprintf(&b, "%s %s\n", fb.AnswersLabel, strings.Join(fb.Answers, ", "))
		}
	} else if s.InputEnabled {
		b.WriteString("\nType the translation and send it.\n")
	}

	return finishCard(&b, s)
}

func finishCard(b *strings.Builder, s session.Screen) string {
	if s.ConfirmReset {
		fmt.Fprintf(b, "\n⚠️ %s\n", session.MsgConfirmReset)
	}
	return strings.TrimRight(b.String(), "\n")
}

// progressBar draws percent as a bar of width cells
func progressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
}

// formatNumber prints at most one decimal, dropping a trailing .0
func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}

// cardMarkup builds the inline keyboard for a screen
func cardMarkup(s session.Screen) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	if s.ConfirmReset {
		markup.Inline(markup.Row(btnResetYes, btnResetNo))
		return markup
	}

	var rows []tele.Row

	if s.InputEnabled {
		for _, line := range specialChars {
			row := make(tele.Row, 0, len(line))
			for _, char := range line {
				row = append(row, markup.Data(char, btnChar.Unique, char))
			}
			rows = append(rows, row)
		}
	}
	if s.SubmitVisible && s.Draft != "" {
		rows = append(rows, markup.Row(btnSubmit))
	}
	if s.State == domain.StateAnswered {
		rows = append(rows, markup.Row(btnNext))
	}

	if s.ReviewEnabled {
		switch {
		case s.ReviewMode:
			rows = append(rows, markup.Row(btnReviewOff))
		case s.ReviewAvailable:
			review := btnReviewOn
			review.Text = fmt.Sprintf("%s (%d)", btnReviewOn.Text, s.ActiveCount)
			rows = append(rows, markup.Row(review))
		}
	}

	rows = append(rows, markup.Row(btnReset))
	markup.Inline(rows...)
	return markup
}
