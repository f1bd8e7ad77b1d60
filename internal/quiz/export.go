package quiz

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// FormatText renders bullets and questions as a plain-text sheet with
// answers, suitable for saving or printing.
func FormatText(bullets []string, questions []Question) string {
	var b strings.Builder
	b.WriteString("Summary Bullet Points:\n")
	for _, bullet := range bullets {
		b.WriteString(" - " + bullet + "\n")
	}
	b.WriteString("\nQuestions:\n")
	for i, q := range questions {
		fmt.Fprintf(&b, "\nQ%d: %s\nAnswer: %s\n", i+1, q.Prompt, q.Answer)
	}
	return b.String()
}

// RunInteractive asks each question on w, reads one answer line per
// question from r, and prints a running score. Returns the number of
// correct answers. EOF on r ends the quiz early.
func RunInteractive(r io.Reader, w io.Writer, questions []Question) int {
	sc := bufio.NewScanner(r)
	correct := 0
	for i, q := range questions {
		fmt.Fprintf(w, "\nQ%d: %s\n> ", i+1, q.Prompt)
		if !sc.Scan() {
			break
		}
		if CheckAnswer(q, sc.Text()) {
			correct++
			fmt.Fprintln(w, "Correct!")
		} else {
			fmt.Fprintf(w, "Not quite. Answer: %s\n", q.Answer)
		}
	}
	fmt.Fprintf(w, "\nScore: %d/%d\n", correct, len(questions))
	return correct
}
