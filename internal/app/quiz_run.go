package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"studycompanion/internal/quiz"
	"studycompanion/pkg/logx"
)

// QuizOptions are the quiz command's flags.
type QuizOptions struct {
	File      string // read passage from file
	Clipboard bool   // read passage from the system clipboard
	OutPath   string // write the generated sheet here
	Ask       bool   // interactive mode

	Bullets   int
	Cloze     int
	TrueFalse int
}

// RunQuiz generates a summary and quiz from a passage of text. The
// passage comes from a file, the clipboard, or stdin, in that order of
// preference.
func (a *App) RunQuiz(opts QuizOptions) error {
	if opts.Ask && opts.File == "" && !opts.Clipboard {
		// Interactive answers come from stdin, so the passage can't.
		return fmt.Errorf("interactive mode needs -file or -clip for the passage")
	}
	text, source, err := a.readPassage(opts)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("empty passage from %s", source)
	}
	a.log.Debug("passage loaded", logx.String("source", source), logx.Int("bytes", len(text)))

	bullets, questions := quiz.Generate(text, quiz.Options{
		Bullets:   opts.Bullets,
		Cloze:     opts.Cloze,
		TrueFalse: opts.TrueFalse,
	})
	if len(bullets) == 0 && len(questions) == 0 {
		return fmt.Errorf("no quizzable sentences found in passage")
	}

	if opts.Ask {
		fmt.Fprintf(a.stdout, "Summary Bullet Points:\n")
		for _, b := range bullets {
			fmt.Fprintf(a.stdout, " - %s\n", b)
		}
		quiz.RunInteractive(a.stdin, a.stdout, questions)
		return nil
	}

	sheet := quiz.FormatText(bullets, questions)
	fmt.Fprint(a.stdout, sheet)

	if opts.OutPath != "" {
		if err := os.WriteFile(opts.OutPath, []byte(sheet), 0o644); err != nil {
			return fmt.Errorf("writing quiz sheet: %w", err)
		}
		fmt.Fprintf(a.stdout, "\nSaved to %s\n", opts.OutPath)
	}
	return nil
}

func (a *App) readPassage(opts QuizOptions) (text, source string, err error) {
	switch {
	case opts.File != "":
		b, err := os.ReadFile(opts.File)
		if err != nil {
			return "", "", fmt.Errorf("reading passage: %w", err)
		}
		return string(b), opts.File, nil
	case opts.Clipboard:
		s, err := clipboard.ReadAll()
		if err != nil {
			return "", "", fmt.Errorf("reading clipboard: %w", err)
		}
		return s, "clipboard", nil
	default:
		b, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), "stdin", nil
	}
}
