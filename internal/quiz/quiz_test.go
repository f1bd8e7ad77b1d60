package quiz

import (
	"strings"
	"testing"
)

const passage = "The mitochondria is the powerhouse of the cell. " +
	"Cellular respiration converts glucose into usable energy. " +
	"Photosynthesis occurs in the chloroplasts of plant cells. " +
	"Enzymes catalyze biochemical reactions without being consumed."

func TestCleanText(t *testing.T) {
	t.Parallel()

	got := CleanText("  hello \n\n world\tagain  ")
	if got != "hello world again" {
		t.Fatalf("CleanText = %q", got)
	}
}

func TestSplitSentences(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "three sentences mixed punctuation",
			in:   "First one. Second one! Third one?",
			want: []string{"First one.", "Second one!", "Third one?"},
		},
		{
			name: "trailing fragment without punctuation",
			in:   "Done sentence. trailing fragment",
			want: []string{"Done sentence.", "trailing fragment"},
		},
		{
			name: "decimal number not split",
			in:   "Water boils at 99.9 degrees here. Next.",
			want: []string{"Water boils at 99.9 degrees here.", "Next."},
		},
		{
			name: "empty input",
			in:   "   \n ",
			want: nil,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := SplitSentences(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d sentences %q, want %d", len(got), got, len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("sentence %d = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestPickKeywords(t *testing.T) {
	t.Parallel()

	got := PickKeywords("The mitochondria is the powerhouse of the cell", 3)
	want := []string{"mitochondria", "powerhouse", "cell"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("keyword %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPickKeywordsSkipsStopwordsAndShortWords(t *testing.T) {
	t.Parallel()

	got := PickKeywords("it is on and to the a of", 3)
	if len(got) != 0 {
		t.Fatalf("expected no keywords, got %q", got)
	}
}

func TestGenerateCounts(t *testing.T) {
	t.Parallel()

	bullets, questions := Generate(passage, Options{})
	if len(bullets) != 3 {
		t.Fatalf("bullets = %d, want 3", len(bullets))
	}
	var cloze, tf int
	for _, q := range questions {
		switch q.Type {
		case TypeCloze:
			cloze++
			if !strings.Contains(q.Prompt, "____") {
				t.Errorf("cloze prompt missing blank: %q", q.Prompt)
			}
			if strings.Contains(q.Prompt, q.Answer) {
				t.Errorf("cloze prompt still contains answer %q", q.Answer)
			}
		case TypeTrueFalse:
			tf++
			if q.Answer != "True" {
				t.Errorf("tf answer = %q, want True", q.Answer)
			}
		}
	}
	if cloze != 3 || tf != 2 {
		t.Fatalf("cloze = %d tf = %d, want 3 and 2", cloze, tf)
	}
}

func TestGenerateEmptyText(t *testing.T) {
	t.Parallel()

	bullets, questions := Generate("   ", Options{})
	if bullets != nil || questions != nil {
		t.Fatalf("expected nil results, got %v %v", bullets, questions)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	t.Parallel()

	b1, q1 := Generate(passage, Options{})
	b2, q2 := Generate(passage, Options{})
	for i := range b1 {
		if b1[i] != b2[i] {
			t.Fatalf("bullet %d differs between runs", i)
		}
	}
	for i := range q1 {
		if q1[i] != q2[i] {
			t.Fatalf("question %d differs between runs", i)
		}
	}
}

func TestCheckAnswer(t *testing.T) {
	t.Parallel()

	cloze := Question{Answer: "glucose", Type: TypeCloze}
	tf := Question{Answer: "True", Type: TypeTrueFalse}

	cases := []struct {
		name   string
		q      Question
		answer string
		want   bool
	}{
		{"cloze exact", cloze, "glucose", true},
		{"cloze case-insensitive", cloze, "  GLUCOSE ", true},
		{"cloze wrong", cloze, "fructose", false},
		{"tf true word", tf, "true", true},
		{"tf short yes", tf, "y", true},
		{"tf t", tf, "T", true},
		{"tf false", tf, "false", false},
		{"tf garbage", tf, "maybe", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := CheckAnswer(tc.q, tc.answer); got != tc.want {
				t.Fatalf("CheckAnswer(%q) = %v, want %v", tc.answer, got, tc.want)
			}
		})
	}
}

func TestFormatText(t *testing.T) {
	t.Parallel()

	out := FormatText(
		[]string{"Point one.", "Point two."},
		[]Question{{Prompt: "Fill in the blank:\nA ____ B", Answer: "x", Type: TypeCloze}},
	)
	for _, want := range []string{
		"Summary Bullet Points:",
		" - Point one.",
		" - Point two.",
		"Questions:",
		"Q1: Fill in the blank:",
		"Answer: x",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunInteractive(t *testing.T) {
	t.Parallel()

	questions := []Question{
		{Prompt: "Fill in the blank:\nthe ____", Answer: "cat", Type: TypeCloze},
		{Prompt: "True or False:\nsky is blue", Answer: "True", Type: TypeTrueFalse},
	}
	in := strings.NewReader("cat\nfalse\n")
	var out strings.Builder

	correct := RunInteractive(in, &out, questions)
	if correct != 1 {
		t.Fatalf("correct = %d, want 1", correct)
	}
	if !strings.Contains(out.String(), "Score: 1/2") {
		t.Errorf("missing score line:\n%s", out.String())
	}
}
