// Package quiz turns a passage of text into a small study aid: summary
// bullet points, cloze (fill-in-the-blank) questions, and true/false
// questions, with grading helpers for an interactive run.
package quiz

import (
	"regexp"
	"sort"
	"strings"
)

// QuestionType discriminates the two generated question kinds.
type QuestionType string

const (
	TypeCloze     QuestionType = "cloze"
	TypeTrueFalse QuestionType = "tf"
)

// Question is one quiz item shown to the user.
type Question struct {
	Prompt string
	Answer string
	Type   QuestionType
}

// Options sizes the generated material. The zero value gets the
// defaults: 3 bullets, 3 cloze questions, 2 true/false questions.
type Options struct {
	Bullets   int
	Cloze     int
	TrueFalse int
}

func (o Options) withDefaults() Options {
	if o.Bullets <= 0 {
		o.Bullets = 3
	}
	if o.Cloze <= 0 {
		o.Cloze = 3
	}
	if o.TrueFalse <= 0 {
		o.TrueFalse = 2
	}
	return o
}

// CleanText collapses runs of whitespace (including newlines) into
// single spaces.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// SplitSentences splits on sentence-ending punctuation followed by a
// space. Deliberately simple; it does not handle abbreviations.
func SplitSentences(text string) []string {
	text = CleanText(text)
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if (c == '.' || c == '!' || c == '?') && (i+1 == len(text) || text[i+1] == ' ') {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

var wordRe = regexp.MustCompile(`[A-Za-z][A-Za-z\-']*`)

// stopwords are common words never worth blanking out.
var stopwords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true, "a": true,
	"an": true, "to": true, "of": true, "in": true, "on": true,
	"for": true, "with": true, "by": true, "is": true, "are": true,
	"was": true, "were": true, "this": true, "that": true, "it": true,
	"as": true, "at": true, "from": true, "be": true, "can": true,
	"will": true, "not": true, "have": true, "has": true,
}

// PickKeywords returns up to maxKeywords "important looking" words from
// the sentence: reasonably long, not stopwords, longest first. Ties
// break lexicographically so the choice is deterministic.
func PickKeywords(sentence string, maxKeywords int) []string {
	if maxKeywords <= 0 {
		maxKeywords = 3
	}
	seen := map[string]bool{}
	var candidates []string
	for _, w := range wordRe.FindAllString(sentence, -1) {
		if len(w) < 4 || stopwords[strings.ToLower(w)] || seen[w] {
			continue
		}
		seen[w] = true
		candidates = append(candidates, w)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i]) != len(candidates[j]) {
			return len(candidates[i]) > len(candidates[j])
		}
		return candidates[i] < candidates[j]
	})
	if len(candidates) > maxKeywords {
		candidates = candidates[:maxKeywords]
	}
	return candidates
}

type scoredSentence struct {
	score    int
	sentence string
	keywords []string
}

// Generate produces summary bullets and questions for a passage.
// Sentences are scored by keyword count with a bonus for appearing
// early; the top scorers become bullets and question sources. The
// true/false questions are all true statements taken verbatim from the
// passage. Empty text yields empty results.
func Generate(text string, opts Options) (bullets []string, questions []Question) {
	opts = opts.withDefaults()

	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil, nil
	}

	scored := make([]scoredSentence, len(sentences))
	for i, sent := range sentences {
		kws := PickKeywords(sent, 3)
		bonus := 5 - i
		if bonus < 0 {
			bonus = 0
		}
		scored[i] = scoredSentence{score: len(kws) + bonus, sentence: sent, keywords: kws}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	for _, sc := range scored {
		if len(bullets) >= opts.Bullets {
			break
		}
		bullets = append(bullets, sc.sentence)
	}

	clozeUsed := map[string]bool{}
	clozeCount := 0
	for _, sc := range scored {
		if clozeCount >= opts.Cloze {
			break
		}
		if len(sc.keywords) == 0 {
			continue
		}
		target := sc.keywords[0]
		questions = append(questions, Question{
			Prompt: "Fill in the blank:\n" + strings.Replace(sc.sentence, target, "____", 1),
			Answer: target,
			Type:   TypeCloze,
		})
		clozeUsed[sc.sentence] = true
		clozeCount++
	}

	// Prefer sentences not already consumed by cloze questions; fall
	// back to reuse when the passage is short.
	tfCount := 0
	tfUsed := map[string]bool{}
	for pass := 0; pass < 2 && tfCount < opts.TrueFalse; pass++ {
		for _, sc := range scored {
			if tfCount >= opts.TrueFalse {
				break
			}
			if tfUsed[sc.sentence] || (pass == 0 && clozeUsed[sc.sentence]) {
				continue
			}
			questions = append(questions, Question{
				Prompt: "True or False:\nAccording to the passage, " + sc.sentence,
				Answer: "True",
				Type:   TypeTrueFalse,
			})
			tfUsed[sc.sentence] = true
			tfCount++
		}
	}

	return bullets, questions
}

// CheckAnswer grades a user response. Cloze answers compare
// case-insensitively; true/false accepts t/true/y/yes as "true".
func CheckAnswer(q Question, answer string) bool {
	answer = strings.TrimSpace(answer)
	switch q.Type {
	case TypeCloze:
		return strings.EqualFold(answer, q.Answer)
	case TypeTrueFalse:
		saidTrue := false
		switch strings.ToLower(answer) {
		case "t", "true", "y", "yes":
			saidTrue = true
		}
		return saidTrue == strings.EqualFold(q.Answer, "True")
	default:
		return false
	}
}
