package analysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sells-group/docdraft/internal/model"
)

var tokenPattern = regexp.MustCompile(`[a-z]{3,}`)

// answerLines is how many top citations are joined into the answer.
const answerLines = 2

type tokenSet map[string]struct{}

func tokenize(s string) tokenSet {
	set := make(tokenSet)
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(s), -1) {
		set[tok] = struct{}{}
	}
	return set
}

func (t tokenSet) overlap(other tokenSet) int {
	n := 0
	for tok := range t {
		if _, ok := other[tok]; ok {
			n++
		}
	}
	return n
}

// Citations returns up to k lines of text sharing the most tokens with
// question. Lines that share none are dropped; ties keep document order.
func Citations(text, question string, k int) []string {
	if k <= 0 {
		k = DefaultCitationK
	}
	q := tokenize(question)

	type scoredLine struct {
		text  string
		score int
	}
	var scored []scoredLine
	for _, ln := range nonBlankLines(text) {
		if s := tokenize(ln).overlap(q); s > 0 {
			scored = append(scored, scoredLine{text: ln, score: s})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	out := make([]string, 0, min(k, len(scored)))
	for _, s := range head(scored, k) {
		out = append(out, s.text)
	}
	return out
}

// RetrieveCitations answers question from the policy text. With no matching
// line the answer is model.NotInPolicy and citations are empty.
func RetrieveCitations(text, question string, k int) model.PolicyAnswer {
	cits := Citations(text, question, k)
	if len(cits) == 0 {
		return model.PolicyAnswer{Answer: model.NotInPolicy, Citations: []string{}}
	}
	return model.PolicyAnswer{
		Answer:    strings.Join(head(cits, answerLines), " "),
		Citations: cits,
	}
}
