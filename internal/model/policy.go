package model

// NotInPolicy is the sentinel answer used when no policy line supports the question.
const NotInPolicy = "Not in policy."

// PolicyAnswer is an answer to an HR policy question with verbatim citations.
type PolicyAnswer struct {
	Answer    string   `json:"answer"`
	Citations []string `json:"citations"`
}

// Found reports whether the answer is backed by at least one citation.
func (a PolicyAnswer) Found() bool {
	return a.Answer != NotInPolicy && len(a.Citations) > 0
}
