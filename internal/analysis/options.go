// Package analysis implements the deterministic rule-based drafting engine:
// variance ranking, risk rules, keyword citation retrieval and contract
// clause extraction. Every function here is pure.
package analysis

// Default and maximum result sizes.
const (
	DefaultHighlightCount = 3
	DefaultTableSize      = 5
	DefaultCitationK      = 3

	MaxHighlights    = 3
	MaxTableRows     = 5
	MaxParties       = 2
	MaxObligations   = 5
	MaxFinanceRisks  = 3
	MaxContractRisks = 5
)

// Options is the only configuration the analyzers accept.
type Options struct {
	HighlightCount int `json:"highlight_count" mapstructure:"highlight_count"`
	TableSize      int `json:"table_size" mapstructure:"table_size"`
	CitationK      int `json:"citation_k" mapstructure:"citation_k"`
}

// DefaultOptions returns the stated defaults.
func DefaultOptions() Options {
	return Options{
		HighlightCount: DefaultHighlightCount,
		TableSize:      DefaultTableSize,
		CitationK:      DefaultCitationK,
	}
}

// normalized fills unset fields with defaults and clamps the report sizes to
// their schema bounds.
func (o Options) normalized() Options {
	o.HighlightCount = clamp(o.HighlightCount, DefaultHighlightCount, MaxHighlights)
	o.TableSize = clamp(o.TableSize, DefaultTableSize, MaxTableRows)
	if o.CitationK <= 0 {
		o.CitationK = DefaultCitationK
	}
	return o
}

func clamp(n, def, limit int) int {
	if n <= 0 {
		return def
	}
	if n > limit {
		return limit
	}
	return n
}
