package entities

// LanguageTotals are the aggregate line counts reported for one language.
type LanguageTotals struct {
	Blanks   int64 `json:"blanks"`
	Code     int64 `json:"code"`
	Comments int64 `json:"comments"`
}

// FileReport is the code-metrics result for one discovered file.
type FileReport struct {
	Path     string // absolute path on disk
	Language string
	LanguageTotals
}

// CodeMetricsReport is what the code-metrics collaborator returns for a set
// of roots: totals per language and one report per discovered file.
type CodeMetricsReport struct {
	Languages map[string]LanguageTotals
	Files     []FileReport
}
