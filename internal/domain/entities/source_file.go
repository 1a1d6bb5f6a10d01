package entities

// SourceFileInfo is the registry record for one source file. The raw content
// is owned by the record and read exactly once; other components refer to the
// file by RelativePath or ContentHash only.
type SourceFileInfo struct {
	Name         string        `json:"name"`
	RelativePath string        `json:"relative_path"`
	Language     *LanguageType `json:"language,omitempty"`
	ContentHash  string        `json:"id_hash"`
	Content      []byte        `json:"-"`
	Statistics   Statistics    `json:"statistics"`
}

// LanguageName returns the classified language name or an empty string.
func (f SourceFileInfo) LanguageName() string {
	if f.Language == nil {
		return ""
	}
	return f.Language.Name
}

// FileLanguage returns the per-file LanguageType carrying this file's
// statistics, ready to be merged at repository scope.
func (f SourceFileInfo) FileLanguage() (LanguageType, bool) {
	if f.Language == nil {
		return LanguageType{}, false
	}
	stats := f.Statistics
	stats.Frequency = 0
	lang := LanguageType{
		Name:       f.Language.Name,
		Extensions: append([]string(nil), f.Language.Extensions...),
		Statistics: &stats,
	}
	return lang, true
}
