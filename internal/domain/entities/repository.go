package entities

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// RepositoryInfo is the aggregate root of a mining pass. It is built once by
// NewRepositoryInfo and never mutated afterwards.
type RepositoryInfo struct {
	Name                string           `json:"name"`
	PredominantLanguage *LanguageType    `json:"predominant_language,omitempty"`
	Statistics          Statistics       `json:"statistics"`
	Languages           []LanguageType   `json:"languages"`
	Contributors        []Contributor    `json:"contributors"`
	SourceFiles         []SourceFileInfo `json:"source_files"`
}

// NewRepositoryInfo aggregates per-file records and the commit history into
// repository-level statistics and the language distribution.
func NewRepositoryInfo(name string, files []SourceFileInfo, history *CommitHistory) *RepositoryInfo {
	if history == nil {
		history = NewCommitHistory(0, nil, nil)
	}
	if files == nil {
		files = []SourceFileInfo{}
	}

	stats := Statistics{
		NumFiles:   len(files),
		NumCommits: history.TotalCommits,
	}
	perFile := make([]LanguageType, 0, len(files))
	for _, file := range files {
		stats.Size += file.Statistics.Size
		stats.LOC += file.Statistics.LOC
		if lang, ok := file.FileLanguage(); ok {
			perFile = append(perFile, lang)
		}
	}

	languages := MergeLanguages(perFile)
	CalculatePercentageDistribution(languages)

	info := &RepositoryInfo{
		Name:         name,
		Statistics:   stats,
		Languages:    languages,
		Contributors: history.Contributors,
		SourceFiles:  files,
	}
	if predominant := PredominantLanguage(languages); !predominant.IsEmpty() {
		info.PredominantLanguage = &predominant
	}

	return info
}

// MarshalDocument renders the interchange document. File contents are never
// part of it.
func (r *RepositoryInfo) MarshalDocument() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, NewMiningError(StageSerialization, r.Name, err)
	}
	return data, nil
}

// ResolveRepositoryName picks the repository name: an explicit override, the
// module path of a go.mod at the root, or the root directory name.
func ResolveRepositoryName(root, override string) string {
	if override = strings.TrimSpace(override); override != "" {
		return override
	}
	if data, err := os.ReadFile(filepath.Join(root, "go.mod")); err == nil {
		if modulePath := modfile.ModulePath(data); modulePath != "" {
			return modulePath
		}
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return filepath.Base(root)
	}
	return filepath.Base(abs)
}
