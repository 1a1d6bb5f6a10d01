package entities

import (
	"sort"
	"strings"
)

// LanguageType groups files of one language. A language such as "Go" may be
// backed by several extensions; Extensions is kept sorted and de-duplicated.
//
// Percentage is the share of the repository's lines of code written in this
// language. It is only filled in by CalculatePercentageDistribution.
type LanguageType struct {
	Name       string      `json:"name"`
	Extensions []string    `json:"extensions"`
	Statistics *Statistics `json:"statistics,omitempty"`
	Percentage float64     `json:"percentage,omitempty"`
}

// NewLanguageType creates the per-file classification for a language name and
// the file's own extension (with or without the leading dot).
func NewLanguageType(name, extension string) LanguageType {
	extensions := []string{}
	if ext := strings.TrimPrefix(extension, "."); ext != "" {
		extensions = append(extensions, ext)
	}
	return LanguageType{Name: name, Extensions: extensions}
}

// IsEmpty reports whether this is the "no predominant language" sentinel.
func (l LanguageType) IsEmpty() bool {
	return l.Name == ""
}

// MergeLanguages aggregates languages at repository scope: entries sharing a
// name are merged, their extension sets unioned and their statistics summed.
// The result is ordered by name.
func MergeLanguages(languages []LanguageType) []LanguageType {
	byName := make(map[string]*LanguageType)
	extSets := make(map[string]map[string]struct{})

	for _, lang := range languages {
		merged, ok := byName[lang.Name]
		if !ok {
			merged = &LanguageType{Name: lang.Name}
			byName[lang.Name] = merged
			extSets[lang.Name] = make(map[string]struct{})
		}
		for _, ext := range lang.Extensions {
			extSets[lang.Name][ext] = struct{}{}
		}
		if lang.Statistics != nil {
			if merged.Statistics == nil {
				merged.Statistics = &Statistics{}
			}
			merged.Statistics.Add(*lang.Statistics)
		}
	}

	result := make([]LanguageType, 0, len(byName))
	for name, merged := range byName {
		merged.Extensions = make([]string, 0, len(extSets[name]))
		for ext := range extSets[name] {
			merged.Extensions = append(merged.Extensions, ext)
		}
		sort.Strings(merged.Extensions)
		result = append(result, *merged)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result
}

// SumLinesOfCode sums LOC over every language that carries statistics.
func SumLinesOfCode(languages []LanguageType) int64 {
	var total int64
	for _, lang := range languages {
		if lang.Statistics != nil {
			total += lang.Statistics.LOC
		}
	}
	return total
}

// CalculatePercentageDistribution sets Percentage on every language to its
// share of the total lines of code. With no lines at all every share is 0.
func CalculatePercentageDistribution(languages []LanguageType) {
	total := float64(SumLinesOfCode(languages))
	for i := range languages {
		languages[i].Percentage = 0
		if languages[i].Statistics != nil {
			languages[i].Percentage = Percentage(float64(languages[i].Statistics.LOC), total)
		}
	}
}

// PredominantLanguage picks the language with the highest Percentage. Ties go
// to the larger size, then to the lexicographically smaller name. When no
// language has a positive share the empty sentinel is returned.
func PredominantLanguage(languages []LanguageType) LanguageType {
	var (
		best      LanguageType
		bestShare float64
		bestSize  int64
	)

	for _, lang := range languages {
		if lang.Statistics == nil || lang.Percentage <= 0 {
			continue
		}
		size := lang.Statistics.Size
		switch {
		case lang.Percentage > bestShare:
		case lang.Percentage == bestShare && size > bestSize:
		case lang.Percentage == bestShare && size == bestSize && lang.Name < best.Name:
		default:
			continue
		}
		best = lang
		bestShare = lang.Percentage
		bestSize = size
	}

	return best
}
