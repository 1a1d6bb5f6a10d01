package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// FileToEmbed is the per-file record handed to the flattening step.
type FileToEmbed struct {
	Name string   `json:"name"`
	Data FileData `json:"data"`
}

// FileData carries the embedding signal of one file. The sentiment values are
// negative log-scale transforms of its statistics: larger or more volatile
// files score lower.
type FileData struct {
	Language           string  `json:"language"`
	IDHash             string  `json:"id_hash"`
	Contents           string  `json:"contents"`
	SizeSentiment      float64 `json:"size_sentiment"`
	LocSentiment       float64 `json:"loc_sentiment"`
	FrequencySentiment float64 `json:"frequency_sentiment"`
}

// NewFileToEmbed derives the embedding record of a source file.
func NewFileToEmbed(file SourceFileInfo) FileToEmbed {
	return FileToEmbed{
		Name: file.Name,
		Data: FileData{
			Language:           file.LanguageName(),
			IDHash:             file.ContentHash,
			Contents:           string(file.Content),
			SizeSentiment:      NegativeSentimentForInt(file.Statistics.Size),
			LocSentiment:       NegativeSentimentForInt(file.Statistics.LOC),
			FrequencySentiment: NegativeSentimentForFloat(file.Statistics.Frequency),
		},
	}
}

// NegativeSentimentForInt returns -floor(log10(num)), or 0 when num is not
// positive. The floor is taken on the decimal digit count so no float
// rounding can shift powers of ten.
func NegativeSentimentForInt(num int64) float64 {
	if num <= 0 {
		return 0
	}
	digits := 0
	for num >= 10 { //nolint:mnd // base 10
		num /= 10
		digits++
	}
	if digits == 0 {
		return 0
	}
	return -float64(digits)
}

// NegativeSentimentForFloat returns -log10(num), or 0 when num is not positive.
func NegativeSentimentForFloat(num float64) float64 {
	if num <= 0 || math.IsNaN(num) || math.IsInf(num, 0) {
		return 0
	}
	if num == 1 {
		return 0 // keeps -0 out of the tokens
	}
	return -math.Log10(num)
}

// PrepareTokens flattens every source file of the repository, in registry
// order, into the token sequence consumed by the embedding provider.
func PrepareTokens(repo *RepositoryInfo) ([]string, error) {
	var tokens []string
	for _, file := range repo.SourceFiles {
		record := NewFileToEmbed(file)
		fileTokens, err := FlattenTokens(record.Name, record.Data)
		if err != nil {
			return nil, NewMiningError(StageSerialization, file.RelativePath, err)
		}
		tokens = append(tokens, fileTokens...)
	}
	return tokens, nil
}

type flattenFrame struct {
	value any
	path  string
}

// FlattenTokens walks the JSON form of value depth-first and emits one
// "<key>: <path>/<value>" token per scalar leaf. Object keys are visited in
// ascending order and arrays in index order, so equal inputs always produce
// the same sequence.
func FlattenTokens(key string, value any) ([]string, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %q: %w", key, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var tree any
	if err = decoder.Decode(&tree); err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", key, err)
	}

	var tokens []string
	stack := []flattenFrame{{value: tree}}
	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch node := frame.value.(type) {
		case map[string]any:
			keys := make([]string, 0, len(node))
			for k := range node {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for i := len(keys) - 1; i >= 0; i-- {
				stack = append(stack, flattenFrame{value: node[keys[i]], path: frame.path + "/" + keys[i]})
			}
		case []any:
			for i := len(node) - 1; i >= 0; i-- {
				stack = append(stack, flattenFrame{value: node[i], path: fmt.Sprintf("%s/%d", frame.path, i)})
			}
		default:
			leaf, leafErr := renderLeaf(node)
			if leafErr != nil {
				return nil, fmt.Errorf("failed to render %s%s: %w", key, frame.path, leafErr)
			}
			tokens = append(tokens, fmt.Sprintf("%s: %s/%s", key, frame.path, leaf))
		}
	}

	return tokens, nil
}

func renderLeaf(value any) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
