//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"path"

	"github.com/rios0rios0/repominer/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// SourceFileBuilder helps create test source file records with a fluent interface.
type SourceFileBuilder struct {
	*testkit.BaseBuilder
	relativePath string
	language     string
	content      []byte
	loc          int64
	numCommits   int
	frequency    float64
}

// NewSourceFileBuilder creates a new source file builder with sensible defaults.
func NewSourceFileBuilder() *SourceFileBuilder {
	return &SourceFileBuilder{
		BaseBuilder:  testkit.NewBaseBuilder(),
		relativePath: "main.go",
		language:     "Go",
		content:      []byte("package main\n"),
		loc:          1,
	}
}

// WithRelativePath sets the slash-separated path; the name is its base.
func (b *SourceFileBuilder) WithRelativePath(relativePath string) *SourceFileBuilder {
	b.relativePath = relativePath
	return b
}

// WithLanguage sets the language name.
func (b *SourceFileBuilder) WithLanguage(language string) *SourceFileBuilder {
	b.language = language
	return b
}

// WithContent sets the raw content; size and hash derive from it.
func (b *SourceFileBuilder) WithContent(content string) *SourceFileBuilder {
	b.content = []byte(content)
	return b
}

// WithLOC sets the lines of code.
func (b *SourceFileBuilder) WithLOC(loc int64) *SourceFileBuilder {
	b.loc = loc
	return b
}

// WithCommits sets the change count and frequency.
func (b *SourceFileBuilder) WithCommits(numCommits int, frequency float64) *SourceFileBuilder {
	b.numCommits = numCommits
	b.frequency = frequency
	return b
}

// Build creates the record (satisfies testkit.Builder interface).
func (b *SourceFileBuilder) Build() interface{} {
	return b.BuildSourceFile()
}

// BuildSourceFile creates the record with a concrete return type.
func (b *SourceFileBuilder) BuildSourceFile() entities.SourceFileInfo {
	name := path.Base(b.relativePath)
	language := entities.NewLanguageType(b.language, path.Ext(name))
	content := append([]byte(nil), b.content...)
	return entities.SourceFileInfo{
		Name:         name,
		RelativePath: b.relativePath,
		Language:     &language,
		ContentHash:  entities.ContentHash(content),
		Content:      content,
		Statistics: entities.Statistics{
			Size:       int64(len(content)),
			LOC:        b.loc,
			NumFiles:   1,
			NumCommits: b.numCommits,
			Frequency:  b.frequency,
		},
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *SourceFileBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.relativePath = "main.go"
	b.language = "Go"
	b.content = []byte("package main\n")
	b.loc = 1
	b.numCommits = 0
	b.frequency = 0
	return b
}

// Clone creates a deep copy of the SourceFileBuilder.
func (b *SourceFileBuilder) Clone() testkit.Builder {
	return &SourceFileBuilder{
		BaseBuilder:  b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		relativePath: b.relativePath,
		language:     b.language,
		content:      append([]byte(nil), b.content...),
		loc:          b.loc,
		numCommits:   b.numCommits,
		frequency:    b.frequency,
	}
}
