package codemetrics

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// languageSpec describes how lines of one language are classified. When a
// grammar or a lexer is available comments are found from its tokens;
// otherwise the comment markers are matched lexically.
type languageSpec struct {
	name         string
	grammar      func() *sitter.Language
	lexer        func(src []byte, filename string) ([]bool, error)
	lineComments []string
	blockStart   string
	blockEnd     string
}

var (
	cStyle    = []string{"//"}
	hashStyle = []string{"#"}
)

//nolint:gochecknoglobals // static lookup table
var specsByExtension = map[string]languageSpec{
	".go":    {name: "Go", grammar: golang.GetLanguage, lineComments: cStyle, blockStart: "/*", blockEnd: "*/"},
	".py":    {name: "Python", grammar: python.GetLanguage, lineComments: hashStyle},
	".js":    {name: "JavaScript", grammar: javascript.GetLanguage, lineComments: cStyle, blockStart: "/*", blockEnd: "*/"},
	".jsx":   {name: "JavaScript", grammar: javascript.GetLanguage, lineComments: cStyle, blockStart: "/*", blockEnd: "*/"},
	".mjs":   {name: "JavaScript", grammar: javascript.GetLanguage, lineComments: cStyle, blockStart: "/*", blockEnd: "*/"},
	".ts":    {name: "TypeScript", grammar: typescript.GetLanguage, lineComments: cStyle, blockStart: "/*", blockEnd: "*/"},
	".tsx":   {name: "TSX", grammar: tsx.GetLanguage, lineComments: cStyle, blockStart: "/*", blockEnd: "*/"},
	".rs":    {name: "Rust", grammar: rust.GetLanguage, lineComments: cStyle, blockStart: "/*", blockEnd: "*/"},
	".java":  {name: "Java", grammar: java.GetLanguage, lineComments: cStyle, blockStart: "/*", blockEnd: "*/"},
	".kt":    {name: "Kotlin", grammar: kotlin.GetLanguage, lineComments: cStyle, blockStart: "/*", blockEnd: "*/"},
	".kts":   {name: "Kotlin", grammar: kotlin.GetLanguage, lineComments: cStyle, blockStart: "/*", blockEnd: "*/"},
	".c":     {name: "C", lineComments: cStyle, blockStart: "/*", blockEnd: "*/"},
	".h":     {name: "C Header", lineComments: cStyle, blockStart: "/*", blockEnd: "*/"},
	".cpp":   {name: "C++", lineComments: cStyle, blockStart: "/*", blockEnd: "*/"},
	".cc":    {name: "C++", lineComments: cStyle, blockStart: "/*", blockEnd: "*/"},
	".hpp":   {name: "C++ Header", lineComments: cStyle, blockStart: "/*", blockEnd: "*/"},
	".cs":    {name: "C#", lineComments: cStyle, blockStart: "/*", blockEnd: "*/"},
	".swift": {name: "Swift", lineComments: cStyle, blockStart: "/*", blockEnd: "*/"},
	".scala": {name: "Scala", lineComments: cStyle, blockStart: "/*", blockEnd: "*/"},
	".php":   {name: "PHP", lineComments: []string{"//", "#"}, blockStart: "/*", blockEnd: "*/"},
	".rb":    {name: "Ruby", lineComments: hashStyle, blockStart: "=begin", blockEnd: "=end"},
	".sh":    {name: "Shell", lineComments: hashStyle},
	".bash":  {name: "Shell", lineComments: hashStyle},
	".pl":    {name: "Perl", lineComments: hashStyle},
	".r":     {name: "R", lineComments: hashStyle},
	".ex":    {name: "Elixir", lineComments: hashStyle},
	".exs":   {name: "Elixir", lineComments: hashStyle},
	".sql":   {name: "SQL", lineComments: []string{"--"}, blockStart: "/*", blockEnd: "*/"},
	".lua":   {name: "Lua", lineComments: []string{"--"}, blockStart: "--[[", blockEnd: "]]"},
	".hs":    {name: "Haskell", lineComments: []string{"--"}, blockStart: "{-", blockEnd: "-}"},
	".dart":  {name: "Dart", lineComments: cStyle, blockStart: "/*", blockEnd: "*/"},
	".tf":    {name: "HCL", lexer: hclCoverage, lineComments: []string{"#", "//"}, blockStart: "/*", blockEnd: "*/"},
	".hcl":   {name: "HCL", lexer: hclCoverage, lineComments: []string{"#", "//"}, blockStart: "/*", blockEnd: "*/"},
	".yaml":  {name: "YAML", lineComments: hashStyle},
	".yml":   {name: "YAML", lineComments: hashStyle},
	".toml":  {name: "TOML", lineComments: hashStyle},
	".json":  {name: "JSON"},
	".md":    {name: "Markdown"},
	".html":  {name: "HTML", blockStart: "<!--", blockEnd: "-->"},
	".css":   {name: "CSS", blockStart: "/*", blockEnd: "*/"},
}

//nolint:gochecknoglobals // static lookup table
var specsByFileName = map[string]languageSpec{
	"Makefile":   {name: "Makefile", lineComments: hashStyle},
	"Dockerfile": {name: "Dockerfile", lineComments: hashStyle},
}

// detectLanguage returns the languageSpec of a file, or false when the language is
// not recognised and the file should not be reported.
func detectLanguage(path string) (languageSpec, bool) {
	base := filepath.Base(path)
	if spec, ok := specsByFileName[base]; ok {
		return spec, true
	}
	spec, ok := specsByExtension[strings.ToLower(filepath.Ext(base))]
	return spec, ok
}
