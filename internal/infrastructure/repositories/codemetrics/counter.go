package codemetrics

import (
	"bytes"
	"context"
	"strings"

	logger "github.com/sirupsen/logrus"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/rios0rios0/repominer/internal/domain/entities"
)

// countLines classifies every line of src as blank, comment or code.
func countLines(ctx context.Context, path string, src []byte, spec languageSpec) entities.LanguageTotals {
	var (
		covered []bool
		err     error
	)
	switch {
	case spec.grammar != nil:
		covered, err = commentCoverage(ctx, src, spec.grammar())
	case spec.lexer != nil:
		covered, err = spec.lexer(src, path)
	default:
		return countLexically(src, spec)
	}
	if err != nil {
		logger.Debugf("Falling back to lexical counting for %s: %v", path, err)
		return countLexically(src, spec)
	}
	return countWithCoverage(src, covered)
}

// commentCoverage parses src and marks every byte that belongs to a comment
// node.
func commentCoverage(ctx context.Context, src []byte, lang *sitter.Language) ([]bool, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	covered := make([]bool, len(src))
	stack := []*sitter.Node{tree.RootNode()}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == nil {
			continue
		}
		if strings.Contains(node.Type(), "comment") {
			end := min(int(node.EndByte()), len(src))
			for i := int(node.StartByte()); i < end; i++ {
				covered[i] = true
			}
			continue
		}
		for i := 0; i < int(node.ChildCount()); i++ {
			stack = append(stack, node.Child(i))
		}
	}

	return covered, nil
}

// countWithCoverage counts a line as comment when every non-blank byte of it
// lies inside a comment node.
func countWithCoverage(src []byte, covered []bool) entities.LanguageTotals {
	var totals entities.LanguageTotals
	offset := 0
	for _, line := range splitLines(src) {
		hasContent := false
		allComment := true
		for i, b := range line {
			if isSpace(b) {
				continue
			}
			hasContent = true
			if !covered[offset+i] {
				allComment = false
				break
			}
		}
		switch {
		case !hasContent:
			totals.Blanks++
		case allComment:
			totals.Comments++
		default:
			totals.Code++
		}
		offset += len(line) + 1
	}
	return totals
}

// countLexically classifies lines by their leading comment markers only.
func countLexically(src []byte, spec languageSpec) entities.LanguageTotals {
	var totals entities.LanguageTotals
	inBlock := false
	for _, raw := range splitLines(src) {
		line := strings.TrimSpace(string(raw))
		switch {
		case line == "":
			totals.Blanks++
		case inBlock:
			totals.Comments++
			if strings.Contains(line, spec.blockEnd) {
				inBlock = false
			}
		case spec.blockStart != "" && strings.HasPrefix(line, spec.blockStart):
			totals.Comments++
			rest := strings.TrimPrefix(line, spec.blockStart)
			inBlock = !strings.Contains(rest, spec.blockEnd)
		case hasAnyPrefix(line, spec.lineComments):
			totals.Comments++
		default:
			totals.Code++
		}
	}
	return totals
}

// splitLines splits on '\n' without producing a trailing empty line for
// content that ends in a newline.
func splitLines(src []byte) [][]byte {
	if len(src) == 0 {
		return nil
	}
	lines := bytes.Split(src, []byte{'\n'})
	if len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func hasAnyPrefix(line string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v'
}
