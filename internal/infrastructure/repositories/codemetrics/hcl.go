package codemetrics

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// hclCoverage lexes HCL source and marks every byte that belongs to a
// comment token. Heredoc and string contents are never comments.
func hclCoverage(src []byte, filename string) ([]bool, error) {
	tokens, diags := hclsyntax.LexConfig(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}

	covered := make([]bool, len(src))
	for _, token := range tokens {
		if token.Type != hclsyntax.TokenComment {
			continue
		}
		end := min(token.Range.End.Byte, len(src))
		for i := token.Range.Start.Byte; i < end; i++ {
			covered[i] = true
		}
	}
	return covered, nil
}
