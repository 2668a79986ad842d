package rewrite

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"fiximports/internal/mapping"
)

// span is a half-open byte range of the source.
type span struct {
	start, end uint32
}

// languageFor picks the grammar by file name. JSX only parses under tsx.
func languageFor(path string) *sitter.Language {
	if strings.HasSuffix(path, ".tsx") || strings.HasSuffix(path, ".jsx") {
		return tsx.GetLanguage()
	}
	return typescript.GetLanguage()
}

// applySpecifiers is Apply restricted to string and template literals, so
// comments and identifiers that happen to contain a key stay untouched.
func applySpecifiers(ctx context.Context, path string, content []byte, table mapping.Table) (string, []Hit, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(languageFor(path))

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return "", nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	spans := stringSpans(tree.RootNode())
	if len(spans) == 0 {
		return string(content), nil, nil
	}

	var sb strings.Builder
	sb.Grow(len(content))
	segments := make([][]Hit, 0, len(spans))
	last := uint32(0)

	for _, s := range spans {
		sb.Write(content[last:s.start])
		replaced, hits := Apply(string(content[s.start:s.end]), table)
		sb.WriteString(replaced)
		segments = append(segments, hits)
		last = s.end
	}
	sb.Write(content[last:])

	return sb.String(), mergeHits(table, segments...), nil
}

// stringSpans collects string literal nodes in source order. Nested
// literals inside template substitutions are covered by the outer span.
func stringSpans(root *sitter.Node) []span {
	var spans []span
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "string", "template_string":
			spans = append(spans, span{start: n.StartByte(), end: n.EndByte()})
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			if child := n.Child(i); child != nil {
				walk(child)
			}
		}
	}
	walk(root)
	return spans
}
