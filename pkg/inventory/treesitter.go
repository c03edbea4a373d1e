package inventory

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/specvital/testrig/pkg/domain"
)

// maxTreeDepth is the maximum recursion depth when walking syntax trees.
const maxTreeDepth = 1000

var (
	jsLang   *sitter.Language
	tsLang   *sitter.Language
	tsxLang  *sitter.Language
	langOnce sync.Once
)

func grammar(lang domain.Language) *sitter.Language {
	langOnce.Do(func() {
		jsLang = javascript.GetLanguage()
		tsLang = typescript.GetLanguage()
		tsxLang = tsx.GetLanguage()
	})
	switch lang {
	case domain.LanguageJavaScript:
		return jsLang
	case domain.LanguageTSX:
		return tsxLang
	default:
		return tsLang
	}
}

// parse parses source with a fresh parser. Parsers are not reused: a
// cancelled ParseCtx leaves the parser's cancel flag set.
// Caller MUST call tree.Close().
func parse(ctx context.Context, lang domain.Language, source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar(lang))

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", lang, err)
	}
	return tree, nil
}

// nodeText returns the source text of node, or "" when its range falls
// outside source.
func nodeText(node *sitter.Node, source []byte) string {
	start, end := node.StartByte(), node.EndByte()
	if start > end || end > uint32(len(source)) {
		return ""
	}
	return string(source[start:end])
}

func location(node *sitter.Node, path string) domain.Location {
	return domain.Location{
		File:      path,
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}
}
