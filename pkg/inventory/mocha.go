package inventory

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/testrig/pkg/domain"
)

// Mocha BDD and TDD interface functions.
const (
	FuncContext  = "context"
	FuncDescribe = "describe"
	FuncIt       = "it"
	FuncSpecify  = "specify"
	FuncSuite    = "suite"
	FuncTest     = "test"

	ModifierOnly = "only"
	ModifierSkip = "skip"

	DynamicNamePlaceholder = "(dynamic)"
)

var suiteFuncs = map[string]bool{FuncDescribe: true, FuncContext: true, FuncSuite: true}

var testFuncs = map[string]bool{FuncIt: true, FuncSpecify: true, FuncTest: true}

var skippedAliases = map[string]string{
	"xdescribe": FuncDescribe,
	"xcontext":  FuncContext,
	"xit":       FuncIt,
	"xspecify":  FuncSpecify,
}

var focusedAliases = map[string]string{
	"fdescribe": FuncDescribe,
	"fcontext":  FuncContext,
	"fit":       FuncIt,
	"fspecify":  FuncSpecify,
}

type extractor struct {
	file   *domain.TestFile
	path   string
	source []byte
}

// extract collects the suites and tests declared under root.
func extract(root *sitter.Node, source []byte, path string, lang domain.Language) *domain.TestFile {
	e := &extractor{
		file:   &domain.TestFile{Path: path, Language: lang},
		path:   path,
		source: source,
	}
	e.walk(root, nil, 0)
	return e.file
}

func (e *extractor) walk(node *sitter.Node, suite *domain.TestSuite, depth int) {
	if depth > maxTreeDepth {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "call_expression" && e.call(child, suite, depth) {
			continue
		}
		e.walk(child, suite, depth+1)
	}
}

// call records a suite or test declared by node. It reports false for any
// other call so the caller keeps walking into its arguments.
func (e *extractor) call(node *sitter.Node, parent *domain.TestSuite, depth int) bool {
	fn := node.ChildByFieldName("function")
	args := node.ChildByFieldName("arguments")
	if fn == nil || args == nil {
		return false
	}

	name, status, modifier := e.callee(fn)
	isSuite, isTest := suiteFuncs[name], testFuncs[name]
	if !isSuite && !isTest {
		return false
	}

	title := e.title(args)
	if title == "" {
		return false
	}

	callback := findCallback(args)
	if callback == nil && status == domain.TestStatusActive {
		status = domain.TestStatusPending
	}

	if isTest {
		test := domain.Test{
			Location: location(node, e.path),
			Modifier: modifier,
			Name:     title,
			Status:   status,
		}
		if parent != nil {
			parent.Tests = append(parent.Tests, test)
		} else {
			e.file.Tests = append(e.file.Tests, test)
		}
		return true
	}

	suite := domain.TestSuite{
		Location: location(node, e.path),
		Modifier: modifier,
		Name:     title,
		Status:   status,
	}
	if callback != nil {
		if body := callback.ChildByFieldName("body"); body != nil {
			e.walk(body, &suite, depth+1)
		}
	}
	if parent != nil {
		parent.Suites = append(parent.Suites, suite)
	} else {
		e.file.Suites = append(e.file.Suites, suite)
	}
	return true
}

// callee resolves the function being called to a base name and the status
// its spelling implies: xit, fdescribe, it.skip, describe.only.
func (e *extractor) callee(fn *sitter.Node) (string, domain.TestStatus, string) {
	switch fn.Type() {
	case "identifier":
		name := nodeText(fn, e.source)
		if base, ok := skippedAliases[name]; ok {
			return base, domain.TestStatusSkipped, name
		}
		if base, ok := focusedAliases[name]; ok {
			return base, domain.TestStatusFocused, name
		}
		return name, domain.TestStatusActive, ""
	case "member_expression":
		obj := fn.ChildByFieldName("object")
		prop := fn.ChildByFieldName("property")
		if obj == nil || prop == nil || obj.Type() != "identifier" {
			return "", domain.TestStatusActive, ""
		}
		switch nodeText(prop, e.source) {
		case ModifierOnly:
			return nodeText(obj, e.source), domain.TestStatusFocused, ModifierOnly
		case ModifierSkip:
			return nodeText(obj, e.source), domain.TestStatusSkipped, ModifierSkip
		}
	}
	return "", domain.TestStatusActive, ""
}

// title returns the first argument as a suite or test title. Non-literal
// titles yield DynamicNamePlaceholder; a call without arguments yields "".
func (e *extractor) title(args *sitter.Node) string {
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		switch arg.Type() {
		case "comment":
			continue
		case "string", "template_string":
			return unquote(nodeText(arg, e.source))
		default:
			return DynamicNamePlaceholder
		}
	}
	return ""
}

func findCallback(args *sitter.Node) *sitter.Node {
	for i := 0; i < int(args.NamedChildCount()); i++ {
		child := args.NamedChild(i)
		switch child.Type() {
		case "arrow_function", "function_expression", "function":
			return child
		}
	}
	return nil
}

func unquote(text string) string {
	if len(text) < 2 {
		return text
	}
	switch text[0] {
	case '`':
		return text[1 : len(text)-1]
	case '\'':
		inner := strings.ReplaceAll(text[1:len(text)-1], `\'`, `'`)
		if s, err := strconv.Unquote(`"` + strings.ReplaceAll(inner, `"`, `\"`) + `"`); err == nil {
			return s
		}
		return text
	}
	if s, err := strconv.Unquote(text); err == nil {
		return s
	}
	return text
}
