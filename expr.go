package docfill

import (
	"fmt"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ExpressionEvaluator evaluates content-cell expressions.
type ExpressionEvaluator interface {
	Evaluate(expression string, env map[string]any) (any, error)
}

// exprEvaluator implements ExpressionEvaluator using expr-lang/expr.
type exprEvaluator struct {
	cache sync.Map // expression string to compiled *vm.Program
}

// NewExpressionEvaluator creates an evaluator backed by expr-lang/expr.
func NewExpressionEvaluator() ExpressionEvaluator {
	return &exprEvaluator{}
}

func (e *exprEvaluator) Evaluate(expression string, env map[string]any) (any, error) {
	if expression == "" {
		return nil, nil
	}
	program, err := e.compile(expression)
	if err != nil {
		return nil, fmt.Errorf("compile expression %q: %w", expression, err)
	}
	result, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("evaluate expression %q: %w", expression, err)
	}
	return result, nil
}

func (e *exprEvaluator) compile(expression string) (*vm.Program, error) {
	if cached, ok := e.cache.Load(expression); ok {
		return cached.(*vm.Program), nil
	}
	program, err := expr.Compile(expression, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}
	e.cache.Store(expression, program)
	return program, nil
}

// expandContent evaluates ${...} segments inside the row's content cell
// against a per-row environment and splices the results back in. Content
// without the notation passes through untouched.
func (g *Generator) expandContent(row Row, out Output) (string, error) {
	content := row.Content
	begin, end := g.opts.notationBegin, g.opts.notationEnd
	if !strings.Contains(content, begin) {
		return content, nil
	}
	env := map[string]any{
		"user": g.opts.identity(),
		"file": out.Filename,
		"row":  row.Index,
		"now":  g.opts.now(),
	}
	var b strings.Builder
	for {
		start := strings.Index(content, begin)
		if start < 0 {
			b.WriteString(content)
			return b.String(), nil
		}
		stop := strings.Index(content[start+len(begin):], end)
		if stop < 0 {
			b.WriteString(content)
			return b.String(), nil
		}
		expression := content[start+len(begin) : start+len(begin)+stop]
		result, err := g.opts.evaluator.Evaluate(expression, env)
		if err != nil {
			return "", err
		}
		b.WriteString(content[:start])
		if result != nil {
			fmt.Fprintf(&b, "%v", result)
		}
		content = content[start+len(begin)+stop+len(end):]
	}
}
