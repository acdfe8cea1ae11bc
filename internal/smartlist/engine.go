// Package smartlist provides CEL-based smart filters over catalog items.
//
// A smart filter is a boolean expression evaluated in memory against
// already-fetched items, after the repository's own query has run. It never
// touches the store. Example expressions:
//
//	status == "Finished" && rating >= 8
//	category in ["Book", "Movie"] && !rated
//	notes.contains("reread") || has_cover
package smartlist

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"

	"mediadex/internal/domain"
)

// Engine owns the CEL environment describing one catalog item. Building
// the environment is the expensive part; one engine serves any number of
// compiled filters.
type Engine struct {
	env *cel.Env
}

// NewEngine creates an engine exposing the item variables.
//
// rating is 0 for unrated items; use rated to tell "unrated" apart from
// "rated zero". category and status carry the display names ("Book",
// "In Progress", ...).
func NewEngine() (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Variable("title", cel.StringType),
		cel.Variable("category", cel.StringType),
		cel.Variable("status", cel.StringType),
		cel.Variable("rating", cel.IntType),
		cel.Variable("rated", cel.BoolType),
		cel.Variable("notes", cel.StringType),
		cel.Variable("has_cover", cel.BoolType),
		cel.Variable("created", cel.TimestampType),
		cel.Variable("updated", cel.TimestampType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	return &Engine{env: env}, nil
}

// Filter is a compiled smart filter, safe for reuse across items.
type Filter struct {
	Expression string
	program    cel.Program
}

// Compile parses and type-checks an expression. Anything that does not
// evaluate to a bool is rejected here rather than at match time.
func (e *Engine) Compile(expression string) (*Filter, error) {
	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("failed to compile filter %q: %w", expression, issues.Err())
	}

	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("filter %q: expression must return bool, got %s", expression, ast.OutputType())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create program for filter %q: %w", expression, err)
	}

	return &Filter{
		Expression: expression,
		program:    program,
	}, nil
}

// Match evaluates the filter against one item.
func (f *Filter) Match(item *domain.MediaItem) (bool, error) {
	out, _, err := f.program.Eval(activation(item))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter %q: %w", f.Expression, err)
	}

	b, ok := out.(types.Bool)
	if !ok {
		return false, fmt.Errorf("filter %q returned %T, want bool", f.Expression, out)
	}
	return bool(b), nil
}

// Apply returns the subset of items matching the filter, preserving the
// input order.
func (f *Filter) Apply(items []*domain.MediaItem) ([]*domain.MediaItem, error) {
	var matched []*domain.MediaItem
	for _, item := range items {
		ok, err := f.Match(item)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func activation(item *domain.MediaItem) map[string]any {
	rating := 0
	if item.Rating != nil {
		rating = *item.Rating
	}
	notes := ""
	if item.Notes != nil {
		notes = *item.Notes
	}

	return map[string]any{
		"title":     item.Title,
		"category":  item.Category.String(),
		"status":    item.Status.String(),
		"rating":    rating,
		"rated":     item.Rating != nil,
		"notes":     notes,
		"has_cover": item.CoverPath != nil,
		"created":   item.CreatedAt,
		"updated":   item.UpdatedAt,
	}
}
