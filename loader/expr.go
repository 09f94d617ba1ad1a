package loader

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/chhabrakadabra/jsl/debug"
	"github.com/chhabrakadabra/jsl/field"
)

// buildBase assembles the common attributes. defaultExpr and
// choicesExpr compile once at load time into producers that re-evaluate
// on every read, so side-effecting expressions behave like callable
// defaults.
func (l *Loader) buildBase(fs *fieldSpec) (field.Base, error) {
	base := field.Base{
		Required:    fs.Required,
		Title:       fs.Title,
		Description: fs.Description,
		Default:     fs.Default,
	}
	if fs.Choices != nil {
		base.Choices = fs.Choices
	}
	if fs.DefaultExpr != "" {
		prog, err := compileExpr(fs.DefaultExpr)
		if err != nil {
			return field.Base{}, fmt.Errorf("defaultExpr: %w", err)
		}
		base.Default = func() any {
			return l.run(prog, fs.DefaultExpr)
		}
	}
	if fs.ChoicesExpr != "" {
		prog, err := compileExpr(fs.ChoicesExpr)
		if err != nil {
			return field.Base{}, fmt.Errorf("choicesExpr: %w", err)
		}
		base.Choices = func() []any {
			out, ok := l.run(prog, fs.ChoicesExpr).([]any)
			if !ok {
				return nil
			}
			return out
		}
	}
	return base, nil
}

func compileExpr(src string) (*vm.Program, error) {
	prog, err := expr.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("expression %q: %w", src, err)
	}
	return prog, nil
}

func (l *Loader) run(prog *vm.Program, src string) any {
	env := l.Env
	if env == nil {
		env = map[string]any{}
	}
	out, err := vm.Run(prog, env)
	if err != nil {
		if debug.Expr() {
			debug.Logf("expr %q: %v\n", src, err)
		}
		return nil
	}
	return out
}
