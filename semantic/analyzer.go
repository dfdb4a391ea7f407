// Package semantic resolves a syntax tree into a program: every variable reference is
// bound to a frame slot and scoping rules are checked. Analysis either succeeds with a
// complete program or fails with the full list of errors.
package semantic

import (
	"github.com/gahag/hush/program"
	"github.com/gahag/hush/source"
	"github.com/gahag/hush/symbol"
	"github.com/gahag/hush/syntax"
)

// StdName is the predeclared global holding the std library.
const StdName = "std"

// Analyzer resolves scripts against a persistent root scope, so that globals declared by
// one call are visible to the next. A call that fails leaves the root scope untouched.
type Analyzer struct {
	in   *symbol.Interner
	root *funcScope
}

func New(in *symbol.Interner) *Analyzer {
	root := newFuncScope(nil, false)
	root.declare(in.GetOrIntern(StdName)) // program.StdSlot
	return &Analyzer{in: in, root: root}
}

// Analyze is the one-shot form of (*Analyzer).Analyze.
func Analyze(ast *syntax.AST, in *symbol.Interner) (*program.Program, []*Error) {
	return New(in).Analyze(ast)
}

func (a *Analyzer) Analyze(ast *syntax.AST) (*program.Program, []*Error) {
	snap := a.root.snapshot()
	r := &resolver{in: a.in, scope: a.root}

	body := r.statements(ast.Statements)
	if len(r.errors) > 0 {
		a.root.restore(snap)
		return nil, r.errors
	}

	return &program.Program{
		Path: ast.Path,
		Root: &program.Function{
			Body:      body,
			FrameSize: a.root.size,
			At:        source.File(ast.Path),
		},
	}, nil
}

type resolver struct {
	in     *symbol.Interner
	scope  *funcScope
	errors []*Error

	// hoisted maps function statements to the slot declared for them ahead of the block.
	hoisted map[*syntax.FunctionStmt]int
}

func (r *resolver) errorf(kind ErrorKind, name symbol.Symbol, pos source.Pos) {
	r.errors = append(r.errors, &Error{Kind: kind, Name: name, Pos: pos})
}

func (r *resolver) declare(id *syntax.Identifier) int {
	idx, ok := r.scope.declare(id.Name)
	if !ok {
		r.errorf(DuplicateDeclaration, id.Name, id.Pos())
	}
	return idx
}

// statements resolves a block in the current block scope. Function statements are
// declared up front so functions in one block may call each other.
func (r *resolver) statements(stmts syntax.Block) program.Block {
	for _, stmt := range stmts {
		if fn, ok := stmt.(*syntax.FunctionStmt); ok {
			if r.hoisted == nil {
				r.hoisted = make(map[*syntax.FunctionStmt]int)
			}
			r.hoisted[fn] = r.declare(fn.Name)
		}
	}

	out := make(program.Block, 0, len(stmts))
	for _, stmt := range stmts {
		if s := r.statement(stmt); s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (r *resolver) block(stmts syntax.Block) program.Block {
	r.scope.pushBlock()
	defer r.scope.popBlock()
	return r.statements(stmts)
}

func (r *resolver) statement(stmt syntax.Statement) program.Stmt {
	switch s := stmt.(type) {
	case *syntax.LetStmt:
		var value program.Expr
		if s.Value != nil {
			value = r.expression(s.Value)
		}
		return &program.Let{Index: r.declare(s.Name), Value: value, At: s.Pos()}

	case *syntax.FunctionStmt:
		idx := r.hoisted[s]
		fn := r.function(s.Function, s.Name.Name)
		return &program.Let{Index: idx, Value: &program.FunctionLit{Func: fn, At: s.Function.Pos()}, At: s.Pos()}

	case *syntax.AssignStmt:
		return r.assignment(s)

	case *syntax.ExprStmt:
		return &program.ExprStmt{Expr: r.expression(s.Expr), At: s.Pos()}

	case *syntax.IfStmt:
		return r.ifChain(s.Condition, s.Consequent, s.ElseIf, s.Alternate, s.Pos())

	case *syntax.WhileStmt:
		cond := r.expression(s.Condition)
		r.scope.loops++
		body := r.block(s.Body)
		r.scope.loops--
		return &program.While{Condition: cond, Body: body, At: s.Pos()}

	case *syntax.ForStmt:
		iterable := r.expression(s.Iterable)
		r.scope.pushBlock()
		idx := r.declare(s.Iterator)
		r.scope.loops++
		body := r.block(s.Body)
		r.scope.loops--
		r.scope.popBlock()
		return &program.For{Index: idx, Iterable: iterable, Body: body, At: s.Pos()}

	case *syntax.ReturnStmt:
		if !r.scope.isFunc {
			r.errorf(ReturnOutsideFunction, symbol.Invalid, s.Pos())
		}
		var value program.Expr
		if s.Value != nil {
			value = r.expression(s.Value)
		}
		return &program.Return{Value: value, At: s.Pos()}

	case *syntax.BreakStmt:
		if r.scope.loops == 0 {
			r.errorf(BreakOutsideLoop, symbol.Invalid, s.Pos())
		}
		return &program.Break{At: s.Pos()}

	default:
		return nil
	}
}

func (r *resolver) ifChain(cond syntax.Expression, then syntax.Block, elseIfs []*syntax.IfStmt, alternate syntax.Block, pos source.Pos) program.Stmt {
	stmt := &program.If{Condition: r.expression(cond), Then: r.block(then), At: pos}
	switch {
	case len(elseIfs) > 0:
		next := elseIfs[0]
		stmt.Else = program.Block{r.ifChain(next.Condition, next.Consequent, elseIfs[1:], alternate, next.Pos())}
	case alternate != nil:
		stmt.Else = r.block(alternate)
	}
	return stmt
}

func (r *resolver) assignment(s *syntax.AssignStmt) program.Stmt {
	switch target := s.Target.(type) {
	case *syntax.Identifier:
		slot, ok := r.lookup(target)
		value := r.expression(s.Value)
		if !ok {
			return nil
		}
		return &program.AssignVar{Slot: slot, Value: value, At: s.Pos()}
	case *syntax.IndexExpr:
		return &program.AssignIndex{
			Object: r.expression(target.Object),
			Index:  r.expression(target.Index),
			Value:  r.expression(s.Value),
			At:     s.Pos(),
		}
	case *syntax.MemberExpr:
		return &program.AssignIndex{
			Object: r.expression(target.Object),
			Index:  r.memberKey(target.Field),
			Value:  r.expression(s.Value),
			At:     s.Pos(),
		}
	default:
		// Reported by the parser; resolve both sides for their own diagnostics.
		r.expression(s.Target)
		return &program.ExprStmt{Expr: r.expression(s.Value), At: s.Pos()}
	}
}

func (r *resolver) lookup(id *syntax.Identifier) (program.Slot, bool) {
	depth := 0
	for scope := r.scope; scope != nil; scope = scope.parent {
		if idx, ok := scope.lookupLocal(id.Name); ok {
			return program.Slot{Depth: depth, Index: idx}, true
		}
		depth++
	}
	r.errorf(UndeclaredVariable, id.Name, id.Pos())
	return program.Slot{}, false
}

func (r *resolver) function(lit *syntax.FunctionLit, name symbol.Symbol) *program.Function {
	outer, outerHoisted := r.scope, r.hoisted
	r.scope = newFuncScope(outer, true)
	r.hoisted = nil
	defer func() {
		r.scope, r.hoisted = outer, outerHoisted
	}()

	for _, param := range lit.Params {
		r.declare(param)
	}
	body := r.statements(lit.Body)

	return &program.Function{
		Name:      name,
		Params:    len(lit.Params),
		FrameSize: r.scope.size,
		Body:      body,
		At:        lit.Pos(),
	}
}

func (r *resolver) memberKey(field *syntax.Identifier) program.Expr {
	return &program.StringLit{Value: r.in.Name(field.Name), At: field.Pos()}
}

func (r *resolver) expressions(exprs []syntax.Expression) []program.Expr {
	out := make([]program.Expr, len(exprs))
	for i, expr := range exprs {
		out[i] = r.expression(expr)
	}
	return out
}

func (r *resolver) expression(expr syntax.Expression) program.Expr {
	switch e := expr.(type) {
	case *syntax.Identifier:
		slot, ok := r.lookup(e)
		if !ok {
			return &program.NilLit{At: e.Pos()}
		}
		return &program.Var{Name: e.Name, Slot: slot, At: e.Pos()}
	case *syntax.SelfExpr:
		if !r.scope.isFunc {
			r.errorf(SelfOutsideFunction, symbol.Invalid, e.Pos())
		}
		return &program.Self{At: e.Pos()}
	case *syntax.NilLiteral:
		return &program.NilLit{At: e.Pos()}
	case *syntax.BoolLiteral:
		return &program.BoolLit{Value: e.Value, At: e.Pos()}
	case *syntax.IntegerLiteral:
		return &program.IntLit{Value: e.Value, At: e.Pos()}
	case *syntax.FloatLiteral:
		return &program.FloatLit{Value: e.Value, At: e.Pos()}
	case *syntax.ByteLiteral:
		return &program.ByteLit{Value: e.Value, At: e.Pos()}
	case *syntax.StringLiteral:
		return &program.StringLit{Value: e.Value, At: e.Pos()}
	case *syntax.ArrayLiteral:
		return &program.ArrayLit{Elements: r.expressions(e.Elements), At: e.Pos()}
	case *syntax.DictLiteral:
		entries := make([]program.DictEntry, len(e.Entries))
		for i, entry := range e.Entries {
			entries[i] = program.DictEntry{Key: r.in.Name(entry.Key.Name), Value: r.expression(entry.Value)}
		}
		return &program.DictLit{Entries: entries, At: e.Pos()}
	case *syntax.FunctionLit:
		return &program.FunctionLit{Func: r.function(e, symbol.Invalid), At: e.Pos()}
	case *syntax.UnaryExpr:
		return &program.Unary{Op: e.Operator, Operand: r.expression(e.Operand), At: e.Pos()}
	case *syntax.BinaryExpr:
		return &program.Binary{Op: e.Operator, Left: r.expression(e.Left), Right: r.expression(e.Right), At: e.Pos()}
	case *syntax.CallExpr:
		if member, ok := e.Callee.(*syntax.MemberExpr); ok {
			return &program.MethodCall{
				Object: r.expression(member.Object),
				Field:  r.in.Name(member.Field.Name),
				Args:   r.expressions(e.Args),
				At:     e.Pos(),
			}
		}
		return &program.Call{Callee: r.expression(e.Callee), Args: r.expressions(e.Args), At: e.Pos()}
	case *syntax.IndexExpr:
		return &program.Index{Object: r.expression(e.Object), Index: r.expression(e.Index), At: e.Pos()}
	case *syntax.MemberExpr:
		return &program.Index{Object: r.expression(e.Object), Index: r.memberKey(e.Field), At: e.Pos()}
	default:
		// nil or *syntax.BadExpr: the syntax error is already recorded.
		pos := source.Pos{}
		if expr != nil {
			pos = expr.Pos()
		}
		return &program.NilLit{At: pos}
	}
}
