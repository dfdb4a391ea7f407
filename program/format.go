package program

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gahag/hush/symbol"
)

// Format renders prog as an indented tree with resolved slots.
func Format(prog *Program, in *symbol.Interner) string {
	p := &printer{in: in}
	p.function(prog.Root, 0)
	return strings.TrimRight(p.b.String(), "\n")
}

type printer struct {
	in *symbol.Interner
	b  strings.Builder
}

func (p *printer) line(depth int, format string, args ...any) {
	p.b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(&p.b, format, args...)
	p.b.WriteByte('\n')
}

func (p *printer) function(fn *Function, depth int) {
	name := "<anonymous>"
	if fn.Name != symbol.Invalid {
		name = p.in.Name(fn.Name)
	}
	p.line(depth, "function %s (params %d, frame %d)", name, fn.Params, fn.FrameSize)
	p.block(fn.Body, depth+1)
}

func (p *printer) block(stmts Block, depth int) {
	for _, stmt := range stmts {
		p.stmt(stmt, depth)
	}
}

func (p *printer) optional(expr Expr, depth int) {
	if expr == nil {
		p.line(depth, "nil")
		return
	}
	p.expr(expr, depth)
}

func (p *printer) stmt(stmt Stmt, depth int) {
	switch s := stmt.(type) {
	case *Let:
		p.line(depth, "let [%d]", s.Index)
		p.optional(s.Value, depth+1)
	case *AssignVar:
		p.line(depth, "assign %s", s.Slot)
		p.expr(s.Value, depth+1)
	case *AssignIndex:
		p.line(depth, "assign index")
		p.expr(s.Object, depth+1)
		p.expr(s.Index, depth+1)
		p.expr(s.Value, depth+1)
	case *ExprStmt:
		p.expr(s.Expr, depth)
	case *If:
		p.line(depth, "if")
		p.expr(s.Condition, depth+1)
		p.line(depth, "then")
		p.block(s.Then, depth+1)
		if len(s.Else) > 0 {
			p.line(depth, "else")
			p.block(s.Else, depth+1)
		}
	case *While:
		p.line(depth, "while")
		p.expr(s.Condition, depth+1)
		p.line(depth, "do")
		p.block(s.Body, depth+1)
	case *For:
		p.line(depth, "for [%d] in", s.Index)
		p.expr(s.Iterable, depth+1)
		p.line(depth, "do")
		p.block(s.Body, depth+1)
	case *Return:
		p.line(depth, "return")
		p.optional(s.Value, depth+1)
	case *Break:
		p.line(depth, "break")
	}
}

func (p *printer) expr(expr Expr, depth int) {
	switch e := expr.(type) {
	case *NilLit:
		p.line(depth, "nil")
	case *BoolLit:
		p.line(depth, "bool %t", e.Value)
	case *IntLit:
		p.line(depth, "int %d", e.Value)
	case *FloatLit:
		p.line(depth, "float %s", strconv.FormatFloat(e.Value, 'g', -1, 64))
	case *ByteLit:
		p.line(depth, "byte %q", e.Value)
	case *StringLit:
		p.line(depth, "string %q", e.Value)
	case *Var:
		p.line(depth, "var %s %s", p.in.Name(e.Name), e.Slot)
	case *Self:
		p.line(depth, "self")
	case *ArrayLit:
		p.line(depth, "array")
		for _, elem := range e.Elements {
			p.expr(elem, depth+1)
		}
	case *DictLit:
		p.line(depth, "dict")
		for _, entry := range e.Entries {
			p.line(depth+1, "%s:", entry.Key)
			p.expr(entry.Value, depth+2)
		}
	case *FunctionLit:
		p.function(e.Func, depth)
	case *Unary:
		p.line(depth, "unary %s", e.Op)
		p.expr(e.Operand, depth+1)
	case *Binary:
		p.line(depth, "binary %s", e.Op)
		p.expr(e.Left, depth+1)
		p.expr(e.Right, depth+1)
	case *Call:
		p.line(depth, "call")
		p.expr(e.Callee, depth+1)
		for _, arg := range e.Args {
			p.expr(arg, depth+1)
		}
	case *MethodCall:
		p.line(depth, "method call .%s", e.Field)
		p.expr(e.Object, depth+1)
		for _, arg := range e.Args {
			p.expr(arg, depth+1)
		}
	case *Index:
		p.line(depth, "index")
		p.expr(e.Object, depth+1)
		p.expr(e.Index, depth+1)
	}
}

func (s Slot) String() string {
	return fmt.Sprintf("[%d:%d]", s.Depth, s.Index)
}
