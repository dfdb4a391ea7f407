package syntax

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gahag/hush/symbol"
)

// Format renders ast as an indented tree, one node per line.
func Format(ast *AST, in *symbol.Interner) string {
	f := &formatter{in: in}
	f.block(ast.Statements, 0)
	return strings.TrimRight(f.b.String(), "\n")
}

type formatter struct {
	in *symbol.Interner
	b  strings.Builder
}

func (f *formatter) line(depth int, format string, args ...any) {
	f.b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(&f.b, format, args...)
	f.b.WriteByte('\n')
}

func (f *formatter) name(id *Identifier) string {
	if id == nil {
		return "?"
	}
	return f.in.Name(id.Name)
}

func (f *formatter) block(stmts Block, depth int) {
	for _, stmt := range stmts {
		f.statement(stmt, depth)
	}
}

func (f *formatter) statement(stmt Statement, depth int) {
	switch s := stmt.(type) {
	case *LetStmt:
		f.line(depth, "let %s", f.name(s.Name))
		if s.Value != nil {
			f.expression(s.Value, depth+1)
		}
	case *FunctionStmt:
		f.line(depth, "function %s", f.name(s.Name))
		f.function(s.Function, depth+1)
	case *AssignStmt:
		f.line(depth, "assign")
		f.expression(s.Target, depth+1)
		f.expression(s.Value, depth+1)
	case *ExprStmt:
		f.expression(s.Expr, depth)
	case *IfStmt:
		f.line(depth, "if")
		f.expression(s.Condition, depth+1)
		f.line(depth, "then")
		f.block(s.Consequent, depth+1)
		for _, clause := range s.ElseIf {
			f.line(depth, "elseif")
			f.expression(clause.Condition, depth+1)
			f.line(depth, "then")
			f.block(clause.Consequent, depth+1)
		}
		if s.Alternate != nil {
			f.line(depth, "else")
			f.block(s.Alternate, depth+1)
		}
	case *WhileStmt:
		f.line(depth, "while")
		f.expression(s.Condition, depth+1)
		f.line(depth, "do")
		f.block(s.Body, depth+1)
	case *ForStmt:
		f.line(depth, "for %s in", f.name(s.Iterator))
		f.expression(s.Iterable, depth+1)
		f.line(depth, "do")
		f.block(s.Body, depth+1)
	case *ReturnStmt:
		f.line(depth, "return")
		if s.Value != nil {
			f.expression(s.Value, depth+1)
		}
	case *BreakStmt:
		f.line(depth, "break")
	default:
		f.line(depth, "<statement %T>", stmt)
	}
}

func (f *formatter) function(fn *FunctionLit, depth int) {
	params := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = f.name(param)
	}
	f.line(depth, "params (%s)", strings.Join(params, ", "))
	f.block(fn.Body, depth)
}

func (f *formatter) expression(expr Expression, depth int) {
	switch e := expr.(type) {
	case nil:
		f.line(depth, "<missing>")
	case *Identifier:
		f.line(depth, "ident %s", f.name(e))
	case *SelfExpr:
		f.line(depth, "self")
	case *NilLiteral:
		f.line(depth, "nil")
	case *BoolLiteral:
		f.line(depth, "bool %t", e.Value)
	case *IntegerLiteral:
		f.line(depth, "int %d", e.Value)
	case *FloatLiteral:
		f.line(depth, "float %s", strconv.FormatFloat(e.Value, 'g', -1, 64))
	case *ByteLiteral:
		f.line(depth, "byte %q", e.Value)
	case *StringLiteral:
		f.line(depth, "string %q", e.Value)
	case *ArrayLiteral:
		f.line(depth, "array")
		for _, elem := range e.Elements {
			f.expression(elem, depth+1)
		}
	case *DictLiteral:
		f.line(depth, "dict")
		for _, entry := range e.Entries {
			f.line(depth+1, "%s:", f.name(entry.Key))
			f.expression(entry.Value, depth+2)
		}
	case *FunctionLit:
		f.line(depth, "function")
		f.function(e, depth+1)
	case *UnaryExpr:
		f.line(depth, "unary %s", e.Operator)
		f.expression(e.Operand, depth+1)
	case *BinaryExpr:
		f.line(depth, "binary %s", e.Operator)
		f.expression(e.Left, depth+1)
		f.expression(e.Right, depth+1)
	case *CallExpr:
		f.line(depth, "call")
		f.expression(e.Callee, depth+1)
		for _, arg := range e.Args {
			f.expression(arg, depth+1)
		}
	case *IndexExpr:
		f.line(depth, "index")
		f.expression(e.Object, depth+1)
		f.expression(e.Index, depth+1)
	case *MemberExpr:
		f.line(depth, "member .%s", f.name(e.Field))
		f.expression(e.Object, depth+1)
	case *BadExpr:
		f.line(depth, "<error>")
	default:
		f.line(depth, "<expression %T>", expr)
	}
}
