package syntax

import (
	"github.com/gahag/hush/source"
	"github.com/gahag/hush/symbol"
)

type Node interface {
	Pos() source.Pos
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

// Block is a sequence of statements sharing one lexical scope.
type Block []Statement

// AST is the best-effort syntax tree of one script. It is always produced, even when the
// script has syntax errors; malformed fragments are represented by BadExpr nodes.
type AST struct {
	Path       symbol.Symbol
	Statements Block
}

type LetStmt struct {
	Name     *Identifier
	Value    Expression
	position source.Pos
}

func (s *LetStmt) stmtNode()       {}
func (s *LetStmt) Pos() source.Pos { return s.position }

// FunctionStmt is the `function name(params) ... end` declaration form.
type FunctionStmt struct {
	Name     *Identifier
	Function *FunctionLit
	position source.Pos
}

func (s *FunctionStmt) stmtNode()       {}
func (s *FunctionStmt) Pos() source.Pos { return s.position }

type AssignStmt struct {
	Target   Expression
	Value    Expression
	position source.Pos
}

func (s *AssignStmt) stmtNode()       {}
func (s *AssignStmt) Pos() source.Pos { return s.position }

type ExprStmt struct {
	Expr     Expression
	position source.Pos
}

func (s *ExprStmt) stmtNode()       {}
func (s *ExprStmt) Pos() source.Pos { return s.position }

type IfStmt struct {
	Condition  Expression
	Consequent Block
	ElseIf     []*IfStmt
	Alternate  Block
	position   source.Pos
}

func (s *IfStmt) stmtNode()       {}
func (s *IfStmt) Pos() source.Pos { return s.position }

type WhileStmt struct {
	Condition Expression
	Body      Block
	position  source.Pos
}

func (s *WhileStmt) stmtNode()       {}
func (s *WhileStmt) Pos() source.Pos { return s.position }

type ForStmt struct {
	Iterator *Identifier
	Iterable Expression
	Body     Block
	position source.Pos
}

func (s *ForStmt) stmtNode()       {}
func (s *ForStmt) Pos() source.Pos { return s.position }

type ReturnStmt struct {
	Value    Expression
	position source.Pos
}

func (s *ReturnStmt) stmtNode()       {}
func (s *ReturnStmt) Pos() source.Pos { return s.position }

type BreakStmt struct {
	position source.Pos
}

func (s *BreakStmt) stmtNode()       {}
func (s *BreakStmt) Pos() source.Pos { return s.position }

type Identifier struct {
	Name     symbol.Symbol
	position source.Pos
}

func (e *Identifier) exprNode()       {}
func (e *Identifier) Pos() source.Pos { return e.position }

type SelfExpr struct {
	position source.Pos
}

func (e *SelfExpr) exprNode()       {}
func (e *SelfExpr) Pos() source.Pos { return e.position }

type NilLiteral struct {
	position source.Pos
}

func (e *NilLiteral) exprNode()       {}
func (e *NilLiteral) Pos() source.Pos { return e.position }

type BoolLiteral struct {
	Value    bool
	position source.Pos
}

func (e *BoolLiteral) exprNode()       {}
func (e *BoolLiteral) Pos() source.Pos { return e.position }

type IntegerLiteral struct {
	Value    int64
	position source.Pos
}

func (e *IntegerLiteral) exprNode()       {}
func (e *IntegerLiteral) Pos() source.Pos { return e.position }

type FloatLiteral struct {
	Value    float64
	position source.Pos
}

func (e *FloatLiteral) exprNode()       {}
func (e *FloatLiteral) Pos() source.Pos { return e.position }

type ByteLiteral struct {
	Value    byte
	position source.Pos
}

func (e *ByteLiteral) exprNode()       {}
func (e *ByteLiteral) Pos() source.Pos { return e.position }

type StringLiteral struct {
	Value    string
	position source.Pos
}

func (e *StringLiteral) exprNode()       {}
func (e *StringLiteral) Pos() source.Pos { return e.position }

type ArrayLiteral struct {
	Elements []Expression
	position source.Pos
}

func (e *ArrayLiteral) exprNode()       {}
func (e *ArrayLiteral) Pos() source.Pos { return e.position }

type DictEntry struct {
	Key   *Identifier
	Value Expression
}

type DictLiteral struct {
	Entries  []DictEntry
	position source.Pos
}

func (e *DictLiteral) exprNode()       {}
func (e *DictLiteral) Pos() source.Pos { return e.position }

type FunctionLit struct {
	Params   []*Identifier
	Body     Block
	position source.Pos
}

func (e *FunctionLit) exprNode()       {}
func (e *FunctionLit) Pos() source.Pos { return e.position }

type UnaryExpr struct {
	Operator Operator
	Operand  Expression
	position source.Pos
}

func (e *UnaryExpr) exprNode()       {}
func (e *UnaryExpr) Pos() source.Pos { return e.position }

type BinaryExpr struct {
	Left     Expression
	Operator Operator
	Right    Expression
	position source.Pos
}

func (e *BinaryExpr) exprNode()       {}
func (e *BinaryExpr) Pos() source.Pos { return e.position }

type CallExpr struct {
	Callee   Expression
	Args     []Expression
	position source.Pos
}

func (e *CallExpr) exprNode()       {}
func (e *CallExpr) Pos() source.Pos { return e.position }

type IndexExpr struct {
	Object   Expression
	Index    Expression
	position source.Pos
}

func (e *IndexExpr) exprNode()       {}
func (e *IndexExpr) Pos() source.Pos { return e.position }

// MemberExpr is `object.field`, sugar for indexing with the field name as a string.
type MemberExpr struct {
	Object   Expression
	Field    *Identifier
	position source.Pos
}

func (e *MemberExpr) exprNode()       {}
func (e *MemberExpr) Pos() source.Pos { return e.position }

// BadExpr stands in for an expression that failed to parse.
type BadExpr struct {
	position source.Pos
}

func (e *BadExpr) exprNode()       {}
func (e *BadExpr) Pos() source.Pos { return e.position }
