// Package program holds the validated, slot-resolved form of a script. It is produced
// by the semantic analyzer and consumed by the runtime; nothing in it refers back to the
// syntax tree.
package program

import (
	"github.com/gahag/hush/source"
	"github.com/gahag/hush/symbol"
	"github.com/gahag/hush/syntax"
)

// Program is a validated script. Root is the implicit top level function whose frame
// holds the globals; slot 0 of that frame is the std library.
type Program struct {
	Path symbol.Symbol
	Root *Function
}

// StdSlot is the root frame slot holding the std library dict.
const StdSlot = 0

// Function is the static part of a closure.
type Function struct {
	Name      symbol.Symbol // symbol.Invalid for anonymous functions
	Params    int
	FrameSize int
	Body      Block
	At        source.Pos
}

// Slot addresses a variable: Depth counts enclosing function frames to walk outwards,
// Index is the position within that frame.
type Slot struct {
	Depth int
	Index int
}

type Node interface {
	Pos() source.Pos
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

type Block []Stmt

// Let initializes a slot of the current frame. A nil Value stores Nil.
type Let struct {
	Index int
	Value Expr
	At    source.Pos
}

type AssignVar struct {
	Slot  Slot
	Value Expr
	At    source.Pos
}

// AssignIndex stores into an Array element or Dict entry; member assignment is lowered
// to it with a String key.
type AssignIndex struct {
	Object Expr
	Index  Expr
	Value  Expr
	At     source.Pos
}

type ExprStmt struct {
	Expr Expr
	At   source.Pos
}

// If has elseif chains lowered into nested Ifs in Else.
type If struct {
	Condition Expr
	Then      Block
	Else      Block
	At        source.Pos
}

type While struct {
	Condition Expr
	Body      Block
	At        source.Pos
}

// For binds each item of Iterable to slot Index of the current frame.
type For struct {
	Index    int
	Iterable Expr
	Body     Block
	At       source.Pos
}

type Return struct {
	Value Expr
	At    source.Pos
}

type Break struct {
	At source.Pos
}

func (s *Let) Pos() source.Pos         { return s.At }
func (s *AssignVar) Pos() source.Pos   { return s.At }
func (s *AssignIndex) Pos() source.Pos { return s.At }
func (s *ExprStmt) Pos() source.Pos    { return s.At }
func (s *If) Pos() source.Pos          { return s.At }
func (s *While) Pos() source.Pos       { return s.At }
func (s *For) Pos() source.Pos         { return s.At }
func (s *Return) Pos() source.Pos      { return s.At }
func (s *Break) Pos() source.Pos       { return s.At }

func (*Let) stmtNode()         {}
func (*AssignVar) stmtNode()   {}
func (*AssignIndex) stmtNode() {}
func (*ExprStmt) stmtNode()    {}
func (*If) stmtNode()          {}
func (*While) stmtNode()       {}
func (*For) stmtNode()         {}
func (*Return) stmtNode()      {}
func (*Break) stmtNode()       {}

type NilLit struct {
	At source.Pos
}

type BoolLit struct {
	Value bool
	At    source.Pos
}

type IntLit struct {
	Value int64
	At    source.Pos
}

type FloatLit struct {
	Value float64
	At    source.Pos
}

type ByteLit struct {
	Value byte
	At    source.Pos
}

type StringLit struct {
	Value string
	At    source.Pos
}

type Var struct {
	Name symbol.Symbol
	Slot Slot
	At   source.Pos
}

// Self is the receiver of the innermost enclosing function call.
type Self struct {
	At source.Pos
}

type ArrayLit struct {
	Elements []Expr
	At       source.Pos
}

type DictEntry struct {
	Key   string
	Value Expr
}

type DictLit struct {
	Entries []DictEntry
	At      source.Pos
}

type FunctionLit struct {
	Func *Function
	At   source.Pos
}

type Unary struct {
	Op      syntax.Operator
	Operand Expr
	At      source.Pos
}

type Binary struct {
	Op    syntax.Operator
	Left  Expr
	Right Expr
	At    source.Pos
}

type Call struct {
	Callee Expr
	Args   []Expr
	At     source.Pos
}

// MethodCall is obj.field(args): the callee is looked up as obj["field"] and called with
// self bound to obj.
type MethodCall struct {
	Object Expr
	Field  string
	Args   []Expr
	At     source.Pos
}

type Index struct {
	Object Expr
	Index  Expr
	At     source.Pos
}

func (e *NilLit) Pos() source.Pos      { return e.At }
func (e *BoolLit) Pos() source.Pos     { return e.At }
func (e *IntLit) Pos() source.Pos      { return e.At }
func (e *FloatLit) Pos() source.Pos    { return e.At }
func (e *ByteLit) Pos() source.Pos     { return e.At }
func (e *StringLit) Pos() source.Pos   { return e.At }
func (e *Var) Pos() source.Pos         { return e.At }
func (e *Self) Pos() source.Pos        { return e.At }
func (e *ArrayLit) Pos() source.Pos    { return e.At }
func (e *DictLit) Pos() source.Pos     { return e.At }
func (e *FunctionLit) Pos() source.Pos { return e.At }
func (e *Unary) Pos() source.Pos       { return e.At }
func (e *Binary) Pos() source.Pos      { return e.At }
func (e *Call) Pos() source.Pos        { return e.At }
func (e *MethodCall) Pos() source.Pos  { return e.At }
func (e *Index) Pos() source.Pos       { return e.At }

func (*NilLit) exprNode()      {}
func (*BoolLit) exprNode()     {}
func (*IntLit) exprNode()      {}
func (*FloatLit) exprNode()    {}
func (*ByteLit) exprNode()     {}
func (*StringLit) exprNode()   {}
func (*Var) exprNode()         {}
func (*Self) exprNode()        {}
func (*ArrayLit) exprNode()    {}
func (*DictLit) exprNode()     {}
func (*FunctionLit) exprNode() {}
func (*Unary) exprNode()       {}
func (*Binary) exprNode()      {}
func (*Call) exprNode()        {}
func (*MethodCall) exprNode()  {}
func (*Index) exprNode()       {}
