package syntax

import (
	"strconv"

	"github.com/gahag/hush/source"
	"github.com/gahag/hush/symbol"
)

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

type parser struct {
	l        *lexer
	interner *symbol.Interner

	curToken  Token
	peekToken Token

	errors []*Error

	prefixFns map[TokenType]prefixParseFn
	infixFns  map[TokenType]infixParseFn
}

func newParser(input string, path symbol.Symbol, interner *symbol.Interner) *parser {
	p := &parser{l: newLexer(input, path), interner: interner}

	p.prefixFns = make(map[TokenType]prefixParseFn)
	p.infixFns = make(map[TokenType]infixParseFn)

	p.prefixFns[tokenIdent] = p.parseIdentifier
	p.prefixFns[tokenInt] = p.parseIntegerLiteral
	p.prefixFns[tokenFloat] = p.parseFloatLiteral
	p.prefixFns[tokenString] = p.parseStringLiteral
	p.prefixFns[tokenByte] = p.parseByteLiteral
	p.prefixFns[tokenTrue] = p.parseBooleanLiteral
	p.prefixFns[tokenFalse] = p.parseBooleanLiteral
	p.prefixFns[tokenNil] = p.parseNilLiteral
	p.prefixFns[tokenSelf] = p.parseSelf
	p.prefixFns[tokenLParen] = p.parseGroupedExpression
	p.prefixFns[tokenLBracket] = p.parseArrayLiteral
	p.prefixFns[tokenDictOpen] = p.parseDictLiteral
	p.prefixFns[tokenFunction] = p.parseFunctionLiteral
	p.prefixFns[tokenNot] = p.parsePrefixExpression
	p.prefixFns[tokenMinus] = p.parsePrefixExpression

	for tt := range binaryOperators {
		p.infixFns[tt] = p.parseInfixExpression
	}
	p.infixFns[tokenLParen] = p.parseCallExpression
	p.infixFns[tokenDot] = p.parseMemberExpression
	p.infixFns[tokenLBracket] = p.parseIndexExpression

	p.nextToken()
	p.nextToken()

	return p
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
	if p.peekToken.Type == tokenIllegal {
		p.addError(p.peekToken.Pos, p.peekToken.Literal)
	}
}

func (p *parser) parseProgram() Block {
	program := Block{}

	for p.curToken.Type != tokenEOF {
		stmt := p.parseStatement()
		if stmt != nil {
			program = append(program, stmt)
		}
		p.nextToken()
	}

	return program
}

func (p *parser) parseStatement() Statement {
	switch p.curToken.Type {
	case tokenLet:
		return p.parseLetStatement()
	case tokenFunction:
		if p.peekToken.Type == tokenIdent {
			return p.parseFunctionStatement()
		}
		return p.parseExpressionOrAssignStatement()
	case tokenIf:
		return p.parseIfStatement()
	case tokenWhile:
		return p.parseWhileStatement()
	case tokenFor:
		return p.parseForStatement()
	case tokenReturn:
		return p.parseReturnStatement()
	case tokenBreak:
		return &BreakStmt{position: p.curToken.Pos}
	default:
		return p.parseExpressionOrAssignStatement()
	}
}

func (p *parser) parseLetStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	stmt := &LetStmt{Name: p.identifier(), position: pos}

	if p.peekToken.Type == tokenAssign {
		p.nextToken()
		p.nextToken()
		stmt.Value = p.parseExpression(lowestPrec)
	}

	return stmt
}

func (p *parser) parseFunctionStatement() Statement {
	pos := p.curToken.Pos
	p.nextToken()
	name := p.identifier()

	if !p.expectPeek(tokenLParen) {
		return nil
	}
	fn := p.parseFunctionRest(pos)
	if fn == nil {
		return nil
	}

	return &FunctionStmt{Name: name, Function: fn, position: pos}
}

// parseFunctionRest parses a parameter list and body; curToken is the opening paren.
func (p *parser) parseFunctionRest(pos source.Pos) *FunctionLit {
	params := []*Identifier{}
	if p.peekToken.Type == tokenRParen {
		p.nextToken()
	} else {
		if !p.expectPeek(tokenIdent) {
			return nil
		}
		params = append(params, p.identifier())
		for p.peekToken.Type == tokenComma {
			p.nextToken()
			if !p.expectPeek(tokenIdent) {
				return nil
			}
			params = append(params, p.identifier())
		}
		if !p.expectPeek(tokenRParen) {
			return nil
		}
	}

	p.nextToken()
	body := p.parseBlock(tokenEnd)
	if p.curToken.Type != tokenEnd {
		p.errorExpected(p.curToken, "'end'")
	}

	return &FunctionLit{Params: params, Body: body, position: pos}
}

func (p *parser) parseIfStatement() Statement {
	pos := p.curToken.Pos
	p.nextToken()
	condition := p.parseExpression(lowestPrec)
	if !p.expectPeek(tokenThen) {
		return nil
	}

	p.nextToken()
	stmt := &IfStmt{Condition: condition, position: pos}
	stmt.Consequent = p.parseBlock(tokenEnd, tokenElse, tokenElseIf)

	for p.curToken.Type == tokenElseIf {
		clausePos := p.curToken.Pos
		p.nextToken()
		cond := p.parseExpression(lowestPrec)
		if !p.expectPeek(tokenThen) {
			return nil
		}
		p.nextToken()
		body := p.parseBlock(tokenEnd, tokenElse, tokenElseIf)
		stmt.ElseIf = append(stmt.ElseIf, &IfStmt{Condition: cond, Consequent: body, position: clausePos})
	}

	if p.curToken.Type == tokenElse {
		p.nextToken()
		stmt.Alternate = p.parseBlock(tokenEnd)
	}

	if p.curToken.Type != tokenEnd {
		p.errorExpected(p.curToken, "'end'")
	}

	return stmt
}

func (p *parser) parseWhileStatement() Statement {
	pos := p.curToken.Pos
	p.nextToken()
	condition := p.parseExpression(lowestPrec)
	if !p.expectPeek(tokenDo) {
		return nil
	}

	p.nextToken()
	body := p.parseBlock(tokenEnd)
	if p.curToken.Type != tokenEnd {
		p.errorExpected(p.curToken, "'end'")
	}

	return &WhileStmt{Condition: condition, Body: body, position: pos}
}

func (p *parser) parseForStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	iterator := p.identifier()

	if !p.expectPeek(tokenIn) {
		return nil
	}

	p.nextToken()
	iterable := p.parseExpression(lowestPrec)
	if !p.expectPeek(tokenDo) {
		return nil
	}

	p.nextToken()
	body := p.parseBlock(tokenEnd)
	if p.curToken.Type != tokenEnd {
		p.errorExpected(p.curToken, "'end'")
	}

	return &ForStmt{Iterator: iterator, Iterable: iterable, Body: body, position: pos}
}

func (p *parser) parseReturnStatement() Statement {
	stmt := &ReturnStmt{position: p.curToken.Pos}
	if _, ok := p.prefixFns[p.peekToken.Type]; ok {
		p.nextToken()
		stmt.Value = p.parseExpression(lowestPrec)
	}
	return stmt
}

func (p *parser) parseBlock(stop ...TokenType) Block {
	stmts := Block{}
	stopSet := make(map[TokenType]struct{}, len(stop))
	for _, tt := range stop {
		stopSet[tt] = struct{}{}
	}

	for {
		if _, ok := stopSet[p.curToken.Type]; ok || p.curToken.Type == tokenEOF {
			return stmts
		}
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.nextToken()
	}
}

func (p *parser) parseExpressionOrAssignStatement() Statement {
	expr := p.parseExpression(lowestPrec)

	if p.peekToken.Type == tokenAssign {
		pos := p.peekToken.Pos
		if !isAssignable(expr) {
			p.addError(pos, "invalid assignment target")
		}
		p.nextToken()
		p.nextToken()
		value := p.parseExpression(lowestPrec)
		return &AssignStmt{Target: expr, Value: value, position: pos}
	}

	return &ExprStmt{Expr: expr, position: expr.Pos()}
}

func isAssignable(expr Expression) bool {
	switch expr.(type) {
	case *Identifier, *IndexExpr, *MemberExpr:
		return true
	default:
		return false
	}
}

const (
	lowestPrec = iota
	precOr
	precAnd
	precEquality
	precComparison
	precSum
	precProduct
	precPrefix
	precCall
)

var precedences = map[TokenType]int{
	tokenOr:       precOr,
	tokenAnd:      precAnd,
	tokenEQ:       precEquality,
	tokenNotEQ:    precEquality,
	tokenLT:       precComparison,
	tokenLTE:      precComparison,
	tokenGT:       precComparison,
	tokenGTE:      precComparison,
	tokenPlus:     precSum,
	tokenMinus:    precSum,
	tokenConcat:   precSum,
	tokenSlash:    precProduct,
	tokenAsterisk: precProduct,
	tokenPercent:  precProduct,
	tokenLParen:   precCall,
	tokenDot:      precCall,
	tokenLBracket: precCall,
}

// parseExpression never returns nil: unparseable input becomes a BadExpr so that later
// stages still see a complete tree.
func (p *parser) parseExpression(precedence int) Expression {
	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		p.errorUnexpected(p.curToken)
		return &BadExpr{position: p.curToken.Pos}
	}

	left := prefix()

	for p.peekToken.Type != tokenEOF && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekToken.Type]
		if infix == nil || p.startsLine() {
			return left
		}
		p.nextToken()
		left = infix(left)
	}

	return left
}

// startsLine reports whether peekToken is a call or index bracket on a later line
// than curToken. Such a bracket begins a new statement.
func (p *parser) startsLine() bool {
	switch p.peekToken.Type {
	case tokenLParen, tokenLBracket:
		return p.peekToken.Pos.Line > p.curToken.Pos.Line
	default:
		return false
	}
}

func (p *parser) identifier() *Identifier {
	return &Identifier{Name: p.interner.GetOrIntern(p.curToken.Literal), position: p.curToken.Pos}
}

func (p *parser) parseIdentifier() Expression {
	return p.identifier()
}

func (p *parser) parseIntegerLiteral() Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addError(p.curToken.Pos, "integer literal out of range")
		return &BadExpr{position: p.curToken.Pos}
	}
	return &IntegerLiteral{Value: value, position: p.curToken.Pos}
}

func (p *parser) parseFloatLiteral() Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addError(p.curToken.Pos, "invalid float literal")
		return &BadExpr{position: p.curToken.Pos}
	}
	return &FloatLiteral{Value: value, position: p.curToken.Pos}
}

func (p *parser) parseStringLiteral() Expression {
	return &StringLiteral{Value: p.curToken.Literal, position: p.curToken.Pos}
}

func (p *parser) parseByteLiteral() Expression {
	return &ByteLiteral{Value: p.curToken.Literal[0], position: p.curToken.Pos}
}

func (p *parser) parseBooleanLiteral() Expression {
	return &BoolLiteral{Value: p.curToken.Type == tokenTrue, position: p.curToken.Pos}
}

func (p *parser) parseNilLiteral() Expression {
	return &NilLiteral{position: p.curToken.Pos}
}

func (p *parser) parseSelf() Expression {
	return &SelfExpr{position: p.curToken.Pos}
}

func (p *parser) parseGroupedExpression() Expression {
	p.nextToken()
	expr := p.parseExpression(lowestPrec)
	if !p.expectPeek(tokenRParen) {
		return &BadExpr{position: expr.Pos()}
	}
	return expr
}

func (p *parser) parseArrayLiteral() Expression {
	pos := p.curToken.Pos
	elements := []Expression{}

	for p.peekToken.Type != tokenRBracket {
		p.nextToken()
		elements = append(elements, p.parseExpression(lowestPrec))
		if p.peekToken.Type != tokenComma {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(tokenRBracket) {
		return &BadExpr{position: pos}
	}

	return &ArrayLiteral{Elements: elements, position: pos}
}

func (p *parser) parseDictLiteral() Expression {
	pos := p.curToken.Pos
	entries := []DictEntry{}

	for p.peekToken.Type != tokenRBracket {
		if !p.expectPeek(tokenIdent) {
			return &BadExpr{position: pos}
		}
		key := p.identifier()
		if !p.expectPeek(tokenColon) {
			return &BadExpr{position: pos}
		}
		p.nextToken()
		entries = append(entries, DictEntry{Key: key, Value: p.parseExpression(lowestPrec)})
		if p.peekToken.Type != tokenComma {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(tokenRBracket) {
		return &BadExpr{position: pos}
	}

	return &DictLiteral{Entries: entries, position: pos}
}

func (p *parser) parseFunctionLiteral() Expression {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenLParen) {
		return &BadExpr{position: pos}
	}
	fn := p.parseFunctionRest(pos)
	if fn == nil {
		return &BadExpr{position: pos}
	}
	return fn
}

func (p *parser) parsePrefixExpression() Expression {
	pos := p.curToken.Pos
	operator := unaryOperators[p.curToken.Type]
	p.nextToken()

	// A minus directly on an integer literal is part of the literal, which is the only
	// way to spell the smallest Int.
	if operator == OpNegate && p.curToken.Type == tokenInt && p.peekPrecedence() < precCall {
		value, err := strconv.ParseInt("-"+p.curToken.Literal, 10, 64)
		if err != nil {
			p.addError(p.curToken.Pos, "integer literal out of range")
			return &BadExpr{position: pos}
		}
		return &IntegerLiteral{Value: value, position: pos}
	}
	operand := p.parseExpression(precPrefix)
	return &UnaryExpr{Operator: operator, Operand: operand, position: pos}
}

func (p *parser) parseInfixExpression(left Expression) Expression {
	pos := p.curToken.Pos
	operator := binaryOperators[p.curToken.Type]
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &BinaryExpr{Left: left, Operator: operator, Right: right, position: pos}
}

func (p *parser) parseCallExpression(callee Expression) Expression {
	expr := &CallExpr{Callee: callee, position: callee.Pos()}
	args := []Expression{}

	for p.peekToken.Type != tokenRParen {
		p.nextToken()
		args = append(args, p.parseExpression(lowestPrec))
		if p.peekToken.Type != tokenComma {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(tokenRParen) {
		return &BadExpr{position: expr.position}
	}

	expr.Args = args
	return expr
}

func (p *parser) parseMemberExpression(object Expression) Expression {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenIdent) {
		return &BadExpr{position: pos}
	}
	return &MemberExpr{Object: object, Field: p.identifier(), position: pos}
}

func (p *parser) parseIndexExpression(object Expression) Expression {
	pos := p.curToken.Pos
	p.nextToken()
	index := p.parseExpression(lowestPrec)
	if !p.expectPeek(tokenRBracket) {
		return &BadExpr{position: pos}
	}
	return &IndexExpr{Object: object, Index: index, position: pos}
}

func (p *parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) expectPeek(tt TokenType) bool {
	if p.peekToken.Type == tt {
		p.nextToken()
		return true
	}
	p.errorExpected(p.peekToken, tokenLabel(tt))
	return false
}
