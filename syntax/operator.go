package syntax

// Operator is a unary or binary operator.
type Operator int

const (
	OpNot Operator = iota + 1
	OpNegate

	OpPlus
	OpMinus
	OpTimes
	OpDivide
	OpModulo
	OpConcat
	OpEquals
	OpNotEquals
	OpLower
	OpLowerEquals
	OpGreater
	OpGreaterEquals
	OpAnd
	OpOr
)

var operatorNames = map[Operator]string{
	OpNot:           "not",
	OpNegate:        "-",
	OpPlus:          "+",
	OpMinus:         "-",
	OpTimes:         "*",
	OpDivide:        "/",
	OpModulo:        "%",
	OpConcat:        "++",
	OpEquals:        "==",
	OpNotEquals:     "!=",
	OpLower:         "<",
	OpLowerEquals:   "<=",
	OpGreater:       ">",
	OpGreaterEquals: ">=",
	OpAnd:           "and",
	OpOr:            "or",
}

func (op Operator) String() string {
	if name, ok := operatorNames[op]; ok {
		return name
	}
	return "?"
}

var unaryOperators = map[TokenType]Operator{
	tokenNot:   OpNot,
	tokenMinus: OpNegate,
}

var binaryOperators = map[TokenType]Operator{
	tokenPlus:     OpPlus,
	tokenMinus:    OpMinus,
	tokenAsterisk: OpTimes,
	tokenSlash:    OpDivide,
	tokenPercent:  OpModulo,
	tokenConcat:   OpConcat,
	tokenEQ:       OpEquals,
	tokenNotEQ:    OpNotEquals,
	tokenLT:       OpLower,
	tokenLTE:      OpLowerEquals,
	tokenGT:       OpGreater,
	tokenGTE:      OpGreaterEquals,
	tokenAnd:      OpAnd,
	tokenOr:       OpOr,
}
