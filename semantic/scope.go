package semantic

import "github.com/gahag/hush/symbol"

// funcScope tracks the slots of one function frame. Blocks nest inside it; slots are
// never reused, so the frame size is the number of declarations.
type funcScope struct {
	parent *funcScope
	blocks []map[symbol.Symbol]int
	size   int
	loops  int
	isFunc bool
}

func newFuncScope(parent *funcScope, isFunc bool) *funcScope {
	return &funcScope{
		parent: parent,
		blocks: []map[symbol.Symbol]int{{}},
		isFunc: isFunc,
	}
}

func (s *funcScope) pushBlock() {
	s.blocks = append(s.blocks, map[symbol.Symbol]int{})
}

func (s *funcScope) popBlock() {
	s.blocks = s.blocks[:len(s.blocks)-1]
}

// declare allocates a slot in the innermost block. It reports false when the name is
// already declared in that block, returning the existing slot.
func (s *funcScope) declare(name symbol.Symbol) (int, bool) {
	block := s.blocks[len(s.blocks)-1]
	if idx, ok := block[name]; ok {
		return idx, false
	}
	idx := s.size
	s.size++
	block[name] = idx
	return idx, true
}

func (s *funcScope) lookupLocal(name symbol.Symbol) (int, bool) {
	for i := len(s.blocks) - 1; i >= 0; i-- {
		if idx, ok := s.blocks[i][name]; ok {
			return idx, true
		}
	}
	return 0, false
}

// snapshot is the state of a root scope, used to undo a failed REPL chunk.
type snapshot struct {
	names map[symbol.Symbol]int
	size  int
}

func (s *funcScope) snapshot() snapshot {
	names := make(map[symbol.Symbol]int, len(s.blocks[0]))
	for name, idx := range s.blocks[0] {
		names[name] = idx
	}
	return snapshot{names: names, size: s.size}
}

func (s *funcScope) restore(snap snapshot) {
	s.blocks = []map[symbol.Symbol]int{snap.names}
	s.size = snap.size
	s.loops = 0
}
