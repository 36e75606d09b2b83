package arena

import "fmt"

// Block is the unit of storage of the arena.
type Block uint8

// Type is the tag stored in the first block of every node.
type Type uint8

// NAry is the arity of kinds whose child count is stored in the first two
// payload blocks (little endian).
const NAry = -1

// Kind describes how nodes of a type are laid out in blocks.
type Kind struct {
	Name string

	// Payload is the number of blocks that follow the tag block.
	Payload int

	// Arity is the fixed number of children, or NAry.
	Arity int

	// Children computes the number of children from the payload. It takes
	// precedence over Arity when set.
	Children func(payload []Block) int
}

// Size returns the number of blocks of a node of this kind.
func (k *Kind) Size() int {
	return 1 + k.Payload
}

var kinds [256]*Kind

// Register declares the layout of nodes tagged with t.
func Register(t Type, k Kind) {
	if k.Arity == NAry && k.Children == nil && k.Payload < 2 {
		panic(fmt.Sprintf("arena: n-ary kind %q needs two payload blocks", k.Name))
	}
	kinds[t] = &k
}

// KindOf returns the registered kind for t, or nil.
func KindOf(t Type) *Kind {
	return kinds[t]
}

func mustKind(t Type) *Kind {
	k := kinds[t]
	if k == nil {
		panic(fmt.Sprintf("arena: unregistered node type %d", t))
	}
	return k
}

// String returns the registered name of the type.
func (t Type) String() string {
	if k := kinds[t]; k != nil {
		return k.Name
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}
