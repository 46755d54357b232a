package ast

import "fmt"

// Kind is the discriminant of a syntax node.
type Kind uint16

// Category groups kinds for consumers that dispatch coarsely.
type Category uint8

const (
	CatMisc Category = iota
	CatStmt
	CatDecl
	CatExpr
	CatJSX
	CatPattern
	CatType
)

func (c Category) String() string {
	switch c {
	case CatStmt:
		return "stmt"
	case CatDecl:
		return "decl"
	case CatExpr:
		return "expr"
	case CatJSX:
		return "jsx"
	case CatPattern:
		return "pattern"
	case CatType:
		return "type"
	default:
		return "misc"
	}
}

// SlotClass tells scope analysis whether a child introduces a name.
type SlotClass uint8

const (
	// Visitor slots hold structural children only.
	Visitor SlotClass = iota
	// Binding slots hold a name (or a pattern of names) declared by the parent.
	Binding
)

func (c SlotClass) String() string {
	if c == Binding {
		return "binding"
	}
	return "visitor"
}

// SlotFlags describe the cardinality of a slot.
type SlotFlags uint8

const (
	// SlotList slots hold a List node.
	SlotList SlotFlags = 1 << iota
	// SlotOptional slots may hold NoNode.
	SlotOptional
)

// Slot is one named child position of a kind.
type Slot struct {
	Name  string
	Class SlotClass
	Flags SlotFlags
}

func (s Slot) IsList() bool     { return s.Flags&SlotList != 0 }
func (s Slot) IsOptional() bool { return s.Flags&SlotOptional != 0 }
func (s Slot) IsBinding() bool  { return s.Class == Binding }

// Schema is the fixed layout of a kind. List has no slots: its children are
// its elements.
type Schema struct {
	Category Category
	Slots    []Slot
}

// slotIndex maps kind and slot name to the position in Schema.Slots.
var slotIndex = func() [kindCount]map[string]int {
	var out [kindCount]map[string]int
	for k := range schemas {
		if len(schemas[k].Slots) == 0 {
			continue
		}
		m := make(map[string]int, len(schemas[k].Slots))
		for i, s := range schemas[k].Slots {
			m[s.Name] = i
		}
		out[k] = m
	}
	return out
}()

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}

// Valid reports whether k is a declared kind.
func (k Kind) Valid() bool { return k > Invalid && k < kindCount }

// Schema returns the slot layout of k.
func (k Kind) Schema() Schema {
	if !k.Valid() {
		return Schema{}
	}
	return schemas[k]
}

// Category returns the kind's group.
func (k Kind) Category() Category { return k.Schema().Category }

// NumSlots is the number of children a node of kind k stores. Lists are
// variadic and report -1.
func (k Kind) NumSlots() int {
	if k == List {
		return -1
	}
	return len(k.Schema().Slots)
}

// SlotIndex returns the position of the named slot.
func (k Kind) SlotIndex(name string) (int, bool) {
	if !k.Valid() {
		return 0, false
	}
	i, ok := slotIndex[k][name]
	return i, ok
}

// IsMissing reports whether k is a recovery placeholder.
func (k Kind) IsMissing() bool {
	switch k {
	case MissingExpr, MissingStmt, MissingType, MissingBinding:
		return true
	}
	return false
}

// IsStmt reports whether k may appear in a statement list.
func (k Kind) IsStmt() bool {
	switch k.Category() {
	case CatStmt, CatDecl:
		return true
	}
	return false
}

func (k Kind) IsExpr() bool    { return k.Category() == CatExpr || k.Category() == CatJSX }
func (k Kind) IsPattern() bool { return k.Category() == CatPattern }
func (k Kind) IsType() bool    { return k.Category() == CatType }

// KindByName resolves a kind from its String form.
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return Invalid, false
}
