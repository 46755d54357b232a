// Package ast defines the syntax tree shared by the parser and every
// consumer.
//
// Nodes live in a per-parse arena and are addressed by NodeID. Each Kind
// declares its child slots once in a schema table; a slot is either a
// Binding slot (it introduces a name) or a Visitor slot (plain structure),
// and list slots hold a List node. Trees are immutable once built. An
// Editor derives new trees by layering new nodes over a shared base.
package ast
