// Package ast defines the expression AST that the constraint-based type
// checker core consumes. Lexing and parsing are out of scope for this
// module (spec.md §1) — a real front end builds these nodes; tests build
// them directly via struct literals, the same way a hand-rolled demo
// would.
package ast

import "fmt"

// Node is the base interface for all AST nodes.
type Node interface {
	String() string
	Position() Pos
}

// Pos represents a position in the source code.
type Pos struct {
	Line   int
	Column int
	File   string
	Offset int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span represents a range in source code.
type Span struct {
	Start Pos
	End   Pos
}

// NodeID uniquely identifies an expression within one constraint system.
// The generator assigns these; locators anchor on them.
type NodeID uint64

// Expr is the base interface for every expression kind in spec.md §4.5's
// table. Each concrete type also implements the specific accessors needed
// by the generator.
type Expr interface {
	Node
	ID() NodeID
	exprNode()
}

// base is embedded by every Expr implementation to carry identity and
// position without repeating boilerplate.
type base struct {
	NodeID NodeID
	Pos    Pos
}

func (b base) ID() NodeID      { return b.NodeID }
func (b base) Position() Pos   { return b.Pos }
func (b base) exprNode()       {}
