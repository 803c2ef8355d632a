package ast

// NodeID is a 1-based index into a Tree's node arena.
// It is a non-owning reference: holding one never keeps a node alive.
type NodeID uint32

const (
	NoNodeID NodeID = 0
	// RootID is the synthetic document root present in every tree.
	RootID NodeID = 1
)

func (id NodeID) IsValid() bool { return id != NoNodeID }
