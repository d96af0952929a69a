package ast

// NodeID - 1-based индекс узла в арене дерева.
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }
