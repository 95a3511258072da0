package Trees

import "fmt"

type EventKind uint8

const (
	EventRotateLeft EventKind = iota
	EventRotateRight
	EventRotateLR
	EventRotateRL
	EventRecolour
	EventRootRecolour
)

var eventNames = [...]string{"rotate_left", "rotate_right", "rotate_lr", "rotate_rl", "recolour", "root_recolour"}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is one rebalancing step of a traced operation. The concrete types are RotateLeft, RotateRight, RotateLR,
// RotateRL, Recolour and RootRecolour.
type Event interface {
	Kind() EventKind
	//Nodes referenced by the event. Each of them exists in the snapshot taken before the event.
	Nodes() []NodeID
	String() string
	event()
}

// RotateLeft at Pivot; Subroot is the node that took Pivot's place.
type RotateLeft struct {
	Pivot, Subroot NodeID
}

// RotateRight at Pivot; Subroot is the node that took Pivot's place.
type RotateRight struct {
	Pivot, Subroot NodeID
}

// RotateLR is the left-right schema: Child is the right child of Parent, which is the left child of Grandparent.
// AVL emits it for the full double rotation, the red-black tree for its first half step, the left rotation at Parent.
type RotateLR struct {
	Grandparent, Parent, Child NodeID
}

// RotateRL mirrors RotateLR.
type RotateRL struct {
	Grandparent, Parent, Child NodeID
}

// Recolour of Node from Old to New.
type Recolour struct {
	Node     NodeID
	Old, New Colour
}

// RootRecolour paints the root New.
type RootRecolour struct {
	Node NodeID
	New  Colour
}

func (RotateLeft) Kind() EventKind   { return EventRotateLeft }
func (RotateRight) Kind() EventKind  { return EventRotateRight }
func (RotateLR) Kind() EventKind     { return EventRotateLR }
func (RotateRL) Kind() EventKind     { return EventRotateRL }
func (Recolour) Kind() EventKind     { return EventRecolour }
func (RootRecolour) Kind() EventKind { return EventRootRecolour }

func (e RotateLeft) Nodes() []NodeID   { return []NodeID{e.Pivot, e.Subroot} }
func (e RotateRight) Nodes() []NodeID  { return []NodeID{e.Pivot, e.Subroot} }
func (e RotateLR) Nodes() []NodeID     { return []NodeID{e.Grandparent, e.Parent, e.Child} }
func (e RotateRL) Nodes() []NodeID     { return []NodeID{e.Grandparent, e.Parent, e.Child} }
func (e Recolour) Nodes() []NodeID     { return []NodeID{e.Node} }
func (e RootRecolour) Nodes() []NodeID { return []NodeID{e.Node} }

func (e RotateLeft) String() string {
	return fmt.Sprintf("rotate_left pivot=%d subroot=%d", e.Pivot, e.Subroot)
}
func (e RotateRight) String() string {
	return fmt.Sprintf("rotate_right pivot=%d subroot=%d", e.Pivot, e.Subroot)
}
func (e RotateLR) String() string {
	return fmt.Sprintf("rotate_lr grandparent=%d parent=%d child=%d", e.Grandparent, e.Parent, e.Child)
}
func (e RotateRL) String() string {
	return fmt.Sprintf("rotate_rl grandparent=%d parent=%d child=%d", e.Grandparent, e.Parent, e.Child)
}
func (e Recolour) String() string {
	return fmt.Sprintf("recolour node=%d %v->%v", e.Node, e.Old, e.New)
}
func (e RootRecolour) String() string {
	return fmt.Sprintf("root_recolour node=%d %v", e.Node, e.New)
}

func (RotateLeft) event()   {}
func (RotateRight) event()  {}
func (RotateLR) event()     {}
func (RotateRL) event()     {}
func (Recolour) event()     {}
func (RootRecolour) event() {}
