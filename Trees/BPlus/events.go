package BPlus

import "fmt"

type EventKind uint8

const (
	EventVisit EventKind = iota
	EventInsert
	EventSplit
	EventRemove
	EventBorrow
	EventMerge
	EventCollapse
)

var eventNames = [...]string{"visit", "insert", "split", "remove", "borrow", "merge", "collapse"}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is one step of a traced B+ tree operation: Visit, Insert, Split[T], Remove, Borrow[T], Merge or Collapse.
type Event interface {
	Kind() EventKind
	//Nodes referenced by the event. Each of them is live in the snapshot before or after the event: a Split creates its
	//NewNode, a Merge or Collapse frees one.
	Nodes() []NodeID
	String() string
	event()
}

// Visit of Node on the way from the root to a leaf.
type Visit struct {
	Node NodeID
}

// Insert of the key into leaf Node, in sorted position.
type Insert struct {
	Node NodeID
}

// Split of the overflowing Node. NewNode is the right half and Promoted the key handed to the parent. For a leaf,
// Promoted is also the first key of NewNode. A split of the root is followed by a second Split whose Node is the fresh
// root, whose NewNode is Nil and whose Promoted is the only key of the fresh root.
type Split[T any] struct {
	Node, NewNode NodeID
	Promoted      T
	Leaf          bool
}

// Remove of the key from leaf Node.
type Remove struct {
	Node NodeID
}

// Borrow moves a key from the sibling From to the underflowing To through their parent. Key is the key that entered
// To.
type Borrow[T any] struct {
	From, To NodeID
	Key      T
}

// Merge of Right into its left sibling Left. Right is gone afterwards.
type Merge struct {
	Left, Right NodeID
}

// Collapse of the empty root Old; its only child New is the root now.
type Collapse struct {
	Old, New NodeID
}

func (Visit) Kind() EventKind    { return EventVisit }
func (Insert) Kind() EventKind   { return EventInsert }
func (Split[T]) Kind() EventKind { return EventSplit }
func (Remove) Kind() EventKind   { return EventRemove }
func (Borrow[T]) Kind() EventKind {
	return EventBorrow
}
func (Merge) Kind() EventKind    { return EventMerge }
func (Collapse) Kind() EventKind { return EventCollapse }

func (e Visit) Nodes() []NodeID  { return []NodeID{e.Node} }
func (e Insert) Nodes() []NodeID { return []NodeID{e.Node} }
func (e Split[T]) Nodes() []NodeID {
	if e.NewNode == Nil {
		return []NodeID{e.Node}
	}
	return []NodeID{e.Node, e.NewNode}
}
func (e Remove) Nodes() []NodeID    { return []NodeID{e.Node} }
func (e Borrow[T]) Nodes() []NodeID { return []NodeID{e.From, e.To} }
func (e Merge) Nodes() []NodeID     { return []NodeID{e.Left, e.Right} }
func (e Collapse) Nodes() []NodeID  { return []NodeID{e.Old, e.New} }

func (e Visit) String() string  { return fmt.Sprintf("visit node=%d", e.Node) }
func (e Insert) String() string { return fmt.Sprintf("insert node=%d", e.Node) }
func (e Split[T]) String() string {
	if e.NewNode == Nil {
		return fmt.Sprintf("split root=%d promoted=%v", e.Node, e.Promoted)
	}
	return fmt.Sprintf("split node=%d new=%d promoted=%v leaf=%t", e.Node, e.NewNode, e.Promoted, e.Leaf)
}
func (e Remove) String() string { return fmt.Sprintf("remove node=%d", e.Node) }
func (e Borrow[T]) String() string {
	return fmt.Sprintf("borrow from=%d to=%d key=%v", e.From, e.To, e.Key)
}
func (e Merge) String() string    { return fmt.Sprintf("merge left=%d right=%d", e.Left, e.Right) }
func (e Collapse) String() string { return fmt.Sprintf("collapse old=%d new=%d", e.Old, e.New) }

func (Visit) event()     {}
func (Insert) event()    {}
func (Split[T]) event()  {}
func (Remove) event()    {}
func (Borrow[T]) event() {}
func (Merge) event()     {}
func (Collapse) event()  {}
