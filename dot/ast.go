package dot

// Attr is a key="value" pair from an attribute block.
type Attr struct {
	Key   string
	Value string
}

// Node is an explicit node declaration.
type Node struct {
	ID    string
	Attrs []Attr
}

// Attr looks up a node attribute by key. Returns the value and true if found.
func (n *Node) Attr(key string) (string, bool) {
	return lookup(n.Attrs, key)
}

// Edge is a single directed edge.
type Edge struct {
	From  string
	To    string
	Attrs []Attr
}

// Attr looks up an edge attribute by key. Returns the value and true if found.
func (e *Edge) Attr(key string) (string, bool) {
	return lookup(e.Attrs, key)
}

// Label returns the edge label, or "" for an epsilon edge.
func (e *Edge) Label() string {
	label, _ := e.Attr("label")
	return label
}

// Graph is a DOT digraph. Nodes are written before edges.
type Graph struct {
	Name  string
	Nodes []*Node // explicit declarations, in order
	Edges []*Edge // in order
}

// NodeByID returns the declared node with the given ID, or nil if not found.
func (g *Graph) NodeByID(id string) *Node {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// EdgesFrom returns all edges originating from the given node ID.
func (g *Graph) EdgesFrom(id string) []*Edge {
	var result []*Edge
	for _, e := range g.Edges {
		if e.From == id {
			result = append(result, e)
		}
	}
	return result
}

// EdgesTo returns all edges targeting the given node ID.
func (g *Graph) EdgesTo(id string) []*Edge {
	var result []*Edge
	for _, e := range g.Edges {
		if e.To == id {
			result = append(result, e)
		}
	}
	return result
}

func lookup(attrs []Attr, key string) (string, bool) {
	for i := len(attrs) - 1; i >= 0; i-- {
		if attrs[i].Key == key {
			return attrs[i].Value, true
		}
	}
	return "", false
}
