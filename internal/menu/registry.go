package menu

import (
	"sort"
	"strings"
)

// Node is one menu in the registry tree. IDs are colon-separated paths such
// as "user:status".
type Node struct {
	ID       string
	Menu     *Menu
	Children map[string]*Node
}

// Registry exposes lookup utilities for a tree of named menus.
type Registry struct {
	root  *Node
	nodes map[string]*Node
}

var keyCleaner = strings.NewReplacer(" ", "-", "_", "-", ".", "", ":", "-")

// Key turns a menu name into a path segment.
func Key(name string) string {
	return strings.Trim(keyCleaner.Replace(strings.ToLower(strings.TrimSpace(name))), "-")
}

// BuildRegistry indexes roots and every child menu reachable from them.
// Destroyed menus are skipped.
func BuildRegistry(roots map[string]*Menu) *Registry {
	root := &Node{ID: "root", Children: make(map[string]*Node)}
	r := &Registry{root: root, nodes: map[string]*Node{"root": root}}

	names := make([]string, 0, len(roots))
	for name := range roots {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.add(root, Key(name), roots[name])
	}
	return r
}

func (r *Registry) add(parent *Node, key string, m *Menu) {
	if m == nil || m.IsDestroyed() || key == "" {
		return
	}
	id := key
	if parent != r.root {
		id = parent.ID + ":" + key
	}
	if _, exists := r.nodes[id]; exists {
		return
	}
	node := &Node{ID: id, Menu: m, Children: make(map[string]*Node)}
	parent.Children[key] = node
	r.nodes[id] = node
	for _, child := range m.ChildMenus() {
		r.add(node, Key(child.Name()), child)
	}
}

// Root returns the registry root node.
func (r *Registry) Root() *Node {
	return r.root
}

// Find locates a node by ID.
func (r *Registry) Find(id string) (*Node, bool) {
	node, ok := r.nodes[id]
	return node, ok
}

// Child resolves a child node under the given parent for the provided key.
func (r *Registry) Child(parentID, key string) (*Node, bool) {
	parent, ok := r.nodes[parentID]
	if !ok {
		return nil, false
	}
	node, ok := parent.Children[key]
	return node, ok
}

// IDs lists every registered path in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.nodes))
	for id := range r.nodes {
		if id == "root" {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Path returns the menus from the top-level popup down to id, ready to be
// opened in order.
func (r *Registry) Path(id string) ([]*Menu, bool) {
	if _, ok := r.nodes[id]; !ok || id == "root" {
		return nil, false
	}
	var path []*Menu
	for cur := id; cur != "root"; {
		node := r.nodes[cur]
		path = append(path, node.Menu)
		cur, _ = parentKey(cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}

func parentKey(id string) (string, string) {
	if id == "" {
		return "root", ""
	}
	if !strings.Contains(id, ":") {
		return "root", id
	}
	idx := strings.LastIndex(id, ":")
	return id[:idx], id[idx+1:]
}
