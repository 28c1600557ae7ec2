package menu

import (
	"github.com/atomicstack/shell-popup/internal/signal"
	"github.com/atomicstack/shell-popup/internal/stage"
)

// container is the ordered entry list shared by menus and sections.
type container struct {
	actor   *stage.Actor
	entries []Entry
	active  *Item
	// parent is the enclosing container of an attached section.
	parent *container
	// menu is set when the container belongs to a Menu rather than a Section.
	menu    *Menu
	section *Section

	childMenus  []*Menu
	childRegs   map[*Menu]*signal.Registration
	sectionRegs map[*Section]*signal.Registration

	OpenStateChanged signal.Signal[bool]
	Activate         signal.Signal[*Item]
	ActiveChanged    signal.Signal[*Item]
	ChildMenuAdded   signal.Signal[*Menu]
	ChildMenuRemoved signal.Signal[*Menu]
}

func newContainer(name string) container {
	actor := stage.NewActor(name)
	actor.SetReactive(true)
	return container{
		actor:       actor,
		childRegs:   make(map[*Menu]*signal.Registration),
		sectionRegs: make(map[*Section]*signal.Registration),
	}
}

// Actor returns the container's box actor.
func (c *container) Actor() *stage.Actor { return c.actor }

func (c *container) root() *container {
	cur := c
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// AddMenuItem appends e.
func (c *container) AddMenuItem(e Entry) {
	c.InsertMenuItem(e, -1)
}

// InsertMenuItem inserts e before the entry currently at position, or appends
// when position is negative or past the end. Sections cannot be nested and
// entries cannot belong to two containers; either mistake panics with a
// *ContractError.
func (c *container) InsertMenuItem(e Entry, position int) {
	switch v := e.(type) {
	case *Item:
		if v == nil {
			violate("InsertMenuItem", "nil item")
		}
		if v.destroyed {
			violate("InsertMenuItem", "item "+v.label+" is destroyed")
		}
		if v.owner != nil {
			violate("InsertMenuItem", "item "+v.label+" already belongs to a menu")
		}
	case *Section:
		if v == nil {
			violate("InsertMenuItem", "nil section")
		}
		if c.section != nil {
			violate("InsertMenuItem", "sections cannot be nested")
		}
		if v.destroyed {
			violate("InsertMenuItem", "section is destroyed")
		}
		if v.parent != nil {
			violate("InsertMenuItem", "section already belongs to a menu")
		}
	default:
		violate("InsertMenuItem", "unsupported entry")
	}

	if position < 0 || position > len(c.entries) {
		position = len(c.entries)
	}
	if position < len(c.entries) {
		c.actor.InsertChild(e.Actor(), c.actor.IndexOf(c.entries[position].Actor()))
	} else {
		c.actor.AddChild(e.Actor())
	}
	c.entries = append(c.entries, nil)
	copy(c.entries[position+1:], c.entries[position:])
	c.entries[position] = e

	switch v := e.(type) {
	case *Item:
		v.owner = c
		if v.submenu != nil {
			c.actor.AddChild(v.submenu.actor)
			c.AddChildMenu(v.submenu)
		}
	case *Section:
		c.adoptSection(v)
	}
	c.updateSeparatorVisibility()
}

func (c *container) adoptSection(s *Section) {
	s.parent = c
	reg := &signal.Registration{}
	signal.On(reg, &s.Activate, c.itemActivated)
	signal.On(reg, &s.ActiveChanged, func(item *Item) { c.sectionActiveChanged(s, item) })
	signal.On(reg, &s.ChildMenuAdded, c.AddChildMenu)
	signal.On(reg, &s.ChildMenuRemoved, c.RemoveChildMenu)
	signal.On(reg, &c.OpenStateChanged, func(open bool) {
		if open {
			s.Open()
		} else {
			s.Close()
		}
	})
	c.sectionRegs[s] = reg
	for _, child := range s.childMenus {
		c.AddChildMenu(child)
	}
	if s.active != nil {
		c.setActive(s.active)
	}
}

// AddAction appends a plain item whose activation runs fn.
func (c *container) AddAction(label string, fn func(stage.Event)) *Item {
	item := NewItem(label)
	if fn != nil {
		item.Activated.Connect(fn)
	}
	c.AddMenuItem(item)
	return item
}

// detach drops e from the entry list. Called by the entry while it is being
// destroyed.
func (c *container) detach(e Entry) {
	idx := -1
	for i, entry := range c.entries {
		if entry == e {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	c.entries = append(c.entries[:idx], c.entries[idx+1:]...)
	if st := e.Actor().Stage(); st != nil && e.Actor().Contains(st.KeyFocus()) {
		c.root().actor.GrabKeyFocus()
	}
	if s, ok := e.(*Section); ok {
		if reg := c.sectionRegs[s]; reg != nil {
			reg.Dispose()
			delete(c.sectionRegs, s)
		}
		if c.active != nil && c.active.owner == &s.container {
			c.setActive(nil)
		}
		for _, child := range s.childMenus {
			c.RemoveChildMenu(child)
		}
		s.parent = nil
	}
	if item, ok := e.(*Item); ok && c.active == item {
		c.setActive(nil)
	}
	c.updateSeparatorVisibility()
}

// RemoveAll destroys every entry.
func (c *container) RemoveAll() {
	entries := make([]Entry, len(c.entries))
	copy(entries, c.entries)
	for _, e := range entries {
		e.Destroy()
	}
}

// Entries returns the direct children.
func (c *container) Entries() []Entry {
	dup := make([]Entry, len(c.entries))
	copy(dup, c.entries)
	return dup
}

// FirstMenuItem returns the first direct entry, if any.
func (c *container) FirstMenuItem() Entry {
	if len(c.entries) == 0 {
		return nil
	}
	return c.entries[0]
}

// NumMenuItems counts direct entries.
func (c *container) NumMenuItems() int {
	return len(c.entries)
}

// Items returns every item in display order with sections inlined.
func (c *container) Items() []*Item {
	var items []*Item
	for _, e := range c.entries {
		switch v := e.(type) {
		case *Item:
			items = append(items, v)
		case *Section:
			items = append(items, v.Items()...)
		}
	}
	return items
}

// Length counts items with sections inlined.
func (c *container) Length() int {
	return len(c.Items())
}

// IsEmpty reports whether nothing but separators would be shown.
func (c *container) IsEmpty() bool {
	for _, e := range c.entries {
		switch v := e.(type) {
		case *Item:
			if v.kind != KindSeparator && v.actor.Visible() {
				return false
			}
		case *Section:
			if v.actor.Visible() && !v.IsEmpty() {
				return false
			}
		}
	}
	return true
}

// ActiveItem returns the highlighted item, if any.
func (c *container) ActiveItem() *Item {
	return c.active
}

// IsChildMenu reports whether child was registered with AddChildMenu.
func (c *container) IsChildMenu(child *Menu) bool {
	_, ok := c.childRegs[child]
	return ok
}

// ChildMenus returns the registered child menus in registration order.
func (c *container) ChildMenus() []*Menu {
	dup := make([]*Menu, len(c.childMenus))
	copy(dup, c.childMenus)
	return dup
}

// AddChildMenu registers child as a descendant: it closes whenever this
// container closes, and the menu manager learns about it through
// ChildMenuAdded.
func (c *container) AddChildMenu(child *Menu) {
	if child == nil || c.IsChildMenu(child) {
		return
	}
	reg := &signal.Registration{}
	signal.On(reg, &c.OpenStateChanged, func(open bool) {
		if !open {
			child.Close(AnimationFade)
		}
	})
	c.childMenus = append(c.childMenus, child)
	c.childRegs[child] = reg
	c.ChildMenuAdded.Emit(child)
}

// RemoveChildMenu undoes AddChildMenu.
func (c *container) RemoveChildMenu(child *Menu) {
	reg, ok := c.childRegs[child]
	if !ok {
		return
	}
	reg.Dispose()
	delete(c.childRegs, child)
	for i, m := range c.childMenus {
		if m == child {
			c.childMenus = append(c.childMenus[:i], c.childMenus[i+1:]...)
			break
		}
	}
	c.ChildMenuRemoved.Emit(child)
}

func (c *container) willActivate(item *Item) {
	if c.parent != nil {
		c.parent.willActivate(item)
	}
	if c.active != nil && c.active != item {
		c.active.SetActive(false)
	}
}

func (c *container) setActive(item *Item) {
	if c.active == item {
		return
	}
	c.active = item
	c.ActiveChanged.Emit(item)
}

func (c *container) itemActiveChanged(item *Item, active bool) {
	if active {
		c.setActive(item)
		return
	}
	if c.active == item {
		c.setActive(nil)
	}
}

func (c *container) sectionActiveChanged(s *Section, item *Item) {
	if item != nil {
		c.setActive(item)
		return
	}
	if c.active != nil && c.active.owner == &s.container {
		c.setActive(nil)
	}
}

func (c *container) itemSensitiveChanged(item *Item, sensitive bool) {
	root := c.root()
	if !sensitive {
		if !item.active {
			return
		}
		next := root.nextFocusable(item, 1)
		item.SetActive(false)
		if next != nil {
			next.SetActive(true)
		} else {
			root.actor.GrabKeyFocus()
		}
		return
	}
	if root.active == nil && root.actor.HasKeyFocus() {
		item.SetActive(true)
	}
}

func (c *container) itemActivated(item *Item) {
	c.Activate.Emit(item)
	if c.menu != nil {
		c.menu.itemActivated(item)
	}
}

// focusable lists items keyboard navigation can land on.
func (c *container) focusable() []*Item {
	var out []*Item
	for _, item := range c.Items() {
		if item.CanFocus() {
			out = append(out, item)
		}
	}
	return out
}

// nextFocusable returns the focusable item following from in direction dir,
// wrapping around and never returning from itself.
func (c *container) nextFocusable(from *Item, dir int) *Item {
	items := c.Items()
	start := -1
	for i, item := range items {
		if item == from {
			start = i
			break
		}
	}
	n := len(items)
	for step := 1; step <= n; step++ {
		idx := ((start+dir*step)%n + n) % n
		if start < 0 && dir < 0 {
			idx = n - step
		} else if start < 0 {
			idx = step - 1
		}
		candidate := items[idx]
		if candidate != from && candidate.CanFocus() {
			return candidate
		}
	}
	return nil
}

// MoveFocus highlights the next (dir > 0) or previous (dir < 0) focusable
// item, wrapping around.
func (c *container) MoveFocus(dir int) {
	if next := c.nextFocusable(c.active, dir); next != nil {
		next.SetActive(true)
	}
}

// FocusFirst highlights the first focusable item.
func (c *container) FocusFirst() {
	if items := c.focusable(); len(items) > 0 {
		items[0].SetActive(true)
	}
}

// FocusLast highlights the last focusable item.
func (c *container) FocusLast() {
	if items := c.focusable(); len(items) > 0 {
		items[len(items)-1].SetActive(true)
	}
}

// updateSeparatorVisibility hides separators that would lead, trail, or
// follow another separator among the visible entries.
func (c *container) updateSeparatorVisibility() {
	var pending *Item
	afterSeparator := true
	for _, e := range c.entries {
		if item, ok := e.(*Item); ok && item.kind == KindSeparator {
			if afterSeparator {
				item.actor.Hide()
				continue
			}
			item.actor.Show()
			pending = item
			afterSeparator = true
			continue
		}
		if !entryVisible(e) {
			continue
		}
		afterSeparator = false
		pending = nil
	}
	if pending != nil {
		pending.actor.Hide()
	}
}

func entryVisible(e Entry) bool {
	switch v := e.(type) {
	case *Item:
		return v.actor.Visible()
	case *Section:
		return v.actor.Visible() && !v.IsEmpty()
	}
	return false
}
