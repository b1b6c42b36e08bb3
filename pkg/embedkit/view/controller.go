package view

// LifecycleEvent identifies a containment notification.
type LifecycleEvent int

const (
	WillMove LifecycleEvent = iota // Sent before the controller changes parent
	DidMove                        // Sent after the controller changed parent
)

func (e LifecycleEvent) String() string {
	switch e {
	case WillMove:
		return "will_move"
	case DidMove:
		return "did_move"
	default:
		return "unknown"
	}
}

// LifecycleFunc observes containment notifications. A nil parent means the
// controller is leaving its current parent.
type LifecycleFunc func(event LifecycleEvent, parent *Controller)

// Controller manages one root view and may contain child controllers.
type Controller struct {
	id        ID
	name      string
	view      *View
	parent    *Controller
	children  []*Controller
	observers []LifecycleFunc
}

// NewController creates a detached controller. If v is nil a view with the
// controller's name is created.
func NewController(name string, v *View) *Controller {
	if v == nil {
		v = New(name)
	}
	return &Controller{
		id:   nextID(),
		name: name,
		view: v,
	}
}

func (c *Controller) ID() ID {
	return c.id
}

func (c *Controller) Name() string {
	return c.name
}

// View returns the controller's root view.
func (c *Controller) View() *View {
	return c.view
}

// Parent returns the containing controller, or nil.
func (c *Controller) Parent() *Controller {
	return c.parent
}

// Children returns a copy of the child controllers in adoption order.
func (c *Controller) Children() []*Controller {
	out := make([]*Controller, len(c.children))
	copy(out, c.children)
	return out
}

// HasChild reports whether child is directly contained by c.
func (c *Controller) HasChild(child *Controller) bool {
	return child != nil && child.parent == c
}

// AddChild adopts child, removing it from any previous parent first.
// No lifecycle notifications are sent; callers send WillMove/DidMove
// around the phases they need.
func (c *Controller) AddChild(child *Controller) {
	if child == nil || child == c || child.parent == c {
		return
	}
	if child.parent != nil {
		child.RemoveFromParent()
	}
	child.parent = c
	c.children = append(c.children, child)
}

// RemoveFromParent drops the containment relationship with the parent.
func (c *Controller) RemoveFromParent() {
	p := c.parent
	if p == nil {
		return
	}
	for i, ch := range p.children {
		if ch == c {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	c.parent = nil
}

// Observe registers fn for lifecycle notifications.
func (c *Controller) Observe(fn LifecycleFunc) {
	if fn != nil {
		c.observers = append(c.observers, fn)
	}
}

// WillMove notifies observers that the controller is about to move to parent.
func (c *Controller) WillMove(parent *Controller) {
	c.notify(WillMove, parent)
}

// DidMove notifies observers that the controller has moved to parent.
func (c *Controller) DidMove(parent *Controller) {
	c.notify(DidMove, parent)
}

func (c *Controller) notify(event LifecycleEvent, parent *Controller) {
	for _, fn := range c.observers {
		fn(event, parent)
	}
}

// Walk calls fn for c and then each ancestor, nearest first, until fn
// returns false.
func (c *Controller) Walk(fn func(*Controller) bool) {
	for n := c; n != nil; n = n.parent {
		if !fn(n) {
			return
		}
	}
}
