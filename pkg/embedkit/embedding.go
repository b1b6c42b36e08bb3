package embedkit

import (
	"log/slog"
	"runtime"
	"sync"
	"weak"

	"github.com/BrandonKowalski/embedkit/pkg/embedkit/internal"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/scene"
	"github.com/BrandonKowalski/embedkit/pkg/embedkit/view"
	"github.com/veandco/go-sdl2/sdl"
)

// EmbeddingState is the settlement state of an EmbeddingController.
type EmbeddingState int

const (
	StateEmpty         EmbeddingState = iota // No child is displayed
	StateTransitioning                       // A switch is waiting for its transition
	StateSettled                             // Exactly one child is displayed
)

func (s EmbeddingState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateTransitioning:
		return "transitioning"
	case StateSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// hosts maps a host controller to the EmbeddingController managing it, so a
// child can find its host by walking its parent chain. Entries are weak and
// are dropped once their controller is collected.
var hosts = struct {
	sync.RWMutex
	m map[view.ID]weak.Pointer[EmbeddingController]
}{m: make(map[view.ID]weak.Pointer[EmbeddingController])}

func registerHost(id view.ID, e *EmbeddingController) {
	hosts.Lock()
	hosts.m[id] = weak.Make(e)
	hosts.Unlock()
	runtime.AddCleanup(e, dropCollectedHost, id)
}

func dropCollectedHost(id view.ID) {
	hosts.Lock()
	defer hosts.Unlock()
	if wp, ok := hosts.m[id]; ok && wp.Value() == nil {
		delete(hosts.m, id)
	}
}

func unregisterHost(id view.ID, e *EmbeddingController) {
	hosts.Lock()
	defer hosts.Unlock()
	if hosts.m[id].Value() == e {
		delete(hosts.m, id)
	}
}

func lookupHost(id view.ID) *EmbeddingController {
	hosts.RLock()
	defer hosts.RUnlock()
	return hosts.m[id].Value()
}

// HostOf returns the EmbeddingController managing c or its nearest ancestor,
// or nil if there is none.
func HostOf(c *view.Controller) *EmbeddingController {
	if c == nil {
		return nil
	}
	var found *EmbeddingController
	c.Walk(func(n *view.Controller) bool {
		found = lookupHost(n.ID())
		return found == nil
	})
	return found
}

// switchRequest is one embed or remove request and the transition serving it.
type switchRequest struct {
	transition Transition
	current    *view.Controller
	next       *view.Controller
	onDone     func(completed bool)
	settled    bool
}

// EmbeddingController hosts at most one child controller inside an embedding
// region and mediates transitions between successive children.
//
// Requests are served in submission order: a new request cancels the pending
// transition and replaces it. Only the latest request may change the current
// child; a superseded request only cleans up its own incoming child.
// Neither the host nor its children keep the controller alive: HostOf stops
// finding it once the owner drops its last reference.
// All methods must be called on the UI loop.
type EmbeddingController struct {
	host     *view.Controller
	region   *view.View
	current  *view.Controller
	pending  *switchRequest
	attached []*view.Controller
	leaving  *view.Controller
	closed   bool
	logger   *slog.Logger

	initialCatalog *scene.Catalog
	initialScene   scene.Identifier
}

// EmbeddingOption configures an EmbeddingController.
type EmbeddingOption func(*EmbeddingController)

// WithRegion embeds children into v instead of the host's root view.
func WithRegion(v *view.View) EmbeddingOption {
	return func(e *EmbeddingController) {
		e.region = v
	}
}

// WithInitialScene instantiates id from catalog and embeds it on Load.
func WithInitialScene(catalog *scene.Catalog, id scene.Identifier) EmbeddingOption {
	return func(e *EmbeddingController) {
		e.initialCatalog = catalog
		e.initialScene = id
	}
}

// NewEmbeddingController makes host an embedding host. Children are embedded
// into the host's root view unless WithRegion is given.
func NewEmbeddingController(host *view.Controller, opts ...EmbeddingOption) *EmbeddingController {
	e := &EmbeddingController{host: host}
	for _, opt := range opts {
		opt(e)
	}

	name := ""
	if host != nil {
		name = host.Name()
		if e.region == nil {
			e.region = host.View()
		}
		registerHost(host.ID(), e)
	}
	e.logger = internal.GetInternalLogger().With("host", name)
	return e
}

// Host returns the controller children are contained by.
func (e *EmbeddingController) Host() *view.Controller {
	return e.host
}

// Region returns the view children are attached to.
func (e *EmbeddingController) Region() *view.View {
	return e.region
}

// Current returns the settled child, or nil.
func (e *EmbeddingController) Current() *view.Controller {
	return e.current
}

// State returns the controller's settlement state.
func (e *EmbeddingController) State() EmbeddingState {
	switch {
	case e.pending != nil:
		return StateTransitioning
	case e.current != nil:
		return StateSettled
	default:
		return StateEmpty
	}
}

// Load embeds the initial scene, if one was configured. The initial scene
// is consumed by the first call.
func (e *EmbeddingController) Load() error {
	if e.initialCatalog == nil || e.initialScene == "" {
		return nil
	}
	id := e.initialScene
	e.initialScene = ""

	child, err := e.initialCatalog.Instantiate(id)
	if err != nil {
		e.logger.Error("Failed to instantiate initial scene", "scene", id, "error", err)
		return NewConfigurationError("load_initial_scene", err)
	}
	return e.Embed(child, nil, nil)
}

// Embed requests that child become the current child. A nil transition
// switches instantly. onDone, if set, is called once the request settles,
// with completed reporting whether child was adopted.
func (e *EmbeddingController) Embed(child *view.Controller, transition Transition, onDone func(completed bool)) error {
	if child == nil {
		return e.RemoveEmbedded(transition, onDone)
	}
	return e.doSwitch("embed", child, transition, onDone)
}

// RemoveEmbedded requests that the current child be removed with nothing
// replacing it. A nil transition switches instantly.
func (e *EmbeddingController) RemoveEmbedded(transition Transition, onDone func(completed bool)) error {
	return e.doSwitch("remove_embedded", nil, transition, onDone)
}

func (e *EmbeddingController) doSwitch(op string, next *view.Controller, transition Transition, onDone func(bool)) error {
	if err := e.validate(next); err != nil {
		cfgErr := NewConfigurationError(op, err)
		e.logger.Error("Cannot switch embedded controller", "op", op, "error", err)
		return cfgErr
	}
	if transition == nil {
		transition = NewInstantTransition()
	}

	if e.pending != nil {
		e.logger.Debug("Superseding pending transition", "op", op)
		e.pending.transition.Cancel()
	}

	req := &switchRequest{
		transition: transition,
		current:    e.current,
		next:       next,
		onDone:     onDone,
	}
	if req.current == next {
		// re-embedding the current child keeps it attached
		req.current = nil
	}
	e.pending = req

	e.insert(req)
	transition.Prepare(viewOf(req.current), viewOf(next))
	transition.Execute(func(completed bool) {
		e.commit(req, completed)
	})
	return nil
}

func (e *EmbeddingController) validate(next *view.Controller) error {
	if e.closed {
		return ErrClosed
	}
	if e.host == nil || e.region == nil {
		return ErrNoEmbeddingRegion
	}
	if next == nil {
		return nil
	}
	invalid := false
	e.host.Walk(func(n *view.Controller) bool {
		invalid = n == next
		return !invalid
	})
	if invalid || e.region.IsDescendant(next.View()) {
		return ErrInvalidChild
	}
	return nil
}

// insert attaches the incoming child without making it current and warns
// the outgoing child that it is about to leave.
func (e *EmbeddingController) insert(req *switchRequest) {
	if next := req.next; next != nil {
		if e.isAttached(next) {
			e.region.BringSubviewToFront(next.View())
		} else {
			next.WillMove(e.host)
			e.host.AddChild(next)
			e.region.AddSubview(next.View())
			next.View().Pin(view.FullBleed)
			e.attached = append(e.attached, next)
		}
	}
	if req.current != nil && e.leaving != req.current {
		req.current.WillMove(nil)
		e.leaving = req.current
	}
}

// commit settles req once its transition reports.
func (e *EmbeddingController) commit(req *switchRequest, completed bool) {
	if req.settled {
		e.logger.Warn("Transition reported completion more than once")
		return
	}
	req.settled = true

	latest := e.pending == req
	if latest {
		e.pending = nil
	}

	adopted := false
	switch {
	case e.closed:
		// Close already detached everything
	case latest && completed:
		for _, c := range e.attachedSnapshot() {
			if c != req.next {
				e.detach(c)
			}
		}
		e.current = req.next
		if req.next != nil {
			req.next.View().SetOffset(sdl.Point{})
			if e.leaving == req.next {
				e.leaving = nil
			}
			req.next.DidMove(e.host)
			adopted = true
		}
	case latest:
		e.rollback(req)
	default:
		if n := req.next; n != nil && n != e.current && !e.inFlight(n) {
			e.detach(n)
		}
		e.logger.Debug("Superseded transition settled", "completed", completed)
	}

	if req.onDone != nil {
		req.onDone(adopted)
	}
}

// rollback undoes the insert phase of a request that was not superseded but
// did not complete, and keeps the previous child current.
func (e *EmbeddingController) rollback(req *switchRequest) {
	if n := req.next; n != nil && n != e.current {
		e.detach(n)
	}
	if prev := req.current; prev != nil && prev == e.current {
		prev.View().SetAlpha(1)
		prev.View().SetOffset(sdl.Point{})
		e.leaving = nil
		prev.DidMove(e.host)
	}
	e.logger.Debug("Transition did not complete, previous child kept")
}

func (e *EmbeddingController) inFlight(c *view.Controller) bool {
	return e.pending != nil && e.pending.next == c
}

func (e *EmbeddingController) isAttached(c *view.Controller) bool {
	for _, a := range e.attached {
		if a == c {
			return true
		}
	}
	return false
}

func (e *EmbeddingController) attachedSnapshot() []*view.Controller {
	out := make([]*view.Controller, len(e.attached))
	copy(out, e.attached)
	return out
}

// detach removes c from both hierarchies, sending WillMove(nil) first unless
// c was already warned during insert.
func (e *EmbeddingController) detach(c *view.Controller) {
	if !e.isAttached(c) {
		return
	}
	for i, a := range e.attached {
		if a == c {
			e.attached = append(e.attached[:i], e.attached[i+1:]...)
			break
		}
	}
	if e.leaving == c {
		e.leaving = nil
	} else {
		c.WillMove(nil)
	}
	c.View().RemoveFromSuperview()
	c.View().SetOffset(sdl.Point{})
	c.RemoveFromParent()
	c.DidMove(nil)
	if e.current == c {
		e.current = nil
	}
}

// Close cancels any pending transition, detaches every child and releases
// the host. Later requests fail with ErrClosed.
func (e *EmbeddingController) Close() {
	if e.closed {
		return
	}
	if e.pending != nil {
		e.pending.transition.Cancel()
		e.pending = nil
	}
	for _, c := range e.attachedSnapshot() {
		e.detach(c)
	}
	e.current = nil
	e.closed = true

	if e.host != nil {
		unregisterHost(e.host.ID(), e)
	}
}

func viewOf(c *view.Controller) *view.View {
	if c == nil {
		return nil
	}
	return c.View()
}
