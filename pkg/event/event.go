package event

import "github.com/aretw0/javelin/pkg/keys"

// Event is one occurrence delivered to listeners.
// It is not safe for concurrent use; it lives for a single dispatch pass.
type Event struct {
	typ    string
	raw    any
	target any

	data  map[string]any
	path  []string
	nodes map[string]any

	stopped   bool
	prevented bool
}

// Option configures an Event at construction.
type Option func(*Event)

// WithRawEvent attaches the native platform event.
func WithRawEvent(raw any) Option {
	return func(e *Event) {
		e.raw = raw
	}
}

// WithTarget sets the target the event occurred on.
func WithTarget(target any) Option {
	return func(e *Event) {
		e.target = target
	}
}

// WithData sets the metadata bag.
func WithData(data map[string]any) Option {
	return func(e *Event) {
		e.data = data
	}
}

// WithPath sets the sigil path.
func WithPath(path []string) Option {
	return func(e *Event) {
		e.path = path
	}
}

// WithNodes sets the sigil-to-node mapping.
func WithNodes(nodes map[string]any) Option {
	return func(e *Event) {
		e.nodes = nodes
	}
}

// WithAncestry walks from target to the root and fills the target, path,
// metadata bag and node mapping. The innermost node wins when a sigil appears
// more than once; the path is ordered outermost first.
func WithAncestry(target Node) Option {
	return func(e *Event) {
		e.target = target

		var reversed []string
		data := make(map[string]any)
		nodes := make(map[string]any)
		for cursor := target; cursor != nil; cursor = cursor.Parent() {
			sigils := cursor.Sigils()
			meta := cursor.Meta()
			for i := len(sigils) - 1; i >= 0; i-- {
				sigil := sigils[i]
				reversed = append(reversed, sigil)
				if _, seen := nodes[sigil]; seen {
					continue
				}
				nodes[sigil] = cursor
				if meta != nil {
					data[sigil] = meta
				}
			}
		}

		path := make([]string, len(reversed))
		for i, s := range reversed {
			path[len(reversed)-1-i] = s
		}
		e.path = path
		e.data = data
		e.nodes = nodes
	}
}

// New creates an event of the given type.
func New(typ string, opts ...Option) *Event {
	e := &Event{typ: typ}
	for _, opt := range opts {
		opt(e)
	}
	if e.data == nil {
		e.data = make(map[string]any)
	}
	if e.nodes == nil {
		e.nodes = make(map[string]any)
	}
	return e
}

// Type returns the event type tag.
func (e *Event) Type() string { return e.typ }

// RawEvent returns the attached platform event, or nil for synthetic events.
func (e *Event) RawEvent() any { return e.raw }

// Target returns the node the event occurred on, or nil.
func (e *Event) Target() any { return e.target }

// Data returns the metadata bag.
func (e *Event) Data() map[string]any { return e.data }

// Path returns the sigil path, outermost first.
func (e *Event) Path() []string { return e.path }

// Node returns the closest node carrying sigil.
func (e *Event) Node(sigil string) (any, bool) {
	n, ok := e.nodes[sigil]
	return n, ok
}

// Stopped reports whether Stop has been called.
func (e *Event) Stopped() bool { return e.stopped }

// Prevented reports whether Prevent has been called.
func (e *Event) Prevented() bool { return e.prevented }

// Stop halts propagation. The native event, if any, is asked to stop as well
// when it exposes a way to do so.
func (e *Event) Stop() *Event {
	e.stopped = true
	if e.raw == nil {
		return e
	}
	if s, ok := e.raw.(PropagationStopper); ok {
		s.StopPropagation()
	}
	if c, ok := e.raw.(CancelBubbler); ok {
		c.SetCancelBubble(true)
	}
	return e
}

// Prevent suppresses the default action, forwarding to the native event when possible.
func (e *Event) Prevent() *Event {
	e.prevented = true
	if e.raw == nil {
		return e
	}
	if p, ok := e.raw.(DefaultPreventer); ok {
		p.PreventDefault()
	}
	if r, ok := e.raw.(ReturnValueSetter); ok {
		r.SetReturnValue(false)
	}
	return e
}

// Kill prevents the default action and stops propagation.
func (e *Event) Kill() *Event {
	return e.Prevent().Stop()
}

// SpecialKey returns the normalized name of the key that produced the event.
// It reports false for synthetic events, non-keyboard events, shifted keys
// and codes outside the table.
func (e *Event) SpecialKey() (keys.Special, bool) {
	ks, ok := e.raw.(KeyState)
	if !ok || ks.ShiftKey() {
		return "", false
	}
	return keys.Normalize(ks.KeyCode())
}
