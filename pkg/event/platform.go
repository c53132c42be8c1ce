package event

// PropagationStopper is implemented by raw events that can stop native propagation.
type PropagationStopper interface {
	StopPropagation()
}

// CancelBubbler is the legacy propagation mechanism.
type CancelBubbler interface {
	SetCancelBubble(cancel bool)
}

// DefaultPreventer is implemented by raw events whose default action can be suppressed.
type DefaultPreventer interface {
	PreventDefault()
}

// ReturnValueSetter is the legacy default-action mechanism.
type ReturnValueSetter interface {
	SetReturnValue(v bool)
}

// KeyState is implemented by raw keyboard events.
type KeyState interface {
	KeyCode() int
	ShiftKey() bool
}

// Node is a target in a tree that carries sigils and metadata.
type Node interface {
	// Parent returns the enclosing node, or nil at the root.
	Parent() Node

	// Sigils returns the sigils attached to the node.
	Sigils() []string

	// Meta returns the metadata attached to the node, or nil.
	Meta() map[string]any
}
