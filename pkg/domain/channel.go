package domain

// Channel identifies one of the three notification channels of a request.
type Channel int

const (
	// ChannelDone fires on success with the payload (or the envelope in raw mode).
	ChannelDone Channel = iota
	// ChannelError fires on failure with an optional error value.
	ChannelError
	// ChannelFinally fires after either, without a value.
	ChannelFinally
)

func (c Channel) String() string {
	switch c {
	case ChannelDone:
		return "done"
	case ChannelError:
		return "error"
	case ChannelFinally:
		return "finally"
	default:
		return "unknown"
	}
}

// Notification is delivered to listeners. Only the field matching Channel is set:
// Payload for ChannelDone, Error for ChannelError, neither for ChannelFinally.
type Notification struct {
	Channel Channel
	Payload any
	Error   any
}
