/*
Package event provides the normalized event object passed to listeners.

An Event represents one occurrence, either bridged from a native platform
event or synthesized by application code. Listeners stop propagation and
prevent default actions through it; when a raw platform event is attached the
request is forwarded to whatever mechanism that event exposes.

Platform capabilities are discovered through small optional interfaces
(PropagationStopper, DefaultPreventer, KeyState and their legacy
counterparts), so any value can serve as a raw event.
*/
package event
