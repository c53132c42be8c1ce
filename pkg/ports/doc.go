/*
Package ports defines the driven ports (interfaces) consumed by javelin.

These interfaces decouple requests and events from the collaborators that
surround them in a host application, so each can be swapped for a real
implementation or a deterministic fake.

# Key Interfaces

  - Timer: schedules one-shot callbacks (request timeouts, deferred panics).
  - Dispatcher: merges server-pushed metadata and initializes behaviors.
  - OnloadRunner: executes the onload instructions of a successful envelope.
  - TeardownSource: signals that the host is shutting down.
  - HTTPDoer: the platform HTTP client that performs the exchange.
  - MetadataStore: persistence behind the Dispatcher's metadata.
*/
package ports
