/*
Package domain holds the wire types and shared vocabulary of javelin.

It defines the response envelope exchanged with the server, the notification
channels a request publishes on, the reserved timeout value, lifecycle hooks
for observability and the sentinel errors returned by the other packages.
It has no dependencies on adapters or transports.
*/
package domain
