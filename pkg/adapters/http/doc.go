/*
Package http provides the server side of the envelope protocol.

WriteEnvelope and WriteError let any handler answer async requests, and
NewHandler builds a development server whose routes come from a fixtures
file:

	routes:
	  - path: /items
	    method: GET
	    payload: [1, 2, 3]
	    metadata: {page: 1}
	    onload: [refresh]
	  - path: /slow
	    delay: 2s
	    error: busy
	  - path: /broken
	    raw: "not an envelope"
*/
package http
