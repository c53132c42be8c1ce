// Package registry holds the callbacks a server response may trigger through
// its onload instructions. Instructions are data: a name plus arguments.
// Nothing outside this registry is reachable.
package registry
