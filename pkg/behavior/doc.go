// Package behavior holds named client-side behaviors that the server can ask
// to initialize through the javelin_behaviors section of a response.
package behavior
