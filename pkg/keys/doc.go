// Package keys normalizes raw platform key codes to a small symbolic set.
//
// Platforms disagree about the codes some keys produce (Safari reports arrow
// keys in the 63232 range), so a Table carries aliases that redirect a
// divergent code to its primary code before the name is resolved.
package keys
