package keys

// Special is the symbolic name of a normalized key.
type Special string

const (
	Delete Special = "delete"
	Tab    Special = "tab"
	Return Special = "return"
	Esc    Special = "esc"
	Left   Special = "left"
	Up     Special = "up"
	Right  Special = "right"
	Down   Special = "down"
)

// Table maps raw key codes to names, with one level of aliasing.
type Table struct {
	// Names maps a primary code to its symbolic name.
	Names map[int]Special

	// Aliases redirects a divergent code to a primary code.
	Aliases map[int]int
}

// Default is the table used by Normalize.
var Default = Table{
	Names: map[int]Special{
		8:  Delete,
		9:  Tab,
		13: Return,
		27: Esc,
		37: Left,
		38: Up,
		39: Right,
		40: Down,
	},
	Aliases: map[int]int{
		63232: 38,
		63233: 40,
		63234: 37,
		63235: 39,
	},
}

// Lookup resolves code to a name. At most one alias is followed; an alias
// pointing at another alias resolves to nothing.
func (t Table) Lookup(code int) (Special, bool) {
	if name, ok := t.Names[code]; ok {
		return name, true
	}
	target, ok := t.Aliases[code]
	if !ok {
		return "", false
	}
	name, ok := t.Names[target]
	return name, ok
}

// Normalize resolves code through the Default table.
func Normalize(code int) (Special, bool) {
	return Default.Lookup(code)
}
