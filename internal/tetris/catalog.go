package tetris

import "fmt"

// Family identifies one of the seven piece shapes. It doubles as the
// visual tag stored in locked board cells.
type Family int

const (
	FamilyNone Family = iota
	FamilyO
	FamilyT
	FamilyI
	FamilyL
	FamilyJ
	FamilyZ
	FamilyS
)

// familyCount is the number of real families (FamilyNone excluded).
const familyCount = 7

// canonical shapes in spawn orientation, indexed by Family.
var canonical = [...]Shape{
	FamilyO: mustShape([][]int{{1, 1}, {1, 1}}),
	FamilyT: mustShape([][]int{{1, 1, 1}, {0, 1, 0}}),
	FamilyI: mustShape([][]int{{1}, {1}, {1}, {1}}),
	FamilyL: mustShape([][]int{{1, 0}, {1, 0}, {1, 1}}),
	FamilyJ: mustShape([][]int{{0, 1}, {0, 1}, {1, 1}}),
	FamilyZ: mustShape([][]int{{1, 1, 0}, {0, 1, 1}}),
	FamilyS: mustShape([][]int{{0, 1, 1}, {1, 1, 0}}),
}

// Families returns all seven families in catalog order.
func Families() []Family {
	return []Family{FamilyO, FamilyT, FamilyI, FamilyL, FamilyJ, FamilyZ, FamilyS}
}

// Valid reports whether f is one of the seven real families.
func (f Family) Valid() bool {
	return f >= FamilyO && f <= FamilyS
}

// Shape returns the canonical spawn-orientation shape of the family.
func (f Family) Shape() Shape {
	if !f.Valid() {
		panic(fmt.Sprintf("tetris: no shape for family %d", int(f)))
	}
	return canonical[f]
}

// String returns the one-letter family name.
func (f Family) String() string {
	switch f {
	case FamilyO:
		return "O"
	case FamilyT:
		return "T"
	case FamilyI:
		return "I"
	case FamilyL:
		return "L"
	case FamilyJ:
		return "J"
	case FamilyZ:
		return "Z"
	case FamilyS:
		return "S"
	default:
		return "-"
	}
}

// ParseFamily converts a one-letter name back into a Family.
func ParseFamily(s string) (Family, bool) {
	for _, f := range Families() {
		if f.String() == s {
			return f, true
		}
	}
	return FamilyNone, false
}

// Piece is a falling piece: its family, current orientation, identity and
// top-left anchor on the board.
type Piece struct {
	Family Family
	Shape  Shape
	ID     uint64
	Pos    Position
}

// Instantiate returns a fresh piece of the family in its canonical
// orientation. ID and position are left zero for the caller to assign.
func Instantiate(f Family) Piece {
	return Piece{Family: f, Shape: f.Shape()}
}

// Rand is the subset of *rand.Rand the catalog and queue need.
type Rand interface {
	Intn(n int) int
}

// RandomFamily picks one of the seven families uniformly.
func RandomFamily(rng Rand) Family {
	return Families()[rng.Intn(familyCount)]
}
