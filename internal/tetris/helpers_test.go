package tetris

// fixedRand always yields the same family.
type fixedRand struct {
	family Family
}

func (r fixedRand) Intn(int) int {
	return int(r.family) - 1
}

// seqRand yields families from a list, repeating the last one.
type seqRand struct {
	families []Family
	i        int
}

func (r *seqRand) Intn(int) int {
	f := r.families[len(r.families)-1]
	if r.i < len(r.families) {
		f = r.families[r.i]
	}
	r.i++
	return int(f) - 1
}

// fillRow occupies every column of row except the listed ones.
func fillRow(b Board, row int, except ...int) Board {
	out := b.clone()
	skip := make(map[int]bool, len(except))
	for _, c := range except {
		skip[c] = true
	}
	for c := range out.cols {
		if skip[c] {
			continue
		}
		out.cells[row][c] = Cell{Occupied: true, Family: FamilyNone, Key: "fill"}
	}
	return out
}

// occupy marks single cells as locked.
func occupy(b Board, cells ...Position) Board {
	out := b.clone()
	for _, p := range cells {
		out.cells[p.Row][p.Col] = Cell{Occupied: true, Key: "occupy"}
	}
	return out
}
