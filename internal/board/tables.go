package board

// FileMask and RankMask are precomputed single-file / single-rank bitboards.
var (
	FileMask [NumFiles]Bitboard90
	RankMask [NumRanks]Bitboard90
)

// PalaceMask is the 3x3 palace each king/advisor is confined to, indexed by
// color. RiverHalf is the own-side half of the board (ranks 0-4 for Red,
// 5-9 for Black), indexed by color.
var (
	PalaceMask [2]Bitboard90
	RiverHalf  [2]Bitboard90
)

const palaceMinFile = 3 // files D..F (0-indexed 3..5)
const palaceMaxFile = 5

func init() {
	for f := 0; f < NumFiles; f++ {
		var bb Bitboard90
		for r := 0; r < NumRanks; r++ {
			bb = bb.Set(NewSquare(f, r))
		}
		FileMask[f] = bb
	}
	for r := 0; r < NumRanks; r++ {
		var bb Bitboard90
		for f := 0; f < NumFiles; f++ {
			bb = bb.Set(NewSquare(f, r))
		}
		RankMask[r] = bb
	}

	for f := palaceMinFile; f <= palaceMaxFile; f++ {
		for r := 0; r <= 2; r++ {
			PalaceMask[Red] = PalaceMask[Red].Set(NewSquare(f, r))
		}
		for r := 7; r <= 9; r++ {
			PalaceMask[Black] = PalaceMask[Black].Set(NewSquare(f, r))
		}
	}

	for f := 0; f < NumFiles; f++ {
		for r := 0; r <= 4; r++ {
			RiverHalf[Red] = RiverHalf[Red].Set(NewSquare(f, r))
		}
		for r := 5; r < NumRanks; r++ {
			RiverHalf[Black] = RiverHalf[Black].Set(NewSquare(f, r))
		}
	}

	initNonSliderTables()
}

// inPalace reports whether (file,rank) lies in color's palace.
func inPalace(c Color, file, rank int) bool {
	if file < palaceMinFile || file > palaceMaxFile {
		return false
	}
	if c == Red {
		return rank >= 0 && rank <= 2
	}
	return rank >= 7 && rank <= 9
}

// crossedRiver reports whether a pawn of color c standing on sq has crossed
// the river (gaining the sideways move).
func crossedRiver(c Color, sq Square) bool {
	if c == Red {
		return sq.Rank() >= 5
	}
	return sq.Rank() <= 4
}

func onBoardFR(file, rank int) bool {
	return file >= 0 && file < NumFiles && rank >= 0 && rank < NumRanks
}
