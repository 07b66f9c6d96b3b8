// Command xqcore-debug is a REPL for exercising the board core directly:
// load a FEN, apply and undo moves, and query legality, SEE and
// repetitions. It is a minimal inspection harness, not a playing program —
// no search, no UCI.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hailam/xqcore/internal/board"
	"github.com/hailam/xqcore/internal/book"
	"github.com/hailam/xqcore/internal/render"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "initial position")
	bookDir := flag.String("book", "", "opening book directory (defaults to the platform data dir)")
	verbose := flag.Bool("v", false, "debug-level logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	dir := *bookDir
	if dir == "" {
		d, err := book.DefaultDir()
		if err != nil {
			log.Warn().Err(err).Msg("could not resolve default book directory, book disabled")
		} else {
			dir = d
		}
	}
	var bk *book.Book
	if dir != "" {
		b, err := book.Open(dir)
		if err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("could not open book, book disabled")
		} else {
			bk = b
			defer bk.Close()
		}
	}

	sess := newSession(log)
	if _, err := sess.pos.Set(*fen, sess.newState()); err != nil {
		log.Fatal().Err(err).Str("fen", *fen).Msg("invalid starting position")
	}

	fmt.Println(sess.pos.Pretty())
	scan := bufio.NewScanner(os.Stdin)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "quit", "exit":
			return
		case "fen":
			sess.cmdFEN(args)
		case "do":
			sess.cmdDo(args)
		case "undo":
			sess.cmdUndo()
		case "legal":
			sess.cmdLegal(args)
		case "see":
			sess.cmdSEE(args)
		case "perft":
			sess.cmdPerft(args)
		case "repeated":
			sess.cmdRepeated(args)
		case "book":
			sess.cmdBook(bk)
		case "render":
			sess.cmdRender(args)
		case "print":
			fmt.Println(sess.pos.Pretty())
		default:
			fmt.Printf("unknown command %q (try: fen do undo legal see perft repeated book render print quit)\n", cmd)
		}
	}
	if err := scan.Err(); err != nil {
		log.Error().Err(err).Msg("input scan failed")
	}
}

// session owns the Position and the StateInfo arena backing its make/unmake
// chain: the core never allocates a StateInfo itself, so the caller must.
type session struct {
	log    zerolog.Logger
	pos    *board.Position
	states []*board.StateInfo
}

func newSession(log zerolog.Logger) *session {
	return &session{log: log, pos: &board.Position{}}
}

func (s *session) newState() *board.StateInfo {
	st := &board.StateInfo{}
	s.states = append(s.states, st)
	return st
}

func (s *session) cmdFEN(args []string) {
	if len(args) == 0 {
		fmt.Println(s.pos.FEN())
		return
	}
	fen := strings.Join(args, " ")
	s.states = nil
	if _, err := s.pos.Set(fen, s.newState()); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(s.pos.Pretty())
}

func (s *session) cmdDo(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: do <move>")
		return
	}
	m, err := board.ParseMove(args[0])
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if !s.pos.PseudoLegal(m) || !s.pos.Legal(m) {
		fmt.Println("illegal move:", m)
		return
	}
	gives := s.pos.GivesCheck(m)
	s.pos.DoMove(m, s.newState(), gives, nil)
	fmt.Println(s.pos.Pretty())
}

func (s *session) cmdUndo() {
	if s.pos.State().Move == board.NoMove {
		fmt.Println("nothing to undo")
		return
	}
	m := s.pos.State().Move
	s.pos.UndoMove(m)
	if len(s.states) > 0 {
		s.states = s.states[:len(s.states)-1]
	}
	fmt.Println(s.pos.Pretty())
}

func (s *session) cmdLegal(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: legal <move>")
		return
	}
	m, err := board.ParseMove(args[0])
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(s.pos.PseudoLegal(m) && s.pos.Legal(m))
}

func (s *session) cmdSEE(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: see <move> [threshold]")
		return
	}
	m, err := board.ParseMove(args[0])
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	threshold := 0
	if len(args) > 1 {
		threshold, _ = strconv.Atoi(args[1])
	}
	fmt.Println(s.pos.SeeGE(m, threshold, nil))
}

func (s *session) cmdRepeated(args []string) {
	ply := 0
	if len(args) > 0 {
		ply, _ = strconv.Atoi(args[0])
	}
	result, found := s.pos.IsRepeated(ply)
	fmt.Println("repeated:", found, "result:", result)
}

func (s *session) cmdBook(bk *book.Book) {
	if bk == nil {
		fmt.Println("no book loaded")
		return
	}
	for _, e := range bk.ProbeAll(s.pos) {
		fmt.Printf("%s%s weight=%d\n", e.From, e.To, e.Weight)
	}
}

func (s *session) cmdRender(args []string) {
	path := "board.png"
	if len(args) > 0 {
		path = args[0]
	}
	if err := render.RenderPNG(s.pos, path, render.Options{}); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("wrote", path)
}

// cmdPerft brute-forces a move count over every (from, to) square pair,
// filtered through PseudoLegal and Legal — the core exposes no move
// generator, so this walks the 90x90 candidate space instead of
// enumerating per-piece pseudo-moves.
func (s *session) cmdPerft(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: perft <depth>")
		return
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 0 {
		fmt.Println("invalid depth:", args[0])
		return
	}
	fmt.Println(s.perft(depth))
}

func (s *session) perft(depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for from := board.Square(0); int(from) < board.NumSquares; from++ {
		for to := board.Square(0); int(to) < board.NumSquares; to++ {
			if from == to {
				continue
			}
			m := board.NewMove(from, to)
			if !s.pos.PseudoLegal(m) || !s.pos.Legal(m) {
				continue
			}
			gives := s.pos.GivesCheck(m)
			st := &board.StateInfo{}
			s.pos.DoMove(m, st, gives, nil)
			nodes += s.perft(depth - 1)
			s.pos.UndoMove(m)
		}
	}
	return nodes
}
