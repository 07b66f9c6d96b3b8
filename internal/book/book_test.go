package book

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/hailam/xqcore/internal/board"
)

func startPosition(t *testing.T) (*board.Position, *board.StateInfo) {
	t.Helper()
	var pos board.Position
	var st board.StateInfo
	if _, err := pos.Set(board.StartFEN, &st); err != nil {
		t.Fatalf("Set: %v", err)
	}
	return &pos, &st
}

func openBook(t *testing.T) *Book {
	t.Helper()
	b, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestBookPutAndProbe(t *testing.T) {
	pos, _ := startPosition(t)
	b := openBook(t)

	from, _ := board.ParseSquare("b2")
	to, _ := board.ParseSquare("b4")
	entries := []Entry{{From: from, To: to, Weight: 100}}

	if err := b.Put(pos.Key(), entries); err != nil {
		t.Fatalf("Put: %v", err)
	}

	size, err := b.Size()
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if size != 1 {
		t.Errorf("Size = %d, want 1", size)
	}

	move, found := b.Probe(pos)
	if !found {
		t.Fatal("expected a book hit")
	}
	if move.From() != from || move.To() != to {
		t.Errorf("Probe = %s, want %s%s", move, from, to)
	}
}

func TestBookSkipsIllegalEntries(t *testing.T) {
	pos, _ := startPosition(t)
	b := openBook(t)

	// A cannon cannot move onto a square held by its own king: never legal.
	from, _ := board.ParseSquare("b2")
	to := pos.King(board.Red)
	if err := b.Put(pos.Key(), []Entry{{From: from, To: to, Weight: 50}}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if _, found := b.Probe(pos); found {
		t.Error("expected illegal entry to be filtered out")
	}
}

func TestBookMiss(t *testing.T) {
	pos, _ := startPosition(t)
	b := openBook(t)

	move, found := b.Probe(pos)
	if found {
		t.Error("expected a miss on an empty book")
	}
	if move != board.NoMove {
		t.Errorf("expected NoMove on miss, got %s", move)
	}
}

func TestImport(t *testing.T) {
	pos, _ := startPosition(t)
	b := openBook(t)

	from, _ := board.ParseSquare("b2")
	to, _ := board.ParseSquare("b4")

	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, pos.Key())
	buf.WriteByte(byte(from))
	buf.WriteByte(byte(to))
	binary.Write(&buf, binary.BigEndian, uint16(10))

	n, err := Import(b, &buf)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 1 {
		t.Errorf("Import returned %d positions, want 1", n)
	}

	move, found := b.Probe(pos)
	if !found {
		t.Fatal("expected a book hit after import")
	}
	if move.From() != from || move.To() != to {
		t.Errorf("Probe = %s, want %s%s", move, from, to)
	}
}

func TestProbeAllSortedByWeight(t *testing.T) {
	pos, _ := startPosition(t)
	b := openBook(t)

	b2, _ := board.ParseSquare("b2")
	b4, _ := board.ParseSquare("b4")
	h2, _ := board.ParseSquare("h2")
	h4, _ := board.ParseSquare("h4")

	entries := []Entry{
		{From: b2, To: b4, Weight: 10},
		{From: h2, To: h4, Weight: 90},
	}
	if err := b.Put(pos.Key(), entries); err != nil {
		t.Fatalf("Put: %v", err)
	}

	all := b.ProbeAll(pos)
	if len(all) != 2 {
		t.Fatalf("ProbeAll len = %d, want 2", len(all))
	}
	if all[0].Weight < all[1].Weight {
		t.Errorf("ProbeAll not sorted by weight descending: %v", all)
	}
}
