// Package book implements a Zobrist-keyed opening book of recommended
// replies, backed by Badger. It is a pure consumer of Position's exported
// Key/PseudoLegal/Legal surface — it never mutates a Position and is not part
// of the board core itself.
package book

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/xqcore/internal/board"
)

// DefaultDir returns the platform-specific directory the book database
// lives in by default, creating it if absent.
func DefaultDir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, "Library", "Application Support")
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			base = filepath.Join(home, "AppData", "Roaming")
		}
	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			base = filepath.Join(home, ".local", "share")
		}
	}

	dir := filepath.Join(base, "xqcore", "book")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// Entry is one recommended reply: a move plus its relative weight.
// Xiangqi has no promotion or castling bits to encode, unlike Polyglot, so
// the move is stored as plain (from, to) squares rather than a packed u16.
type Entry struct {
	From, To board.Square
	Weight   uint16
}

func (e Entry) move() board.Move { return board.NewMove(e.From, e.To) }

// recordSize is one on-disk entry: 8-byte key, 1-byte from, 1-byte to,
// 2-byte weight.
const recordSize = 12

// Book is a Zobrist-key-indexed store of Entry slices, opened over a
// Badger instance at dbDir: value(key) -> list of Entry.
type Book struct {
	db *badger.DB
}

// Open opens (creating if absent) a book database rooted at dbDir.
func Open(dbDir string) (*Book, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("book: open %s: %w", dbDir, err)
	}
	return &Book{db: db}, nil
}

// Close releases the underlying database.
func (b *Book) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

func keyBytes(key uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], key)
	return buf[:]
}

func encodeEntries(entries []Entry) []byte {
	buf := make([]byte, len(entries)*4)
	for i, e := range entries {
		buf[i*4] = byte(e.From)
		buf[i*4+1] = byte(e.To)
		binary.BigEndian.PutUint16(buf[i*4+2:], e.Weight)
	}
	return buf
}

func decodeEntries(buf []byte) []Entry {
	n := len(buf) / 4
	entries := make([]Entry, n)
	for i := 0; i < n; i++ {
		entries[i] = Entry{
			From:   board.Square(buf[i*4]),
			To:     board.Square(buf[i*4+1]),
			Weight: binary.BigEndian.Uint16(buf[i*4+2:]),
		}
	}
	return entries
}

// Put records entries for key, replacing whatever was stored before.
func (b *Book) Put(key uint64, entries []Entry) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(keyBytes(key), encodeEntries(entries))
	})
}

// lookup returns the raw entries stored for key.
func (b *Book) lookup(key uint64) ([]Entry, error) {
	var entries []Entry
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyBytes(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			entries = decodeEntries(val)
			return nil
		})
	})
	return entries, err
}

// Probe returns a weighted-random legal reply for pos's current key, or
// (NoMove, false) if the book has nothing playable there. A stored entry
// that is no longer legal in pos (the book is user-supplied data, not
// trusted input, so it goes through the same pseudo-legal/legal guard as
// any other untrusted move) is skipped rather than returned.
func (b *Book) Probe(pos *board.Position) (board.Move, bool) {
	if b == nil {
		return board.NoMove, false
	}
	entries, err := b.lookup(pos.Key())
	if err != nil || len(entries) == 0 {
		return board.NoMove, false
	}

	var playable []Entry
	for _, e := range entries {
		m := e.move()
		if pos.PseudoLegal(m) && pos.Legal(m) {
			playable = append(playable, e)
		}
	}
	if len(playable) == 0 {
		return board.NoMove, false
	}

	total := uint32(0)
	for _, e := range playable {
		total += uint32(e.Weight)
	}
	if total == 0 {
		return playable[0].move(), true
	}

	r := rand.Uint32() % total
	cum := uint32(0)
	for _, e := range playable {
		cum += uint32(e.Weight)
		if r < cum {
			return e.move(), true
		}
	}
	return playable[len(playable)-1].move(), true
}

// ProbeAll returns every playable entry for pos's key, sorted by weight
// descending, for inspection tooling (cmd/xqcore-debug).
func (b *Book) ProbeAll(pos *board.Position) []Entry {
	if b == nil {
		return nil
	}
	entries, err := b.lookup(pos.Key())
	if err != nil {
		return nil
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if pos.PseudoLegal(e.move()) && pos.Legal(e.move()) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weight > out[j].Weight })
	return out
}

// Import streams native book records (8-byte big-endian Zobrist key, 1-byte
// from, 1-byte to, 2-byte weight, repeated) from r into the database,
// merging with any entries already stored for each key.
func Import(b *Book, r io.Reader) (int, error) {
	grouped := make(map[uint64][]Entry)
	var rec [recordSize]byte
	for {
		_, err := io.ReadFull(r, rec[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("book: import: %w", err)
		}
		key := binary.BigEndian.Uint64(rec[0:8])
		e := Entry{
			From:   board.Square(rec[8]),
			To:     board.Square(rec[9]),
			Weight: binary.BigEndian.Uint16(rec[10:12]),
		}
		grouped[key] = append(grouped[key], e)
	}

	for key, entries := range grouped {
		existing, err := b.lookup(key)
		if err != nil {
			return 0, err
		}
		if err := b.Put(key, append(existing, entries...)); err != nil {
			return 0, err
		}
	}
	return len(grouped), nil
}

// Size returns the number of distinct positions recorded.
func (b *Book) Size() (int, error) {
	n := 0
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}
