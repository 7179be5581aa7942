// Package content generates random mixed-content text files and analyzes
// them. A run summary can carry the analysis as supplementary fields.
package content

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"
)

// Margin is the share of the size budget the generator fills.
const Margin = 0.95

// SeparatorEvery inserts a "--- CHUNK n ---" line every n chunks.
const SeparatorEvery = 50

const (
	alnum   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	version = "1.0"
)

var (
	words = []string{"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
		"time", "space", "matter", "energy", "quantum", "classical", "field",
		"wave", "particle", "observer", "measurement", "reality"}
	variables  = []string{"x", "y", "z", "t", "α", "β", "γ", "δ", "ε", "ζ"}
	operations = []string{"+", "-", "*", "/", "^", "∫", "∂", "∑", "∏"}
)

// Result describes a generated file.
type Result struct {
	Bytes  int
	Chunks int
	Hash   string // hex SHA-256 of the whole file
}

// Generator writes chunks of random content up to a size budget.
type Generator struct {
	MaxBytes int
	Now      func() time.Time

	rng *rand.Rand
}

// NewGenerator returns a generator with a sizeMB budget. The same seed
// yields the same chunks.
func NewGenerator(sizeMB float64, seed uint64) *Generator {
	return &Generator{
		MaxBytes: int(sizeMB * 1024 * 1024),
		Now:      time.Now,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (g *Generator) between(lo, hi int) int { return lo + g.rng.IntN(hi-lo+1) }

func (g *Generator) pick(s []string) string { return s[g.rng.IntN(len(s))] }

// Chunk returns one random line (newline included).
func (g *Generator) Chunk() string {
	switch g.rng.IntN(8) {
	case 0:
		return g.alphanumeric()
	case 1:
		return g.sentence()
	case 2:
		return g.numbers()
	case 3:
		return g.binary()
	case 4:
		return g.formula()
	case 5:
		return g.coordinate()
	case 6:
		return g.timestamp()
	default:
		return g.hash()
	}
}

func (g *Generator) alphanumeric() string {
	const set = alnum + " "
	n := g.between(10, 100)
	b := make([]byte, n, n+1)
	for i := range b {
		b[i] = set[g.rng.IntN(len(set))]
	}
	return string(append(b, '\n'))
}

func (g *Generator) sentence() string {
	n := g.between(5, 20)
	ws := make([]string, n)
	for i := range ws {
		ws[i] = g.pick(words)
	}
	s := strings.Join(ws, " ")
	return strings.ToUpper(s[:1]) + s[1:] + ".\n"
}

func (g *Generator) numbers() string {
	n := g.between(1, 10)
	ns := make([]string, n)
	for i := range ns {
		ns[i] = fmt.Sprint(g.between(-1_000_000, 1_000_000))
	}
	return strings.Join(ns, ", ") + "\n"
}

func (g *Generator) binary() string {
	n := g.between(8, 64)
	b := make([]byte, n, n+1)
	for i := range b {
		b[i] = '0' + byte(g.rng.IntN(2))
	}
	return string(append(b, '\n'))
}

func (g *Generator) formula() string {
	var b strings.Builder
	b.WriteString(g.pick(variables))
	for range g.between(1, 4) {
		b.WriteString(g.pick(operations))
		b.WriteString(g.pick(variables))
	}
	if g.rng.Float64() > 0.5 {
		fmt.Fprintf(&b, " = %d", g.between(1, 100))
	}
	b.WriteByte('\n')
	return b.String()
}

func (g *Generator) coordinate() string {
	lat := -90 + 180*g.rng.Float64()
	lon := -180 + 360*g.rng.Float64()
	return fmt.Sprintf("(%.6f, %.6f)\n", lat, lon)
}

func (g *Generator) timestamp() string {
	sec := g.rng.Int64N(g.Now().Unix() + 1)
	return time.Unix(sec, 0).UTC().Format("2006-01-02 15:04:05.000000") + "\n"
}

func (g *Generator) hash() string {
	b := make([]byte, 32)
	for i := range b {
		b[i] = alnum[g.rng.IntN(len(alnum))]
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]) + "\n"
}

// Write emits header, chunks (until the next one would pass Margin of the
// budget) and footer to w.
func (g *Generator) Write(w io.Writer) (Result, error) {
	h := sha256.New()
	bw := bufio.NewWriter(w)
	out := io.MultiWriter(bw, h)

	var size int
	emit := func(s string) error {
		n, err := io.WriteString(out, s)
		size += n
		return err
	}

	header := fmt.Sprintf("=== UNKNOWN GENERATION FILE ===\nGenerated: %s\nMax Size: %d bytes\nGenerator Version: %s\nContent Type: Unknown\nLength: Undefined\n========================================\n\n",
		g.Now().Format(time.RFC3339), g.MaxBytes, version)
	if err := emit(header); err != nil {
		return Result{}, err
	}

	limit := float64(g.MaxBytes) * Margin
	chunks := 0
	for float64(size) < limit {
		c := g.Chunk()
		if float64(size+len(c)) > limit {
			break
		}
		if chunks > 0 && chunks%SeparatorEvery == 0 {
			if err := emit(fmt.Sprintf("\n--- CHUNK %d ---\n", chunks)); err != nil {
				return Result{}, err
			}
		}
		if err := emit(c); err != nil {
			return Result{}, err
		}
		chunks++
	}

	partial := hex.EncodeToString(h.Sum(nil))[:16]
	footer := fmt.Sprintf("\n========================================\nGeneration Complete\nTotal Chunks: %d\nFinal Size: %d bytes\nContent Hash: %s\nPurpose: Unknown\nMeaning: Undefined\n========================================",
		chunks, size, partial)
	if err := emit(footer); err != nil {
		return Result{}, err
	}
	if err := bw.Flush(); err != nil {
		return Result{}, err
	}
	return Result{Bytes: size, Chunks: chunks, Hash: hex.EncodeToString(h.Sum(nil))}, nil
}
