// Package id formats and parses document reference codes such as
// "DR-2026-0042" and "RES/2026/07".
package id

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Layout selects the separator used when rendering a Code.
type Layout int

const (
	LayoutDash  Layout = iota // PREFIX-YEAR-NNNN
	LayoutSlash               // PREFIX/YEAR/NN
)

func (l Layout) sep() string {
	if l == LayoutSlash {
		return "/"
	}
	return "-"
}

// Scheme fixes the prefix, digit width and layout for one document kind.
type Scheme struct {
	Prefix string
	Width  int
	Layout Layout
}

// Pattern describes the rendered shape, e.g. "RES/YYYY/NN".
func (s Scheme) Pattern() string {
	sep := s.Layout.sep()
	return s.Prefix + sep + "YYYY" + sep + strings.Repeat("N", s.Width)
}

// Code is a display-only reference code. It is not unique and never persisted.
type Code struct {
	Prefix   string
	Year     int
	Sequence string // zero-padded to the scheme width
	Layout   Layout
}

// String renders the code, e.g. "MM-2026-007".
func (c Code) String() string {
	if c.Prefix == "" {
		return ""
	}
	s := c.Layout.sep()
	return c.Prefix + s + strconv.Itoa(c.Year) + s + c.Sequence
}

// IsZero reports whether c has not been generated.
func (c Code) IsZero() bool {
	return c.Prefix == ""
}

// Format builds a Code from an explicit sequence number.
func Format(scheme Scheme, year, seq int) Code {
	return Code{
		Prefix:   scheme.Prefix,
		Year:     year,
		Sequence: fmt.Sprintf("%0*d", scheme.Width, seq),
		Layout:   scheme.Layout,
	}
}

// Parse reads "PREFIX-YEAR-NNNN" or "PREFIX/YEAR/NN".
func Parse(s string) (Code, error) {
	layout := LayoutDash
	if strings.Contains(s, "/") {
		layout = LayoutSlash
	}

	parts := strings.Split(s, layout.sep())
	if len(parts) != 3 || parts[0] == "" {
		return Code{}, fmt.Errorf("invalid reference code format: %q", s)
	}

	for _, r := range parts[0] {
		if r < 'A' || r > 'Z' {
			return Code{}, fmt.Errorf("invalid prefix in reference code %q", s)
		}
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return Code{}, fmt.Errorf("invalid year in reference code %q: %w", s, err)
	}

	if parts[2] == "" {
		return Code{}, fmt.Errorf("missing sequence in reference code %q", s)
	}
	if _, err := strconv.Atoi(parts[2]); err != nil {
		return Code{}, fmt.Errorf("invalid sequence in reference code %q: %w", s, err)
	}

	return Code{Prefix: parts[0], Year: year, Sequence: parts[2], Layout: layout}, nil
}

// Source draws uniform integers in [0, n).
type Source interface {
	IntN(n int) int
}

// Generator draws reference codes. It is safe for concurrent use as long
// as its Source is.
type Generator struct {
	src Source
}

// NewGenerator returns a Generator backed by src. A nil src selects
// NewLockedSource.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = NewLockedSource()
	}
	return &Generator{src: src}
}

// Generate draws a fresh code for scheme, stamped with now's calendar year.
func (g *Generator) Generate(scheme Scheme, now time.Time) Code {
	return Format(scheme, now.Year(), g.src.IntN(pow10(scheme.Width)))
}

func pow10(n int) int {
	p := 1
	for range n {
		p *= 10
	}
	return p
}

// LockedSource is a PCG source guarded by a mutex.
type LockedSource struct {
	mu sync.Mutex
	r  *mrand.Rand
}

// NewLockedSource seeds a PCG generator from crypto/rand.
func NewLockedSource() *LockedSource {
	var seed [16]byte
	_, _ = rand.Read(seed[:])
	return NewSeededSource(binary.LittleEndian.Uint64(seed[:8]), binary.LittleEndian.Uint64(seed[8:]))
}

// NewSeededSource returns a deterministic source, mainly for tests.
func NewSeededSource(seed1, seed2 uint64) *LockedSource {
	return &LockedSource{r: mrand.New(mrand.NewPCG(seed1, seed2))}
}

// IntN implements Source.
func (s *LockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}
