// Package generator builds random kana words.
package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/verte-zerg/kanatype/internal/kana"
)

// Level selects the word length range.
type Level string

const (
	LevelEasy   Level = "easy"
	LevelNormal Level = "normal"
	LevelHard   Level = "hard"
)

// Levels lists the presets in menu order.
var Levels = []Level{LevelEasy, LevelNormal, LevelHard}

// LengthRange is an inclusive kana count range.
type LengthRange struct {
	Min int
	Max int
}

var levelRanges = map[Level]LengthRange{
	LevelEasy:   {Min: 2, Max: 3},
	LevelNormal: {Min: 3, Max: 4},
	LevelHard:   {Min: 4, Max: 6},
}

// Range returns the length range for a level; unknown levels use normal.
func (l Level) Range() LengthRange {
	if r, ok := levelRanges[l]; ok {
		return r
	}
	return levelRanges[LevelNormal]
}

// Label returns the Japanese menu label.
func (l Level) Label() string {
	switch l {
	case LevelEasy:
		return "かんたん"
	case LevelNormal:
		return "ふつう"
	case LevelHard:
		return "むずかしい"
	default:
		return ""
	}
}

// ParseLevel validates a level name.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := levelRanges[l]; !ok {
		return "", fmt.Errorf("unknown level %q (want easy, normal or hard)", s)
	}
	return l, nil
}

// Generator produces random kana words.
type Generator struct {
	rnd  *rand.Rand
	pool []rune
}

// New returns a Generator over the default pool seeded with the current time.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()), kana.Pool)
}

// NewWithSource returns a Generator drawing from pool with the given source.
// An empty pool falls back to the default one.
func NewWithSource(src rand.Source, pool []rune) *Generator {
	if len(pool) == 0 {
		pool = kana.Pool
	}
	p := make([]rune, len(pool))
	copy(p, pool)
	return &Generator{rnd: rand.New(src), pool: p}
}

// Generate draws a length uniformly from the level range, then each kana
// uniformly from the pool.
func (g *Generator) Generate(level Level) kana.Word {
	r := level.Range()
	length := randomInt(g.rnd, r.Min, r.Max)
	symbols := make([]rune, 0, length)
	for i := 0; i < length; i++ {
		symbols = append(symbols, g.pool[g.rnd.Intn(len(g.pool))])
	}
	return kana.NewWord(symbols)
}

func randomInt(rnd *rand.Rand, minVal, maxVal int) int {
	if minVal >= maxVal {
		return minVal
	}
	return rnd.Intn(maxVal-minVal+1) + minVal
}
