// Package markets generates the mock attention-market cards shown on the
// dashboard. Cards are derived from seeded synthetic price series, so a
// given seed always produces the same board.
package markets

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"

	"github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/stat"

	"github.com/hypewire/hypewire/internal/domain"
)

// catalog is the fixed set of attention markets on the board.
var catalog = []struct {
	ID       string
	Topic    string
	Category string
}{
	{"mkt-ai-robots", "AI Robots", "tech"},
	{"mkt-meme-coins", "Meme Coins", "crypto"},
	{"mkt-celebrity-feud", "Celebrity Feud", "entertainment"},
	{"mkt-election-drama", "Election Drama", "politics"},
	{"mkt-space-launch", "Space Launch", "science"},
	{"mkt-viral-dance", "Viral Dance", "entertainment"},
	{"mkt-gpu-shortage", "GPU Shortage", "tech"},
	{"mkt-sports-upset", "Sports Upset", "sports"},
}

const (
	seriesLen = 48
	rocPeriod = 24
	emaPeriod = 12
)

// Generator produces deterministic market cards from a seed. Each websocket
// tick advances the series by one step while keeping the same seed, so two
// connections opened at the same tick see the same board.
type Generator struct {
	seed int64
}

// NewGenerator creates a market card generator.
func NewGenerator(seed int64) *Generator {
	return &Generator{seed: seed}
}

// Markets returns the current board at tick zero.
func (g *Generator) Markets() []domain.Market {
	return g.MarketsAt(0)
}

// MarketsAt returns the board at a given tick. Deterministic for a fixed
// (seed, tick) pair.
func (g *Generator) MarketsAt(tick int64) []domain.Market {
	cards := make([]domain.Market, 0, len(catalog))
	for _, entry := range catalog {
		cards = append(cards, g.buildCard(entry.ID, entry.Topic, entry.Category, tick))
	}
	return cards
}

func (g *Generator) buildCard(id, topic, category string, tick int64) domain.Market {
	rng := rand.New(rand.NewSource(g.seed ^ topicSeed(topic)))

	// Random walk long enough to cover the requested tick, so consecutive
	// ticks share their history and the card drifts instead of jumping.
	steps := seriesLen + int(tick)
	closes := make([]float64, steps)
	closes[0] = 100
	for i := 1; i < steps; i++ {
		closes[i] = closes[i-1] * (1 + (rng.Float64()-0.48)*0.05)
	}
	window := closes[steps-seriesLen:]

	roc := talib.Roc(window, rocPeriod)
	change := round2(roc[len(roc)-1])

	ema := talib.Ema(window, emaPeriod)
	trend := ema[len(ema)-1]/window[0] - 1
	momentum := clampScore(50 + trend*200)

	// Synthetic engagement counts drive the hype score. Mean sets the level,
	// spread pushes it up: bursty topics read hotter than steady ones.
	engagement := make([]float64, rocPeriod)
	base := 2000 + rng.Float64()*8000
	for i := range engagement {
		engagement[i] = base * (0.5 + rng.Float64())
	}
	mean := stat.Mean(engagement, nil)
	sd := stat.StdDev(engagement, nil)
	hype := clampScore((mean + sd) / 150)

	return domain.Market{
		MarketID:  id,
		Topic:     topic,
		Category:  category,
		Momentum:  momentum,
		Change24h: change,
		Volume:    formatVolume(mean * 310),
		HypeScore: int(hype),
	}
}

func topicSeed(topic string) int64 {
	h := fnv.New64a()
	h.Write([]byte(topic))
	return int64(h.Sum64())
}

// formatVolume renders a notional volume the way the dashboard expects,
// e.g. "$2.4M" or "$830K".
func formatVolume(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("$%.0fK", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return math.Round(v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
