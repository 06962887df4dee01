// Package signals converts raw social/news signals into structured analyses
// with as few generation-API calls as possible.
package signals

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hypewire/hypewire/internal/clients/gemini"
	"github.com/hypewire/hypewire/internal/degrade"
	"github.com/hypewire/hypewire/internal/domain"
	"github.com/hypewire/hypewire/internal/events"
)

const (
	// batchSize is the number of signals folded into one composite request.
	batchSize = 10

	// contentCap truncates signal content before transmission to control
	// token usage.
	contentCap = 500

	// fallbackSummaryLen is how much raw content the fallback analysis keeps
	// as its hype summary.
	fallbackSummaryLen = 100

	fallbackEvent     = "Unable to analyze signal"
	fallbackRationale = "Analysis unavailable; treating signal as low-confidence noise"
)

// Generator produces text from a prompt. Satisfied by the gemini client.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts gemini.GenerateOptions) (string, error)
}

// Service is the batch signal analyzer
type Service struct {
	gen Generator
	bus *events.Bus
	log zerolog.Logger
}

// NewService creates a new signal analysis service
func NewService(gen Generator, bus *events.Bus, log zerolog.Logger) *Service {
	return &Service{
		gen: gen,
		bus: bus,
		log: log.With().Str("service", "signals").Logger(),
	}
}

// AnalyzeBatch analyzes N signals and always returns exactly N results in
// input order, one per signal id. Failed chunks and missing array positions
// get the deterministic fallback analysis; this operation never fails.
func (s *Service) AnalyzeBatch(ctx context.Context, sigs []domain.RawSignal) []AnalyzedSignal {
	results := make([]AnalyzedSignal, 0, len(sigs))
	degraded := 0

	for start := 0; start < len(sigs); start += batchSize {
		end := start + batchSize
		if end > len(sigs) {
			end = len(sigs)
		}
		chunk := sigs[start:end]

		for i, res := range s.analyzeChunk(ctx, chunk) {
			if res.Degraded {
				degraded++
				s.log.Warn().
					Str("signal_id", chunk[i].ID).
					Str("reason", res.Reason).
					Msg("Substituted fallback analysis")
			}
			results = append(results, AnalyzedSignal{
				SignalID:       chunk[i].ID,
				SignalAnalysis: res.Value,
			})
		}
	}

	if s.bus != nil {
		s.bus.Publish(&events.SignalsAnalyzedData{Requested: len(sigs), Degraded: degraded})
	}

	s.log.Info().
		Int("signals", len(sigs)).
		Int("degraded", degraded).
		Msg("Batch analysis completed")

	return results
}

// AnalyzeSignal analyzes a single signal.
func (s *Service) AnalyzeSignal(ctx context.Context, sig domain.RawSignal) AnalyzedSignal {
	return s.AnalyzeBatch(ctx, []domain.RawSignal{sig})[0]
}

// analyzeChunk issues one composite request for up to batchSize signals and
// zips the returned JSON array back to the chunk positionally.
func (s *Service) analyzeChunk(ctx context.Context, chunk []domain.RawSignal) []degrade.Result[SignalAnalysis] {
	out := make([]degrade.Result[SignalAnalysis], len(chunk))

	if s.gen == nil {
		for i, sig := range chunk {
			out[i] = degrade.Fallback(fallbackAnalysis(sig), "generator not configured")
		}
		return out
	}

	raw, err := s.gen.Generate(ctx, buildBatchPrompt(chunk), gemini.GenerateOptions{
		Temperature:     0.2,
		MaxOutputTokens: 4096,
		JSONResponse:    true,
	})
	if err != nil {
		for i, sig := range chunk {
			out[i] = degrade.Fallback(fallbackAnalysis(sig), err.Error())
		}
		return out
	}

	var parsed []SignalAnalysis
	if err := json.Unmarshal([]byte(gemini.StripCodeFences(raw)), &parsed); err != nil {
		for i, sig := range chunk {
			out[i] = degrade.Fallback(fallbackAnalysis(sig), fmt.Sprintf("unparseable model output: %v", err))
		}
		return out
	}

	for i, sig := range chunk {
		if i >= len(parsed) {
			out[i] = degrade.Fallback(fallbackAnalysis(sig), "model returned short array")
			continue
		}
		out[i] = degrade.Ok(sanitize(parsed[i]))
	}
	return out
}

// buildBatchPrompt folds a chunk into one composite request asking for a JSON
// array with one entry per item, in submission order.
func buildBatchPrompt(chunk []domain.RawSignal) string {
	var b strings.Builder
	b.WriteString("You are an attention-market analyst. Analyze each of the following ")
	fmt.Fprintf(&b, "%d signals and respond with a JSON array of exactly %d objects, ", len(chunk), len(chunk))
	b.WriteString("in the same order as the input. Each object must have these fields: ")
	b.WriteString(`"coreEvent" (short description of the core event), `)
	b.WriteString(`"actors" (array of named people/organizations), `)
	b.WriteString(`"hypeSummary" (one-sentence hype summary), `)
	b.WriteString(`"isNoise" (boolean), `)
	b.WriteString(`"confidence" (integer 0-100), `)
	b.WriteString(`"suggestedDuration" (one of "30m", "1h", "3h"), `)
	b.WriteString(`"rationale" (short string). Respond with the JSON array only.`)
	b.WriteString("\n\nSignals:\n")

	for i, sig := range chunk {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, sig.Source, truncate(sig.Content, contentCap))
	}
	return b.String()
}

// truncate caps a string at n characters without splitting a rune.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// sanitize clamps model output into the documented ranges.
func sanitize(a SignalAnalysis) SignalAnalysis {
	if a.Confidence < 0 {
		a.Confidence = 0
	}
	if a.Confidence > 100 {
		a.Confidence = 100
	}
	if !a.SuggestedDuration.Valid() {
		a.SuggestedDuration = domain.DefaultDuration
	}
	if a.Actors == nil {
		a.Actors = []string{}
	}
	return a
}

// fallbackAnalysis is the deterministic substitute used whenever the model
// could not be consulted for a signal.
func fallbackAnalysis(sig domain.RawSignal) SignalAnalysis {
	summary := truncate(sig.Content, fallbackSummaryLen)
	return SignalAnalysis{
		CoreEvent:         fallbackEvent,
		Actors:            []string{},
		HypeSummary:       summary,
		IsNoise:           true,
		Confidence:        0,
		SuggestedDuration: domain.DefaultDuration,
		Rationale:         fallbackRationale,
	}
}
