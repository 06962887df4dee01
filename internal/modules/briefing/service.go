// Package briefing produces higher-level natural-language artifacts from
// aggregated market data: structured strategy records and narrated audio
// briefings ("analyze sentiment, write the script, speak it").
package briefing

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hypewire/hypewire/internal/clients/elevenlabs"
	"github.com/hypewire/hypewire/internal/clients/gemini"
	"github.com/hypewire/hypewire/internal/degrade"
	"github.com/hypewire/hypewire/internal/domain"
	"github.com/hypewire/hypewire/internal/events"
	"github.com/hypewire/hypewire/internal/modules/vibe"
)

const (
	// scriptWPM converts word counts into estimated spoken seconds.
	scriptWPM = 150

	// strategyTemperature keeps structured output predictable; the narrative
	// script runs hotter.
	strategyTemperature = 0.3
	scriptTemperature   = 0.9

	maxSignalSample = 5
)

// Generator produces text from a prompt. Satisfied by the gemini client.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts gemini.GenerateOptions) (string, error)
}

// Synthesizer turns a script into audio. Satisfied by the elevenlabs client.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID, modelID string) (*elevenlabs.SynthesisResult, error)
}

// Service generates strategies and narrated briefings
type Service struct {
	gen   Generator
	voice Synthesizer
	bus   *events.Bus
	log   zerolog.Logger
}

// NewService creates a new briefing service
func NewService(gen Generator, voice Synthesizer, bus *events.Bus, log zerolog.Logger) *Service {
	return &Service{
		gen:   gen,
		voice: voice,
		bus:   bus,
		log:   log.With().Str("service", "briefing").Logger(),
	}
}

// GenerateMarketStrategy produces a structured strategy for a topic. On any
// upstream failure it returns a deterministic strategy built from the
// numeric inputs - the caller always receives a usable record, never an
// error.
func (s *Service) GenerateMarketStrategy(
	ctx context.Context,
	topic string,
	sigs []domain.RawSignal,
	momentum float64,
	vibeData *vibe.VibeAnalysis,
) degrade.Result[Strategy] {
	if s.gen == nil {
		return degrade.Fallback(fallbackStrategy(topic, momentum, vibeData), "generator not configured")
	}

	raw, err := s.gen.Generate(ctx, buildStrategyPrompt(topic, sigs, momentum, vibeData), gemini.GenerateOptions{
		Temperature:     strategyTemperature,
		MaxOutputTokens: 1024,
		JSONResponse:    true,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("topic", topic).Msg("Strategy generation failed, using fallback")
		return degrade.Fallback(fallbackStrategy(topic, momentum, vibeData), err.Error())
	}

	var strategy Strategy
	if err := json.Unmarshal([]byte(gemini.StripCodeFences(raw)), &strategy); err != nil {
		s.log.Warn().Err(err).Str("topic", topic).Msg("Unparseable strategy output, using fallback")
		return degrade.Fallback(fallbackStrategy(topic, momentum, vibeData), err.Error())
	}

	return degrade.Ok(sanitizeStrategy(strategy, momentum))
}

// GenerateLiveHypeBriefing writes a narration script for the given markets
// and synthesizes it. Script generation degrades to a template on failure;
// speech synthesis is the only step allowed to fail visibly, because there
// is no silent fallback for missing audio.
func (s *Service) GenerateLiveHypeBriefing(ctx context.Context, markets []MarketBriefingInput, voiceName string) (*BriefingResult, error) {
	if s.voice == nil {
		return nil, fmt.Errorf("speech synthesis not configured")
	}

	start := time.Now()

	script := s.generateScript(ctx, markets)
	voiceOpt := ResolveVoice(voiceName)

	audio, err := s.voice.Synthesize(ctx, script.Text, voiceOpt.ID, elevenlabs.ModelFlash)
	if err != nil {
		s.log.Error().Err(err).Str("voice", voiceOpt.Name).Msg("Speech synthesis failed")
		return nil, fmt.Errorf("briefing audio unavailable: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(audio.Audio)
	result := &BriefingResult{
		Script:            script.Text,
		WordCount:         script.WordCount,
		EstimatedDuration: script.EstimatedDuration,
		AudioURL:          fmt.Sprintf("data:%s;base64,%s", audio.ContentType, encoded),
		AudioBase64:       encoded,
		Model:             audio.Model,
		Voice:             voiceOpt.Name,
		GenerationTimeMs:  time.Since(start).Milliseconds(),
	}

	if s.bus != nil {
		s.bus.Publish(&events.BriefingGeneratedData{
			WordCount:        result.WordCount,
			Voice:            result.Voice,
			Model:            result.Model,
			GenerationTimeMs: result.GenerationTimeMs,
		})
	}
	return result, nil
}

// generateScript asks the model for a narration script, degrading to a
// templated one built from the market numbers.
func (s *Service) generateScript(ctx context.Context, markets []MarketBriefingInput) GeneratedScript {
	if s.gen == nil {
		return NewScript(fallbackScript(markets))
	}

	raw, err := s.gen.Generate(ctx, buildScriptPrompt(markets), gemini.GenerateOptions{
		Temperature:     scriptTemperature,
		MaxOutputTokens: 512,
	})
	if err != nil || strings.TrimSpace(raw) == "" {
		if err != nil {
			s.log.Warn().Err(err).Msg("Script generation failed, using templated script")
		}
		return NewScript(fallbackScript(markets))
	}
	return NewScript(elevenlabs.CleanScript(raw))
}

// NewScript wraps text with word count and estimated spoken duration.
func NewScript(text string) GeneratedScript {
	words := len(strings.Fields(text))
	return GeneratedScript{
		Text:              text,
		WordCount:         words,
		EstimatedDuration: float64(words) / scriptWPM * 60,
	}
}

func buildStrategyPrompt(topic string, sigs []domain.RawSignal, momentum float64, vibeData *vibe.VibeAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You advise traders on an attention market. Topic: %q, current momentum: %.1f/100.\n", topic, momentum)
	if vibeData != nil {
		fmt.Fprintf(&b, "Crowd sentiment: joy %d/100, anxiety %d/100.\n", vibeData.Joy, vibeData.Anxiety)
	}

	sample := sigs
	if len(sample) > maxSignalSample {
		sample = sample[:maxSignalSample]
	}
	if len(sample) > 0 {
		b.WriteString("Recent signals:\n")
		for _, sig := range sample {
			content := sig.Content
			if len(content) > 200 {
				content = content[:200]
			}
			fmt.Fprintf(&b, "- [%s] %s\n", sig.Source, content)
		}
	}

	b.WriteString("\nRespond with a single JSON object with fields: ")
	b.WriteString(`"summary" (two sentences), "momentumDirection" ("rising", "falling" or "flat"), `)
	b.WriteString(`"recommendedDuration" (one of "30m", "1h", "3h"), "rationale" (one sentence), `)
	b.WriteString(`"riskLevel" ("low", "medium" or "high").`)
	return b.String()
}

func buildScriptPrompt(markets []MarketBriefingInput) string {
	var b strings.Builder
	b.WriteString("Write a punchy 45-second spoken market briefing for an attention-trading ")
	b.WriteString("dashboard, in the voice of an excitable radio host. Plain prose only, no ")
	b.WriteString("formatting, no stage directions. Markets right now:\n")
	for _, m := range topMarkets(markets, 5) {
		fmt.Fprintf(&b, "- %s: momentum %.0f/100, %+.1f%% over 24h, volume %s, hype %d\n",
			m.Topic, m.Momentum, m.Change24h, m.Volume, m.HypeScore)
		if m.HypeSummary != "" {
			fmt.Fprintf(&b, "  context: %s\n", m.HypeSummary)
		}
	}
	return b.String()
}

// fallbackScript is the deterministic templated narration naming the top
// markets and their percentage moves.
func fallbackScript(markets []MarketBriefingInput) string {
	top := topMarkets(markets, 3)
	if len(top) == 0 {
		return "Markets are quiet right now. No major attention moves to report. Check back soon for the next briefing."
	}

	var b strings.Builder
	b.WriteString("Here is your attention market briefing. ")
	for i, m := range top {
		switch i {
		case 0:
			fmt.Fprintf(&b, "%s leads the board with momentum at %.0f and a %+.1f percent move over the last day. ",
				m.Topic, m.Momentum, m.Change24h)
		default:
			fmt.Fprintf(&b, "%s follows at %.0f momentum, %+.1f percent on the day. ",
				m.Topic, m.Momentum, m.Change24h)
		}
	}
	b.WriteString("That's the pulse. Trade the attention, not the noise.")
	return b.String()
}

func topMarkets(markets []MarketBriefingInput, n int) []MarketBriefingInput {
	sorted := make([]MarketBriefingInput, len(markets))
	copy(sorted, markets)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Momentum > sorted[j].Momentum })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// fallbackStrategy builds a deterministic strategy straight from the numeric
// inputs.
func fallbackStrategy(topic string, momentum float64, vibeData *vibe.VibeAnalysis) Strategy {
	direction := "flat"
	duration := domain.Duration1h
	risk := "medium"

	switch {
	case momentum >= 70:
		direction = "rising"
		duration = domain.Duration30m
		risk = "high"
	case momentum >= 45:
		direction = "rising"
	case momentum < 30:
		direction = "falling"
		duration = domain.Duration3h
		risk = "low"
	}
	if vibeData != nil && vibeData.Anxiety > 75 {
		risk = "high"
	}

	return Strategy{
		Summary: fmt.Sprintf("%s is showing %s attention with momentum at %.0f/100. Positioning should match the %s window.",
			topic, direction, momentum, duration),
		MomentumDirection:   direction,
		RecommendedDuration: duration,
		Rationale:           fmt.Sprintf("Derived directly from momentum %.0f with no model input available.", momentum),
		RiskLevel:           risk,
	}
}

func sanitizeStrategy(strategy Strategy, momentum float64) Strategy {
	if !strategy.RecommendedDuration.Valid() {
		strategy.RecommendedDuration = domain.DefaultDuration
	}
	switch strategy.RiskLevel {
	case "low", "medium", "high":
	default:
		strategy.RiskLevel = "medium"
	}
	switch strategy.MomentumDirection {
	case "rising", "falling", "flat":
	default:
		if momentum >= 50 {
			strategy.MomentumDirection = "rising"
		} else {
			strategy.MomentumDirection = "falling"
		}
	}
	return strategy
}
