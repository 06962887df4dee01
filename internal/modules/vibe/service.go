// Package vibe produces joy/anxiety sentiment readings, preferring the
// external emotion API and degrading to a deterministic local keyword
// heuristic when it is unavailable.
package vibe

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hypewire/hypewire/internal/clients/hume"
	"github.com/hypewire/hypewire/internal/degrade"
	"github.com/hypewire/hypewire/internal/events"
)

const (
	// Alert thresholds. Anxiety is checked first and wins ties by design of
	// the dashboard: volatility warnings matter more than hype.
	anxietyAlertThreshold = 75
	joyAlertThreshold     = 80

	// saturationThreshold caps how extreme the joy/anxiety pair can be
	// simultaneously; above it the pair is scaled down proportionally.
	saturationThreshold = 150

	// dominanceMargin is how far one score must lead to name a dominant
	// emotion.
	dominanceMargin = 10

	// jitterBound is the exclusive upper bound of the heuristic's random
	// jitter per score.
	jitterBound = 11

	fallbackConfidence = 50
)

// positiveKeywords and negativeKeywords drive the local fallback heuristic.
var positiveKeywords = []string{
	"moon", "bullish", "pump", "viral", "huge", "insane",
	"hype", "rocket", "breakout", "soaring", "winning", "excited",
}

var negativeKeywords = []string{
	"crash", "dump", "panic", "fear", "scam", "rug",
	"bearish", "collapse", "lawsuit", "plunge", "risk", "worried",
}

// EmotionAnalyzer is the external emotion endpoint. Satisfied by the hume
// client.
type EmotionAnalyzer interface {
	AnalyzeEmotions(ctx context.Context, text string) ([]hume.EmotionScore, error)
}

// Service is the sentiment adapter
type Service struct {
	analyzer EmotionAnalyzer
	bus      *events.Bus
	log      zerolog.Logger
}

// NewService creates a new sentiment service
func NewService(analyzer EmotionAnalyzer, bus *events.Bus, log zerolog.Logger) *Service {
	return &Service{
		analyzer: analyzer,
		bus:      bus,
		log:      log.With().Str("service", "vibe").Logger(),
	}
}

// AnalyzeVibe produces a VibeAnalysis and its derived alert. The external
// endpoint is tried first; any failure degrades to the local heuristic, so
// this operation never fails. Threshold-crossing alerts are published on the
// event bus.
func (s *Service) AnalyzeVibe(ctx context.Context, text string) (degrade.Result[VibeAnalysis], VibeAlert) {
	result := s.analyze(ctx, text)
	if result.Degraded {
		s.log.Warn().Str("reason", result.Reason).Msg("Emotion API unavailable, used local heuristic")
	}

	alert := DeriveAlert(result.Value)
	if alert.Type != AlertNone && s.bus != nil {
		s.bus.Publish(&events.VibeAlertData{
			AlertType: string(alert.Type),
			Intensity: alert.Intensity,
			Message:   alert.Message,
		})
	}
	return result, alert
}

func (s *Service) analyze(ctx context.Context, text string) degrade.Result[VibeAnalysis] {
	if s.analyzer != nil {
		scores, err := s.analyzer.AnalyzeEmotions(ctx, text)
		if err == nil {
			return degrade.Ok(fromRemoteScores(scores))
		}
		return degrade.Fallback(s.localHeuristic(text), err.Error())
	}
	return degrade.Fallback(s.localHeuristic(text), "emotion analyzer not configured")
}

// fromRemoteScores converts the endpoint's 0-1 scores into the VibeAnalysis
// shape.
func fromRemoteScores(scores []hume.EmotionScore) VibeAnalysis {
	emotions := make(map[string]int, len(scores))
	dominant := ""
	best := -1
	for _, sc := range scores {
		v := clamp(int(sc.Score * 100))
		emotions[strings.ToLower(sc.Name)] = v
		if v > best {
			best = v
			dominant = strings.ToLower(sc.Name)
		}
	}

	return VibeAnalysis{
		Joy:             emotions["joy"],
		Anxiety:         emotions["anxiety"],
		Confidence:      clamp(best),
		DominantEmotion: dominant,
		Emotions:        emotions,
	}
}

// localHeuristic is the deterministic keyword scorer, plus a small bounded
// jitter so repeated mock readings look alive on the dashboard.
func (s *Service) localHeuristic(text string) VibeAnalysis {
	lower := strings.ToLower(text)

	// Top-level rand is safe for concurrent requests; the service keeps no
	// generator of its own.
	joy := 20 + 12*countHits(lower, positiveKeywords) + rand.Intn(jitterBound)
	anxiety := 15 + 12*countHits(lower, negativeKeywords) + rand.Intn(jitterBound)
	joy = clamp(joy)
	anxiety = clamp(anxiety)

	// Both scores cannot be extreme at once.
	if joy+anxiety > saturationThreshold {
		scale := float64(saturationThreshold) / float64(joy+anxiety)
		joy = int(float64(joy) * scale)
		anxiety = int(float64(anxiety) * scale)
	}

	dominant := "mixed"
	switch {
	case joy-anxiety >= dominanceMargin:
		dominant = "joy"
	case anxiety-joy >= dominanceMargin:
		dominant = "anxiety"
	}

	return VibeAnalysis{
		Joy:             joy,
		Anxiety:         anxiety,
		Confidence:      fallbackConfidence,
		DominantEmotion: dominant,
		Emotions:        map[string]int{"joy": joy, "anxiety": anxiety},
	}
}

// DeriveAlert classifies a VibeAnalysis. Anxiety is checked first; each alert
// carries an intensity equal to the triggering score.
func DeriveAlert(v VibeAnalysis) VibeAlert {
	switch {
	case v.Anxiety > anxietyAlertThreshold:
		return VibeAlert{
			Type:      AlertVolatility,
			Intensity: v.Anxiety,
			Message:   fmt.Sprintf("Anxiety spiking at %d - expect volatility", v.Anxiety),
		}
	case v.Joy > joyAlertThreshold:
		return VibeAlert{
			Type:      AlertHype,
			Intensity: v.Joy,
			Message:   fmt.Sprintf("Joy running at %d - momentum building", v.Joy),
		}
	default:
		return VibeAlert{Type: AlertNone}
	}
}

func countHits(text string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			hits++
		}
	}
	return hits
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
