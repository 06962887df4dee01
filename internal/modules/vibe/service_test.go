package vibe

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypewire/hypewire/internal/clients/hume"
	"github.com/hypewire/hypewire/internal/events"
)

type mockAnalyzer struct {
	scores []hume.EmotionScore
	err    error
}

func (m *mockAnalyzer) AnalyzeEmotions(ctx context.Context, text string) ([]hume.EmotionScore, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.scores, nil
}

func TestAnalyzeVibeRemotePath(t *testing.T) {
	analyzer := &mockAnalyzer{scores: []hume.EmotionScore{
		{Name: "Joy", Score: 0.83},
		{Name: "Anxiety", Score: 0.21},
		{Name: "Surprise", Score: 0.4},
	}}
	svc := NewService(analyzer, nil, zerolog.Nop())

	result, alert := svc.AnalyzeVibe(context.Background(), "markets going up")
	require.False(t, result.Degraded)

	v := result.Value
	assert.Equal(t, 83, v.Joy)
	assert.Equal(t, 21, v.Anxiety)
	assert.Equal(t, "joy", v.DominantEmotion)
	assert.Len(t, v.Emotions, 3)
	assert.Equal(t, AlertHype, alert.Type)
	assert.Equal(t, 83, alert.Intensity)
}

func TestAnalyzeVibeFallsBackOnError(t *testing.T) {
	svc := NewService(&mockAnalyzer{err: errors.New("503")}, nil, zerolog.Nop())

	result, _ := svc.AnalyzeVibe(context.Background(), "everything is calm")
	assert.True(t, result.Degraded)
	assert.Equal(t, "503", result.Reason)

	v := result.Value
	assert.GreaterOrEqual(t, v.Joy, 0)
	assert.LessOrEqual(t, v.Joy, 100)
	assert.GreaterOrEqual(t, v.Anxiety, 0)
	assert.LessOrEqual(t, v.Anxiety, 100)
	assert.NotEmpty(t, v.DominantEmotion)
	assert.Contains(t, v.Emotions, "joy")
	assert.Contains(t, v.Emotions, "anxiety")
}

func TestLocalHeuristicIdempotentWithinJitter(t *testing.T) {
	svc := NewService(nil, nil, zerolog.Nop())
	text := "this is going to the moon, totally bullish, pump incoming"

	a := svc.localHeuristic(text)
	b := svc.localHeuristic(text)

	// Scores differ only by the bounded jitter.
	assert.InDelta(t, a.Joy, b.Joy, float64(jitterBound-1))
	assert.InDelta(t, a.Anxiety, b.Anxiety, float64(jitterBound-1))
	assert.Greater(t, a.Joy, a.Anxiety, "positive text should read joyful")
}

func TestAnalyzeVibeConcurrentRequests(t *testing.T) {
	// The heuristic path must be safe to hit from parallel requests; the
	// race detector flags any shared generator state.
	svc := NewService(nil, nil, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				result, _ := svc.AnalyzeVibe(context.Background(), "moon pump crash panic")
				assert.GreaterOrEqual(t, result.Value.Joy, 0)
				assert.LessOrEqual(t, result.Value.Joy, 100)
			}
		}()
	}
	wg.Wait()
}

func TestLocalHeuristicSaturation(t *testing.T) {
	svc := NewService(nil, nil, zerolog.Nop())
	text := "moon bullish pump viral huge insane hype rocket breakout soaring winning excited " +
		"crash dump panic fear scam rug bearish collapse lawsuit plunge risk worried"

	for i := 0; i < 20; i++ {
		v := svc.localHeuristic(text)
		assert.LessOrEqual(t, v.Joy+v.Anxiety, saturationThreshold)
	}
}

func TestDeriveAlertThresholds(t *testing.T) {
	// Anxiety above threshold wins regardless of joy.
	alert := DeriveAlert(VibeAnalysis{Joy: 95, Anxiety: 76})
	assert.Equal(t, AlertVolatility, alert.Type)
	assert.Equal(t, 76, alert.Intensity)

	alert = DeriveAlert(VibeAnalysis{Joy: 81, Anxiety: 75})
	assert.Equal(t, AlertHype, alert.Type)
	assert.Equal(t, 81, alert.Intensity)

	alert = DeriveAlert(VibeAnalysis{Joy: 80, Anxiety: 75})
	assert.Equal(t, AlertNone, alert.Type)
	assert.Equal(t, 0, alert.Intensity)
}

func TestDeriveAlertNeverPanicsOnEitherPath(t *testing.T) {
	svc := NewService(&mockAnalyzer{scores: []hume.EmotionScore{{Name: "joy", Score: 1.4}}}, nil, zerolog.Nop())

	result, _ := svc.AnalyzeVibe(context.Background(), "clamped")
	assert.LessOrEqual(t, result.Value.Joy, 100)
	assert.NotPanics(t, func() { DeriveAlert(result.Value) })

	fallback := svc.localHeuristic("whatever text")
	assert.NotPanics(t, func() { DeriveAlert(fallback) })
}

func TestAnalyzeVibePublishesAlertEvent(t *testing.T) {
	analyzer := &mockAnalyzer{scores: []hume.EmotionScore{
		{Name: "joy", Score: 0.1},
		{Name: "anxiety", Score: 0.9},
	}}
	bus := events.NewBus()
	var got []*events.Event
	unsub := bus.Subscribe(func(e *events.Event) { got = append(got, e) })
	defer unsub()

	svc := NewService(analyzer, bus, zerolog.Nop())
	_, alert := svc.AnalyzeVibe(context.Background(), "panic everywhere")

	assert.Equal(t, AlertVolatility, alert.Type)
	require.Len(t, got, 1)
	assert.Equal(t, events.VibeAlertRaised, got[0].Type)
	data := got[0].Data.(*events.VibeAlertData)
	assert.Equal(t, 90, data.Intensity)
}
