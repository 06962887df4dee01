package briefing

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypewire/hypewire/internal/clients/elevenlabs"
	"github.com/hypewire/hypewire/internal/clients/gemini"
	"github.com/hypewire/hypewire/internal/domain"
	"github.com/hypewire/hypewire/internal/events"
	"github.com/hypewire/hypewire/internal/modules/vibe"
)

type mockGenerator struct {
	response string
	err      error
	lastOpts gemini.GenerateOptions
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string, opts gemini.GenerateOptions) (string, error) {
	m.lastOpts = opts
	return m.response, m.err
}

type mockSynthesizer struct {
	result *elevenlabs.SynthesisResult
	err    error
	text   string
}

func (m *mockSynthesizer) Synthesize(ctx context.Context, text, voiceID, modelID string) (*elevenlabs.SynthesisResult, error) {
	m.text = text
	if m.err != nil {
		return nil, m.err
	}
	res := *m.result
	res.Voice = voiceID
	return &res, nil
}

func sampleMarkets() []MarketBriefingInput {
	return []MarketBriefingInput{
		{Topic: "AI Robots", Momentum: 94, Change24h: 12.5, Volume: "2.4M", HypeScore: 91},
		{Topic: "Celebrity Feud", Momentum: 61, Change24h: -3.2, Volume: "890K", HypeScore: 55},
		{Topic: "Sports Upset", Momentum: 78, Change24h: 5.1, Volume: "1.1M", HypeScore: 72},
	}
}

func TestGenerateMarketStrategyParsesModelOutput(t *testing.T) {
	gen := &mockGenerator{response: `{"summary":"Strong move.","momentumDirection":"rising","recommendedDuration":"30m","rationale":"Fresh spike.","riskLevel":"high"}`}
	svc := NewService(gen, nil, nil, zerolog.Nop())

	result := svc.GenerateMarketStrategy(context.Background(), "AI Robots", nil, 94, nil)
	require.False(t, result.Degraded)
	assert.Equal(t, "rising", result.Value.MomentumDirection)
	assert.Equal(t, domain.Duration30m, result.Value.RecommendedDuration)
	assert.Equal(t, "high", result.Value.RiskLevel)
	assert.True(t, gen.lastOpts.JSONResponse)
	assert.InDelta(t, strategyTemperature, gen.lastOpts.Temperature, 0.001)
}

func TestGenerateMarketStrategyFallbackNeverErrors(t *testing.T) {
	gen := &mockGenerator{err: errors.New("api down")}
	svc := NewService(gen, nil, nil, zerolog.Nop())

	result := svc.GenerateMarketStrategy(context.Background(), "Celebrity Feud", nil, 82, nil)
	require.True(t, result.Degraded)

	strategy := result.Value
	assert.Contains(t, strategy.Summary, "Celebrity Feud")
	assert.Equal(t, "rising", strategy.MomentumDirection)
	assert.Equal(t, domain.Duration30m, strategy.RecommendedDuration)
	assert.Equal(t, "high", strategy.RiskLevel)
	assert.True(t, strategy.RecommendedDuration.Valid())
}

func TestGenerateMarketStrategyFallbackUsesVibe(t *testing.T) {
	gen := &mockGenerator{response: "not json at all"}
	svc := NewService(gen, nil, nil, zerolog.Nop())

	anxious := &vibe.VibeAnalysis{Joy: 10, Anxiety: 90}
	result := svc.GenerateMarketStrategy(context.Background(), "Rug Season", nil, 50, anxious)
	require.True(t, result.Degraded)
	assert.Equal(t, "high", result.Value.RiskLevel)
}

func TestGenerateLiveHypeBriefingSuccess(t *testing.T) {
	gen := &mockGenerator{response: "Hold on to your hats, AI Robots is ripping higher today."}
	synth := &mockSynthesizer{result: &elevenlabs.SynthesisResult{
		Audio:       []byte("mp3-bytes"),
		ContentType: "audio/mpeg",
		Model:       elevenlabs.ModelFlash,
	}}
	bus := events.NewBus()
	var published []*events.Event
	unsub := bus.Subscribe(func(e *events.Event) { published = append(published, e) })
	defer unsub()

	svc := NewService(gen, synth, bus, zerolog.Nop())
	result, err := svc.GenerateLiveHypeBriefing(context.Background(), sampleMarkets(), "adam")
	require.NoError(t, err)

	assert.Equal(t, gen.response, result.Script)
	assert.Equal(t, 11, result.WordCount)
	assert.InDelta(t, 4.4, result.EstimatedDuration, 0.001)
	assert.Equal(t, "adam", result.Voice)
	assert.Equal(t, elevenlabs.ModelFlash, result.Model)

	wantB64 := base64.StdEncoding.EncodeToString([]byte("mp3-bytes"))
	assert.Equal(t, wantB64, result.AudioBase64)
	assert.Equal(t, "data:audio/mpeg;base64,"+wantB64, result.AudioURL)

	require.Len(t, published, 1)
	assert.Equal(t, events.BriefingGenerated, published[0].Type)
}

func TestGenerateLiveHypeBriefingScriptFallback(t *testing.T) {
	gen := &mockGenerator{err: errors.New("quota")}
	synth := &mockSynthesizer{result: &elevenlabs.SynthesisResult{
		Audio:       []byte("audio"),
		ContentType: "audio/mpeg",
		Model:       elevenlabs.ModelTurbo,
	}}

	svc := NewService(gen, synth, nil, zerolog.Nop())
	result, err := svc.GenerateLiveHypeBriefing(context.Background(), sampleMarkets(), "")
	require.NoError(t, err)

	// Templated script names the top markets by momentum with their moves.
	assert.Contains(t, result.Script, "AI Robots")
	assert.Contains(t, result.Script, "Sports Upset")
	assert.Contains(t, result.Script, "+12.5 percent")
	assert.Equal(t, DefaultVoice, result.Voice)
	assert.Equal(t, len(strings.Fields(result.Script)), result.WordCount)
}

func TestGenerateLiveHypeBriefingSynthesisFailureSurfaces(t *testing.T) {
	gen := &mockGenerator{response: "a script"}
	synth := &mockSynthesizer{err: errors.New("hard synthesis failure")}

	svc := NewService(gen, synth, nil, zerolog.Nop())
	_, err := svc.GenerateLiveHypeBriefing(context.Background(), sampleMarkets(), "rachel")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "briefing audio unavailable")
}

func TestNewScriptDurationMath(t *testing.T) {
	script := NewScript(strings.Repeat("word ", 150))
	assert.Equal(t, 150, script.WordCount)
	assert.InDelta(t, 60.0, script.EstimatedDuration, 0.001)
}

func TestVoiceTableCanonical(t *testing.T) {
	opts := VoiceOptions()
	require.Len(t, opts, 5)

	names := make([]string, len(opts))
	for i, v := range opts {
		names[i] = v.Name
		assert.NotEmpty(t, v.ID)
		assert.NotEmpty(t, v.Description)
	}
	assert.Equal(t, []string{"rachel", "adam", "antoni", "bella", "josh"}, names)

	assert.Equal(t, "21m00Tcm4TlvDq8ikWAM", ResolveVoice("rachel").ID)
	assert.Equal(t, DefaultVoice, ResolveVoice("").Name)
	assert.Equal(t, DefaultVoice, ResolveVoice("unknown-voice").Name)
}
