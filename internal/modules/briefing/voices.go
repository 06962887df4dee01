package briefing

// VoiceOption is one selectable narration voice. This table is the single
// source of truth for voice and synthesis-model configuration.
type VoiceOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DefaultVoice is used when the caller does not pick one.
const DefaultVoice = "rachel"

var voiceOptions = []VoiceOption{
	{ID: "21m00Tcm4TlvDq8ikWAM", Name: "rachel", Description: "Calm, composed market anchor"},
	{ID: "pNInz6obpgDQGcFmaJgB", Name: "adam", Description: "Deep, urgent breaking-news energy"},
	{ID: "ErXwobaYiN019PkySvjV", Name: "antoni", Description: "Smooth late-night wrap-up"},
	{ID: "EXAVITQu4vr4xnSDxMaL", Name: "bella", Description: "Bright, fast-paced hype caster"},
	{ID: "TxGEqnHWrfWFTfGW9XjX", Name: "josh", Description: "Laid-back analyst commentary"},
}

// VoiceOptions returns the selectable voices.
func VoiceOptions() []VoiceOption {
	out := make([]VoiceOption, len(voiceOptions))
	copy(out, voiceOptions)
	return out
}

// ResolveVoice maps a voice name to its option, falling back to the default
// for unknown or empty names.
func ResolveVoice(name string) VoiceOption {
	for _, v := range voiceOptions {
		if v.Name == name {
			return v
		}
	}
	return ResolveVoice(DefaultVoice)
}
