package synthesizer

// DefaultVoice is used whenever a requested style is not recognized.
const DefaultVoice = "narrator"

// canonicalVoices is the supported preset set.
var canonicalVoices = map[string]bool{
	"narrator":     true,
	"storyteller":  true,
	"professional": true,
	"podcast_host": true,
	"calm":         true,
	"confident":    true,
	"friendly":     true,
	"deep":         true,
}

// styleAliases maps legacy style names from older clients onto the current
// preset set.
var styleAliases = map[string]string{
	"news_anchor":    "professional",
	"calm_female":    "calm",
	"deep_narrator":  "deep",
	"casual_podcast": "podcast_host",
	"energetic":      "friendly",
}

// elevenLabsVoiceIDs maps canonical voices onto ElevenLabs voice ids.
var elevenLabsVoiceIDs = map[string]string{
	"narrator":     "21m00Tcm4TlvDq8ikWAM",
	"storyteller":  "pNInz6obpgDQGcFmaJgB",
	"professional": "EXAVITQu4vr4xnSDxMaL",
	"podcast_host": "TxGEqnHWrfWFTfGW9XjX",
	"calm":         "ThT5KcBeYPX3keUQqHPh",
	"confident":    "VR6AewLTigWG4xSOukaG",
	"friendly":     "jsCqWAovK2LkecY7zXl4",
	"deep":         "onwK4e9ZLuTAKqWW03F9",
}

// openAIVoiceNames maps canonical voices onto the fallback provider's
// built-in voices, which are a smaller set.
var openAIVoiceNames = map[string]string{
	"narrator":     "onyx",
	"storyteller":  "fable",
	"professional": "alloy",
	"podcast_host": "echo",
	"calm":         "shimmer",
	"confident":    "onyx",
	"friendly":     "nova",
	"deep":         "onyx",
}

// CanonicalStyle resolves a requested voice style: known presets pass
// through, legacy aliases map to their replacement, and anything else falls
// back to the default narrator voice. Absence of a key is not an error.
func CanonicalStyle(style string) string {
	if canonicalVoices[style] {
		return style
	}
	if mapped, ok := styleAliases[style]; ok {
		return mapped
	}
	return DefaultVoice
}
