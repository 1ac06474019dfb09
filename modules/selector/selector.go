package selector

import (
	"strings"

	"mythiq-video-creator/modules/common/model"
)

// rule pairs a profile key with its keyword affinity set. Rules are
// evaluated in order; the first match wins, so animation keywords take
// priority over creative ones when a prompt contains both.
type rule struct {
	key      model.Key
	keywords []string
}

var rules = []rule{
	{model.KeyAnimation, []string{"cartoon", "anime", "animated", "character", "illustration", "drawing"}},
	{model.KeyCreative, []string{"artistic", "abstract", "surreal", "fantasy", "magical", "creative", "stylized"}},
}

// Select maps a prompt to a model key by substring keyword matching.
// Prompts matching no keyword set get the photorealistic default.
func Select(prompt string) model.Key {
	lowered := strings.ToLower(prompt)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lowered, kw) {
				return r.key
			}
		}
	}
	return model.KeyPhotorealistic
}

// Resolve applies an explicit model request when it names a real
// profile; empty, "auto" or unknown values fall back to auto-detection.
func Resolve(requested string, prompt string) model.Key {
	key := model.Key(strings.ToLower(strings.TrimSpace(requested)))
	if model.IsValidKey(key) {
		return key
	}
	return Select(prompt)
}
