package taxonomy

import "github.com/bharm16/prompt-builder-sub009/internal/model"

// DefaultCategories returns the built-in taxonomy for video-shot prompts.
// IDs are the dotted-role prefixes; ValidAttributes enumerate the roles each
// branch may emit.
func DefaultCategories() []model.TaxonomyCategory {
	return []model.TaxonomyCategory{
		{
			ID:    "camera",
			Label: "Camera",
			ValidAttributes: []string{
				"shotType", "angle", "movement", "lens", "aperture", "focus", "equipment",
			},
		},
		{
			ID:    "lighting",
			Label: "Lighting",
			ValidAttributes: []string{
				"quality", "source", "timeOfDay", "colorTemperature", "direction",
			},
		},
		{
			ID:    "technical",
			Label: "Technical",
			ValidAttributes: []string{
				"frameRate", "duration", "resolution", "aspectRatio",
			},
		},
		{
			ID:    "subject",
			Label: "Subject",
			ValidAttributes: []string{
				"identity", "appearance", "wardrobe", "count",
			},
		},
		{
			ID:    "action",
			Label: "Action",
			ValidAttributes: []string{
				"movement", "state", "gesture",
			},
		},
		{
			ID:    "environment",
			Label: "Environment",
			ValidAttributes: []string{
				"location", "weather", "timePeriod", "atmosphere",
			},
		},
		{
			ID:    "style",
			Label: "Style",
			ValidAttributes: []string{
				"aesthetic", "filmEmulation", "colorGrade", "mood",
			},
		},
		{
			ID:    "audio",
			Label: "Audio",
			ValidAttributes: []string{
				"music", "ambience",
			},
		},
	}
}

// Default builds the Store for the built-in categories. The built-in tree is
// known-valid, so construction cannot fail.
func Default() *Store {
	s, err := New(DefaultCategories())
	if err != nil {
		panic("taxonomy: built-in categories invalid: " + err.Error())
	}
	return s
}
