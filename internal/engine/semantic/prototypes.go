package semantic

// Cluster is one semantic class: a taxonomy role plus a small fixed list of
// representative example phrases. Example embeddings are computed once per
// process and reused as the similarity reference for every classification.
type Cluster struct {
	Role     string
	Examples []string
}

// ActionClusters covers the verb-phrase classes the action tier can assign.
func ActionClusters() []Cluster {
	return []Cluster{
		{
			Role: "action.movement",
			Examples: []string{
				"walking slowly across the room",
				"running through the field",
				"jumping over the fence",
				"spinning around quickly",
				"climbing up the stairs",
				"dancing gracefully",
				"sprinting toward the door",
				"strolling along the beach",
			},
		},
		{
			Role: "action.state",
			Examples: []string{
				"sitting quietly in the corner",
				"standing still at the window",
				"lying on the grass",
				"waiting patiently",
				"resting against the wall",
				"sleeping peacefully",
				"leaning on the railing",
			},
		},
		{
			Role: "action.gesture",
			Examples: []string{
				"waving at the crowd",
				"pointing toward the horizon",
				"nodding in agreement",
				"reaching for the handle",
				"shrugging her shoulders",
				"clapping enthusiastically",
				"raising a hand",
			},
		},
	}
}

// LightingClusters covers the lighting-descriptor classes of the lighting
// tier.
func LightingClusters() []Cluster {
	return []Cluster{
		{
			Role: "lighting.quality",
			Examples: []string{
				"soft diffused light",
				"harsh direct light",
				"dramatic high contrast shadow",
				"gentle even glow",
				"moody low key shadows",
				"bright airy highlight",
			},
		},
		{
			Role: "lighting.source",
			Examples: []string{
				"neon light from the signage",
				"candlelight flicker",
				"fluorescent overhead light",
				"firelight glow",
				"moonlight through the window",
				"practical lamp light",
			},
		},
		{
			Role: "lighting.timeOfDay",
			Examples: []string{
				"golden hour light",
				"warm golden hour glow",
				"blue hour twilight",
				"midday sun",
				"dusk light fading",
				"dawn glow on the horizon",
			},
		},
		{
			Role: "lighting.colorTemperature",
			Examples: []string{
				"warm orange light",
				"cool blue light",
				"warm tungsten glow",
				"cold daylight balanced light",
				"amber warm glow",
			},
		},
	}
}
