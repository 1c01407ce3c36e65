package style

import (
	"encoding/json"
	"os"
)

// RenderConfig holds the styling policy consumed by the display payload
// builder and passed through to the force-directed renderer. Only NodeSizeMin
// and NodeSizeMax are interpreted here; the remaining fields are display
// hints forwarded verbatim.
type RenderConfig struct {
	BackgroundColor string  `json:"backgroundColor"`
	NodeSizeMin     float64 `json:"nodeSizeMin"`
	NodeSizeMax     float64 `json:"nodeSizeMax"`
	LinkCurvature   float64 `json:"linkCurvature"`
	LinkOpacity     float64 `json:"linkOpacity"`
	LinkWidthFactor float64 `json:"linkWidthFactor"`
	ArrowLength     float64 `json:"arrowLength"`
	ParticleSpeed   float64 `json:"particleSpeed"`
	VelocityDecay   float64 `json:"velocityDecay"`
}

// DefaultConfig returns the documented default styling policy.
func DefaultConfig() RenderConfig {
	return RenderConfig{
		BackgroundColor: "#050816",
		NodeSizeMin:     4,
		NodeSizeMax:     20,
		LinkCurvature:   0.3,
		LinkOpacity:     0.8,
		LinkWidthFactor: 3.5,
		ArrowLength:     5,
		ParticleSpeed:   0.007,
		VelocityDecay:   0.25,
	}
}

// LoadConfig reads a flat JSON configuration file. A missing file yields the
// defaults without error; so does a malformed one (the styling policy must
// never prevent the engine from serving). Recognized keys override their
// default; unknown keys are ignored.
func LoadConfig(path string) RenderConfig {
	cfg := DefaultConfig()
	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	// Decode into a copy so a half-parsed file cannot zero out defaults.
	overlay := DefaultConfig()
	if err := json.Unmarshal(data, &overlay); err != nil {
		return cfg
	}
	return overlay
}
