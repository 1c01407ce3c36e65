package style

import "strings"

// categoryColors maps entity categories to node accent colors.
// Lookup is case-insensitive on the trimmed category name.
var categoryColors = map[string]string{
	"ai lab":           "#a855f7", // Purple
	"ai":               "#a855f7",
	"cloud":            "#22c55e", // Green
	"cloud & software": "#06b6d4", // Cyan
	"cloud & ai":       "#3b82f6", // Blue
	"gpu hardware":     "#f97316", // Orange
	"hardware":         "#f97316",
	"cpu / foundry":    "#ea580c", // Deep orange
	"vc":               "#eab308", // Gold
	"investment":       "#eab308",
	"startup":          "#ec4899", // Pink
	"robotics":         "#8b5cf6", // Violet
	"ai cloud":         "#14b8a6", // Teal
	"services":         "#10b981", // Emerald
}

// communityPalette is the fixed ordered palette for cluster coloring.
// Community IDs wrap modulo the palette length.
var communityPalette = []string{
	"#38bdf8", // Sky blue
	"#a5b4fc", // Indigo
	"#f97316", // Orange
	"#22c55e", // Green
	"#fb7185", // Rose
	"#eab308", // Yellow
	"#2dd4bf", // Teal
	"#f9a8d4", // Pink
	"#818cf8", // Blue-violet
	"#34d399", // Emerald
}

// edgeColors maps relationship types to link colors.
// Lookup is case-insensitive on the trimmed type name.
var edgeColors = map[string]string{
	"hardware":    "rgba(249, 115, 22, 0.95)",  // Orange
	"software":    "rgba(59, 130, 246, 0.95)",  // Blue
	"investment":  "rgba(234, 179, 8, 0.98)",   // Gold
	"services":    "rgba(34, 197, 94, 0.95)",   // Green
	"cloud":       "rgba(56, 189, 248, 0.95)",  // Cyan
	"vc":          "rgba(236, 72, 153, 0.95)",  // Pink
	"research":    "rgba(129, 140, 248, 0.98)", // Indigo
	"partnership": "rgba(244, 114, 182, 0.95)", // Rose
	"supply":      "rgba(96, 165, 250, 0.95)",  // Soft blue
	"other":       "rgba(148, 163, 184, 0.9)",  // Slate
	"unknown":     "rgba(148, 163, 184, 0.9)",  // Slate
}

// Default colors for unmapped categories and relationship types.
const (
	defaultNodeColor = "#38bdf8"
	defaultEdgeColor = "rgba(148, 163, 184, 0.8)"
)

// CategoryColor returns the accent color for a node category, or the default
// node color when the category is empty or unmapped.
func CategoryColor(category string) string {
	if category == "" {
		return defaultNodeColor
	}
	if c, ok := categoryColors[strings.ToLower(strings.TrimSpace(category))]; ok {
		return c
	}
	return defaultNodeColor
}

// CommunityColor returns the palette color for a community ID, wrapping
// modulo the palette length. A nil community falls back to the first palette
// entry.
func CommunityColor(community *int) string {
	if community == nil {
		return communityPalette[0]
	}
	idx := *community % len(communityPalette)
	if idx < 0 {
		idx += len(communityPalette)
	}
	return communityPalette[idx]
}

// EdgeColor returns the link color for a relationship type, or the default
// slate for empty or unmapped types.
func EdgeColor(relationshipType string) string {
	if relationshipType == "" {
		return defaultEdgeColor
	}
	if c, ok := edgeColors[strings.ToLower(strings.TrimSpace(relationshipType))]; ok {
		return c
	}
	return defaultEdgeColor
}
