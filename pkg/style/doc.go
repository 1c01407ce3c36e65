// Package style maps a graph snapshot with analytics to visualization
// primitives: node sizes interpolated from influence, community and category
// colors from fixed palettes, relationship-typed link colors, and
// deterministic hover tooltips.
//
// The styling policy is a [RenderConfig] loaded from a flat JSON file with
// documented defaults; a missing or malformed file never fails. Payload
// construction through [BuildPayload] is a pure read of the graph.
package style
