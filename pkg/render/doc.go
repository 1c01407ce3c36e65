// Package render converts graphs to Graphviz DOT and rasterizes them.
//
// Nodes are filled with their community color and sized by influence, edges
// are colored by relationship type. Rendering goes through the embedded
// Graphviz engine, so no external binaries are needed.
package render
