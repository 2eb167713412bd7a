// Package graph provides the flat wire format for positioned trees.
//
// A tree positioned by package layout is a linked structure of
// [hierarchy.Node] values. [Layout] flattens it into node and edge lists that
// serialize to JSON, travel over the HTTP API, sit in the artifact cache and
// feed every renderer.
//
// # Core Types
//
//   - [Layout]: one computed layout with its algorithm, direction and bounds
//   - [Node]: a positioned node with its footprint, depth and user data
//   - [Edge]: a parent to child link
//   - [Bounds]: the extent of all footprints, right and bottom included
//
// # Serialization
//
//	l := graph.FromTree(root, "compact-box", "LR", false)
//	data, _ := graph.MarshalLayout(l)         // Layout → []byte
//	parsed, _ := graph.UnmarshalLayout(data)  // []byte → Layout
//	graph.WriteLayoutFile(l, "layout.json")   // Layout → File
//
// # Node Metadata
//
// Meta holds every input key the layout does not interpret. Keys such as
// width, hgap or children are consumed while building the tree and do not
// reappear.
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
