// Package io provides JSON import for raw trees and JSON export for
// positioned ones.
//
// # JSON Input
//
// A tree is one nested object. Recognized keys are id (or name), label,
// children, width, height, hgap, vgap, preH, preV, collapsed and side; any
// other key is user data:
//
//	{
//	  "id": "root",
//	  "label": "Platform",
//	  "children": [
//	    {"id": "api", "owner": "team-a"},
//	    {"id": "web", "side": "left", "children": [{"id": "ui"}]}
//	  ]
//	}
//
// # Import
//
// Use [ImportJSON] to read a tree from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	tree, err := io.ImportJSON("tree.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	root, err := layout.Mindmap(tree, layout.MindmapOptions{})
//
// Empty input fails with [ErrEmptyTree].
//
// # Export
//
// Use [ExportJSON] or [WriteJSON] to write a positioned tree. The output
// keeps the nesting of the input, with x, y, width, height and depth on every
// node and the user data under "data".
//
// For a flat node and edge list, use package graph instead.
package io
