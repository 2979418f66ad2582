// Package design models the decoded design-tool document consumed by the
// converter.
//
// A [Document] is a tree of [Node] values (frames, text, shapes and images)
// with geometry in source pixels, optionally accompanied by a flat list of
// [TextContentItem] entries that locate text by slash-delimited path. When
// the list is present the converter runs in path-indexed mode; otherwise it
// walks the tree directly.
//
// The package only decodes and describes documents. It never parses the
// design tool's native binary format.
package design
