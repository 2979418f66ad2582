// Package convert assembles print documents from design documents.
//
// # Modes
//
// [Convert] picks one of two strategies per document:
//
//   - Path-indexed: when the document carries a textContent list, every item
//     is resolved against a path index of the node tree, anchored by an
//     [estimate.Anchorer] and placed without overlapping earlier items.
//     Items whose path matches no node are recorded as PATH_NOT_FOUND and
//     left out.
//   - Tree-walk: otherwise the node tree is flowed from the root and every
//     text, image and shape node is materialized in document order.
//     Decorative images are recorded as SKIPPED_IMAGE and left out.
//
// # Records
//
// Alongside the document, [Result.Records] lists one [Record] per handled
// node or text item in processing order. Records are diagnostics for
// reports and UIs; [GetStats] summarizes them together with the document.
//
// # Determinism
//
// A conversion keeps no state between calls and uses no clock or random
// source, so converting the same input twice yields byte-identical JSON.
package convert
