// Package edoc defines the print-document model produced by the converter.
//
// A [Document] holds a single [Panel] sized for one of the supported paper
// types (see [LookupPaper]). Each panel lists [PrintElement] values whose
// [Options] carry absolute millimeter geometry and typography. Element order
// is page reading order.
//
// Geometry invariants: Right = Left + Width, Bottom = Top + Height,
// VCenter = Left + Width/2 and HCenter = Top + Height/2. Use [Rect.Apply] to
// set geometry so the derived fields stay consistent.
//
// # JSON Format
//
//	{
//	  "panels": [{
//	    "paperType": "A4", "width": 297, "height": 210,
//	    "printElements": [{
//	      "options": {"left": 10, "top": 10, "width": 52.92, "height": 8, ...},
//	      "printElementType": {"title": "テキスト", "type": "text"}
//	    }]
//	  }]
//	}
package edoc
