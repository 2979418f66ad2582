package convert

import "github.com/matzehuels/pagefit/pkg/edoc"

// Stats summarizes a conversion.
type Stats struct {
	TotalElements        int     `json:"totalElements"`
	TextElements         int     `json:"textElements"`
	ImageElements        int     `json:"imageElements"`
	SkippedElements      int     `json:"skippedElements"`
	PathBasedElements    int     `json:"pathBasedElements"`
	PathNotFoundElements int     `json:"pathNotFoundElements"`
	PaperSize            string  `json:"paperSize"`
	PaperWidth           float64 `json:"paperWidth"`
	PaperHeight          float64 `json:"paperHeight"`
}

// GetStats derives statistics from a converted document and the records of
// the conversion that produced it.
func GetStats(doc *edoc.Document, records []Record) Stats {
	paper := doc.Paper()
	s := Stats{
		PaperSize:   paper.Type,
		PaperWidth:  paper.Width,
		PaperHeight: paper.Height,
	}
	for _, el := range doc.Elements() {
		s.TotalElements++
		switch {
		case el.IsText():
			s.TextElements++
		case el.IsImage():
			s.ImageElements++
		}
	}
	for _, r := range records {
		switch r.Type {
		case RecordSkippedImage:
			s.SkippedElements++
		case RecordPathBased:
			s.PathBasedElements++
		case RecordPathNotFound:
			s.PathNotFoundElements++
		}
	}
	return s
}
