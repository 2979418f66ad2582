package convert_test

import (
	"fmt"

	"github.com/matzehuels/pagefit/pkg/convert"
	"github.com/matzehuels/pagefit/pkg/design"
)

func ExampleConvert() {
	doc := &design.Document{Node: design.Node{
		Type:   design.TypeFrame,
		Name:   "Root",
		Width:  1024,
		Height: 724,
		Children: []*design.Node{
			{Type: design.TypeText, Name: "Title", Characters: "Hello", Width: 200, Height: 20},
		},
	}}

	res, err := convert.Convert(doc, convert.Options{PaperType: "A4"})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	el := res.Elements()[0]
	fmt.Println(res.Mode, len(res.Elements()))
	fmt.Println(el.Options.Title, el.Options.Left, el.Options.Top, el.Options.Width, el.Options.FontSize)
	// Output:
	// tree 1
	// Hello 10 10 52.92 9
}

func ExampleGetStats() {
	doc := &design.Document{
		Node: design.Node{
			Type: design.TypeFrame,
			Name: "Root",
			Children: []*design.Node{
				{Type: design.TypeText, Name: "生徒名", Characters: "山田"},
			},
		},
		TextContent: []design.TextContentItem{
			{Path: "File/Root/生徒名", Name: "生徒名", Text: "山田"},
			{Path: "File/Root/学年", Name: "学年", Text: "3"},
		},
	}

	res, err := convert.Convert(doc, convert.Options{PaperType: "B5"})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	s := res.Stats()
	fmt.Println(s.PaperSize, s.TotalElements, s.PathBasedElements, s.PathNotFoundElements)
	// Output:
	// B5 1 1 1
}
