package estimate

// DefaultRules returns the built-in anchor table for the contract layout
// the converter was first written for. Callers get a fresh copy.
func DefaultRules() *Rules {
	return &Rules{
		Rules: []Rule{
			{Name: "staff", Any: []string{"説明担当者", "TOMAS", "トーマス"}, X: 200, Y: 15},
			{Name: "title", Any: []string{"指導料について", "事前説明書"}, X: 50, Y: 50},
			{Name: "legal", Any: []string{"特定商取引法"}, X: 50, Y: 75},
			{Name: "contractor", Any: []string{"ご契約者"}, X: 40, Y: 100},
			{Name: "date", All: []string{"年", "月", "日"}, X: 120, Y: 100},
			{Name: "student-kana", Any: []string{"生徒カナ"}, X: 40, Y: 140},
			{Name: "student-name", Any: []string{"生徒名"}, X: 40, Y: 170},
			{Name: "grade", Any: []string{"学年"}, X: 200, Y: 170},
			{Name: "contract-kind", All: []string{"新規契約", "追加契約"}, X: 40, Y: 210},
			{Name: "contract-note", Any: []string{"新規契約及び追加契約の場合"}, X: 150, Y: 210},
			{Name: "course", Any: []string{"受講内容"}, X: 40, Y: 240},
			{Name: "fees", Any: []string{"費用"}, X: 40, Y: 350},
		},
		Groups: GroupRules{
			Segment: "Groups",
			X:       300,
			Rules: []Rule{
				{Name: "cooling-off", Any: []string{"クーリング・オフ"}, Y: 120},
				{Name: "cancellation", Any: []string{"中途解除"}, Y: 160},
				{Name: "payment", Any: []string{"支払方法", "お支払い方法"}, Y: 200},
				{Name: "amendment", Any: []string{"変更契約"}, Y: 240},
				{Name: "other", Any: []string{"その他"}, Y: 280},
				{Name: "installments", Any: []string{"第1回目", "第2回目"}, Y: 320},
				{Name: "transfer", Any: []string{"振替", "内訳"}, Y: 360},
			},
			Overflow: Slots{Base: 120, Step: 20, Buckets: 15},
		},
		LongText: LongText{
			X:         40,
			MinHeight: 40,
			Slots:     Slots{Base: 400, Step: 25, Buckets: 8},
		},
		Fallback: Fallback{
			Buckets: 10,
			X:       40,
			XStep:   15,
			XCycle:  3,
			Y:       300,
			YStep:   20,
		},
		Bounds: Bounds{MinX: 20, MaxX: 180, MinY: 20, MaxY: 280},
	}
}
