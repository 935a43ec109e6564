package recipecard

import (
	"savora-web/internal/core/recipe"
)

// NutritionState 營養面板狀態，隨顯示中的食譜重置
type NutritionState struct {
	Open    bool                    `json:"open"`
	Loading bool                    `json:"loading"`
	Detail  *recipe.NutritionDetail `json:"detail,omitempty"`
	Seq     uint64                  `json:"seq"`
}

// Begin 開始新的查詢並回傳序號
func (s *NutritionState) Begin() uint64 {
	s.Seq++
	s.Open = true
	s.Loading = true
	s.Detail = nil
	return s.Seq
}

// Complete 寫入查詢結果；序號不是最新時回傳 false
func (s *NutritionState) Complete(seq uint64, detail *recipe.NutritionDetail) bool {
	if seq != s.Seq {
		return false
	}
	s.Loading = false
	s.Detail = detail
	return true
}

// Fail 查詢失敗，面板保持開啟並顯示佔位文字
func (s *NutritionState) Fail(seq uint64) bool {
	return s.Complete(seq, nil)
}

// Close 關閉面板，不影響進行中的查詢
func (s *NutritionState) Close() {
	s.Open = false
}

// Reset 清除面板，用於更換食譜
func (s *NutritionState) Reset() {
	seq := s.Seq
	*s = NutritionState{Seq: seq + 1}
}

// Tile 每份營養素方塊
type Tile struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func (t Tile) String() string {
	return t.Label + ": " + t.Value
}

// PanelView 營養面板顯示資料
type PanelView struct {
	Tiles       []Tile   `json:"tiles,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Benefits    []string `json:"benefits,omitempty"`
	Tip         string   `json:"tip,omitempty"`
	HealthScore string   `json:"healthScore,omitempty"`
}

// View 面板顯示資料，未開啟時為 nil
func (s NutritionState) View() *PanelView {
	if !s.Open {
		return nil
	}

	p := &PanelView{}
	d := s.Detail
	if d.IsEmpty() {
		p.Placeholder = PlaceholderEmpty
		if s.Loading {
			p.Placeholder = PlaceholderLoading
		}
		return p
	}

	for _, n := range d.PerServing {
		p.Tiles = append(p.Tiles, Tile{Label: recipe.FormatNutrientLabel(n.Key), Value: n.Value})
	}
	if len(d.Benefits) > 0 {
		p.Benefits = d.Benefits
	}
	p.Tip = d.Tips
	// 分數為 0 視同未提供
	if d.HealthScore != nil && *d.HealthScore != 0 {
		p.HealthScore = recipe.FormatScore(*d.HealthScore) + "/10"
	}
	return p
}
