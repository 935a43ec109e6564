package recipecard

import (
	"savora-web/internal/core/recipe"
)

// Mode 顯示模式
type Mode string

const (
	ModeStructured Mode = "structured"
	ModeText       Mode = "text"
)

// 顯示文字
const (
	DefaultTitle       = "Delicious Recipe"
	LabelNutrition     = "Nutrition Info"
	LabelLoading       = "Loading..."
	PlaceholderLoading = "Analyzing nutrition..."
	PlaceholderEmpty   = "No nutrition data available"
)

// ModeFromFormat 服務回傳 format 為 json 時使用結構化模式
func ModeFromFormat(format string) Mode {
	if format == "json" {
		return ModeStructured
	}
	return ModeText
}

// Card 食譜卡片的輸入
type Card struct {
	Recipe         recipe.Recipe
	Mode           Mode
	ActionsVisible bool
	Nutrition      NutritionState
}

// NewCard 建立預設顯示操作列的卡片
func NewCard(r recipe.Recipe, mode Mode) Card {
	return Card{Recipe: r, Mode: mode, ActionsVisible: true}
}

// Badge 標題下方的資訊標籤
type Badge struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
}

// Actions 操作列
type Actions struct {
	NutritionLabel    string `json:"nutritionLabel"`
	NutritionDisabled bool   `json:"nutritionDisabled"`
}

// View 卡片的顯示資料，選填區塊為空時為 nil；食材與步驟在模板中固定顯示
type View struct {
	Structured   bool       `json:"structured"`
	Title        string     `json:"title,omitempty"`
	Description  string     `json:"description,omitempty"`
	Meta         []Badge    `json:"meta,omitempty"`
	Ingredients  []string   `json:"ingredients,omitempty"`
	Instructions []string   `json:"instructions,omitempty"`
	Tips         []string   `json:"tips,omitempty"`
	Summary      []string   `json:"summary,omitempty"`
	Alternatives []string   `json:"alternatives,omitempty"`
	Text         string     `json:"text,omitempty"`
	Actions      *Actions   `json:"actions,omitempty"`
	Nutrition    *PanelView `json:"nutrition,omitempty"`
}

// View 產生卡片顯示資料
func (c Card) View() View {
	var v View
	if c.Mode == ModeStructured && c.Recipe.IsStructured() {
		v = structuredView(c.Recipe.Structured)
	} else {
		v = View{Text: c.Recipe.DisplayText()}
	}

	if c.ActionsVisible {
		v.Actions = &Actions{NutritionLabel: LabelNutrition}
		if c.Nutrition.Loading {
			v.Actions.NutritionLabel = LabelLoading
			v.Actions.NutritionDisabled = true
		}
	}
	v.Nutrition = c.Nutrition.View()
	return v
}

func structuredView(s *recipe.Structured) View {
	v := View{
		Structured:   true,
		Title:        s.Title,
		Description:  s.Description,
		Ingredients:  nonEmpty(s.Ingredients),
		Instructions: nonEmpty(s.Instructions),
		Tips:         nonEmpty(s.Tips),
		Alternatives: nonEmpty(s.Alternatives),
	}
	if v.Title == "" {
		v.Title = DefaultTitle
	}

	if s.PrepTime != "" {
		v.Meta = append(v.Meta, Badge{Icon: "⏱️", Text: "Prep: " + s.PrepTime})
	}
	if s.CookTime != "" {
		v.Meta = append(v.Meta, Badge{Icon: "🔥", Text: "Cook: " + s.CookTime})
	}
	if s.Difficulty != "" {
		v.Meta = append(v.Meta, Badge{Icon: "📊", Text: s.Difficulty})
	}
	if s.Servings != "" {
		v.Meta = append(v.Meta, Badge{Icon: "👥", Text: s.Servings})
	}

	if n := s.Nutrition; !n.IsEmpty() {
		for _, item := range []struct{ value, unit string }{
			{n.Calories, "cal"},
			{n.Protein, "protein"},
			{n.Carbs, "carbs"},
			{n.Fat, "fat"},
		} {
			if item.value != "" {
				v.Summary = append(v.Summary, item.value+" "+item.unit)
			}
		}
	}
	return v
}

func nonEmpty(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	return items
}
