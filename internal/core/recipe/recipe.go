package recipe

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"savora-web/internal/pkg/common"
)

// ErrEmptyRecipe 服務回傳成功但沒有食譜內容
var ErrEmptyRecipe = errors.New("empty recipe in response")

// Kind 食譜內容的型態
type Kind string

const (
	KindText       Kind = "text"
	KindStructured Kind = "structured"
)

// Recipe 目前顯示的食譜，型態在解析時決定一次
type Recipe struct {
	Kind       Kind
	Text       string
	Structured *Structured
}

// Structured 結構化食譜，欄位皆可缺省
type Structured struct {
	Title        string            `json:"title,omitempty" bson:"title,omitempty"`
	Description  string            `json:"description,omitempty" bson:"description,omitempty"`
	PrepTime     string            `json:"prepTime,omitempty" bson:"prepTime,omitempty"`
	CookTime     string            `json:"cookTime,omitempty" bson:"cookTime,omitempty"`
	TotalTime    string            `json:"totalTime,omitempty" bson:"totalTime,omitempty"`
	Difficulty   string            `json:"difficulty,omitempty" bson:"difficulty,omitempty"`
	Servings     string            `json:"servings,omitempty" bson:"servings,omitempty"`
	Cuisine      string            `json:"cuisine,omitempty" bson:"cuisine,omitempty"`
	Ingredients  []string          `json:"ingredients,omitempty" bson:"ingredients,omitempty"`
	Instructions []string          `json:"instructions,omitempty" bson:"instructions,omitempty"`
	Tips         []string          `json:"tips,omitempty" bson:"tips,omitempty"`
	Nutrition    *NutritionSummary `json:"nutrition,omitempty" bson:"nutrition,omitempty"`
	Alternatives []string          `json:"alternatives,omitempty" bson:"alternatives,omitempty"`
}

// NutritionSummary 食譜內附的營養概要
type NutritionSummary struct {
	Calories string `json:"calories,omitempty" bson:"calories,omitempty"`
	Protein  string `json:"protein,omitempty" bson:"protein,omitempty"`
	Carbs    string `json:"carbs,omitempty" bson:"carbs,omitempty"`
	Fat      string `json:"fat,omitempty" bson:"fat,omitempty"`
}

// IsEmpty 所有欄位皆為空
func (n *NutritionSummary) IsEmpty() bool {
	return n == nil || (n.Calories == "" && n.Protein == "" && n.Carbs == "" && n.Fat == "")
}

// NewText 建立文字食譜
func NewText(text string) Recipe {
	return Recipe{Kind: KindText, Text: text}
}

// NewStructured 建立結構化食譜
func NewStructured(s *Structured) Recipe {
	return Recipe{Kind: KindStructured, Structured: s}
}

// IsZero 沒有任何食譜
func (r Recipe) IsZero() bool {
	switch r.Kind {
	case KindText:
		return r.Text == ""
	case KindStructured:
		return r.Structured == nil
	}
	return true
}

// IsStructured 是否為結構化食譜
func (r Recipe) IsStructured() bool {
	return r.Kind == KindStructured && r.Structured != nil
}

// Title 食譜名稱，文字食譜回傳空字串
func (r Recipe) Title() string {
	if r.IsStructured() {
		return r.Structured.Title
	}
	return ""
}

// DisplayText 文字模式下顯示的內容
func (r Recipe) DisplayText() string {
	if r.IsStructured() {
		text, err := common.ToIndentedJSON(r.Structured)
		if err != nil {
			return ""
		}
		return text
	}
	return r.Text
}

// Snapshot 寫入資料庫的食譜快照
func (r Recipe) Snapshot() interface{} {
	if r.IsStructured() {
		return r.Structured
	}
	return r.Text
}

// Parse 解析生成服務回傳的 recipe 欄位
func Parse(raw json.RawMessage, format string) (Recipe, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Recipe{}, ErrEmptyRecipe
	}

	switch trimmed[0] {
	case '{':
		var s Structured
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Recipe{}, fmt.Errorf("failed to parse structured recipe: %w", err)
		}
		return NewStructured(&s), nil
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return Recipe{}, fmt.Errorf("failed to parse recipe text: %w", err)
		}
		if common.IsBlank(text) {
			return Recipe{}, ErrEmptyRecipe
		}
		if format == "json" {
			if s, ok := parseEmbedded(text); ok {
				return NewStructured(s), nil
			}
		}
		return NewText(text), nil
	}

	// 陣列、數字、布林值轉為縮排 JSON 文字
	var value interface{}
	if err := common.ParseJSONBytes(trimmed, &value); err != nil {
		return Recipe{}, fmt.Errorf("failed to parse recipe: %w", err)
	}
	text, err := common.ToIndentedJSON(value)
	if err != nil {
		return Recipe{}, fmt.Errorf("failed to serialize recipe: %w", err)
	}
	return NewText(text), nil
}

func parseEmbedded(text string) (*Structured, bool) {
	obj, ok := common.ExtractJSONObject(text)
	if !ok {
		return nil, false
	}
	var s Structured
	if err := common.ParseJSON(obj, &s); err != nil {
		return nil, false
	}
	// 沒有對上任何主要欄位時保留原文
	if !s.hasContent() {
		return nil, false
	}
	return &s, true
}

func (s *Structured) hasContent() bool {
	return s.Title != "" || len(s.Ingredients) > 0 || len(s.Instructions) > 0
}

// MarshalJSON 文字食譜輸出字串，結構化食譜輸出物件
func (r Recipe) MarshalJSON() ([]byte, error) {
	switch {
	case r.IsStructured():
		return json.Marshal(r.Structured)
	case r.Kind == KindText:
		return json.Marshal(r.Text)
	}
	return []byte("null"), nil
}

// UnmarshalJSON 由 JSON 形狀還原食譜型態
func (r *Recipe) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = Recipe{}
		return nil
	}
	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*r = NewText(text)
		return nil
	}
	var s Structured
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return err
	}
	*r = NewStructured(&s)
	return nil
}
