package recipe

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// UnmarshalJSON 寬鬆解析：型態不符的欄位直接略過
func (s *Structured) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*s = Structured{
		Title:        flexString(fields["title"]),
		Description:  flexString(fields["description"]),
		PrepTime:     flexString(fields["prepTime"]),
		CookTime:     flexString(fields["cookTime"]),
		TotalTime:    flexString(fields["totalTime"]),
		Difficulty:   flexString(fields["difficulty"]),
		Servings:     flexString(fields["servings"]),
		Cuisine:      flexString(fields["cuisine"]),
		Ingredients:  flexList(fields["ingredients"]),
		Instructions: flexList(fields["instructions"]),
		Tips:         flexList(fields["tips"]),
		Alternatives: flexList(fields["alternatives"]),
		Nutrition:    flexNutrition(fields["nutrition"]),
	}
	return nil
}

// flexString 接受字串或數字，其他型態回傳空字串
func flexString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	case '{', '[', 'n':
		return ""
	}
	// 數字與布林值保留原始字面值
	return string(raw)
}

// flexList 接受字串陣列；單一字串視為一個項目
func flexList(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	if raw[0] == '"' {
		if s := flexString(raw); s != "" {
			return []string{s}
		}
		return nil
	}
	if raw[0] != '[' {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		var text string
		if len(item) > 0 && item[0] == '{' {
			text = describeObject(item)
		} else {
			text = flexString(item)
		}
		if text != "" {
			out = append(out, text)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// describeObject 將 {amount, unit, name} 類型的項目組成一行文字
func describeObject(raw json.RawMessage) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ""
	}

	var parts []string
	for _, key := range []string{"quantity", "amount", "unit", "name", "item", "ingredient", "step", "text", "instruction", "description"} {
		if v := flexString(fields[key]); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := flexString(fields[k]); v != "" {
			parts = append(parts, k+": "+v)
		}
	}
	return strings.Join(parts, ", ")
}

func flexNutrition(raw json.RawMessage) *NutritionSummary {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	n := &NutritionSummary{
		Calories: flexString(fields["calories"]),
		Protein:  flexString(fields["protein"]),
		Carbs:    flexString(fields["carbs"]),
		Fat:      flexString(fields["fat"]),
	}
	if n.IsEmpty() {
		return nil
	}
	return n
}
