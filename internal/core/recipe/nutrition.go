package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Nutrient 每份營養素，保留服務回傳順序
type Nutrient struct {
	Key   string
	Value string
}

// NutrientList 以 JSON 物件形式序列化並保留鍵順序
type NutrientList []Nutrient

// NutritionDetail 營養分析服務回傳的詳細資料
type NutritionDetail struct {
	PerServing  NutrientList `json:"perServing,omitempty"`
	Benefits    []string     `json:"benefits,omitempty"`
	Tips        string       `json:"tips,omitempty"`
	HealthScore *float64     `json:"healthScore,omitempty"`
}

// IsEmpty 沒有任何可顯示的內容
func (d *NutritionDetail) IsEmpty() bool {
	return d == nil || (len(d.PerServing) == 0 && len(d.Benefits) == 0 && d.Tips == "" && d.HealthScore == nil)
}

// UnmarshalJSON 寬鬆解析營養資料
func (d *NutritionDetail) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*d = NutritionDetail{
		Benefits:    flexList(fields["benefits"]),
		HealthScore: flexNumber(fields["healthScore"]),
	}

	var perServing NutrientList
	if raw := bytes.TrimSpace(fields["perServing"]); len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &perServing); err == nil {
			d.PerServing = perServing
		}
	}

	if tips := flexString(fields["tips"]); tips != "" {
		d.Tips = tips
	} else if list := flexList(fields["tips"]); len(list) > 0 {
		d.Tips = strings.Join(list, " ")
	}
	return nil
}

// UnmarshalJSON 依序讀取物件的鍵值
func (l *NutrientList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*l = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("perServing must be an object")
	}

	var out NutrientList
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if value := flexString(raw); key != "" && value != "" {
			out = append(out, Nutrient{Key: key, Value: value})
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*l = out
	return nil
}

// MarshalJSON 依原順序輸出為物件
func (l NutrientList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(n.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(n.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// flexNumber 接受數字或數字字串
func flexNumber(raw json.RawMessage) *float64 {
	s := flexString(raw)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

// FormatNutrientLabel 將 camelCase 鍵轉為標題格式，例如 saturatedFat → Saturated Fat
func FormatNutrientLabel(key string) string {
	var b strings.Builder
	for _, r := range key {
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	words := strings.Fields(b.String())
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// FormatScore 去除多餘小數位
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
