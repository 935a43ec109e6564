package recipe

import "strings"

// 預設偏好
const (
	DefaultCuisine     = "Any"
	DefaultTaste       = "Any"
	DefaultMealType    = "Any"
	DefaultPortion     = "2-3 people"
	DefaultDietary     = "None"
	DefaultSpiceLevel  = "Medium"
	DefaultCookingTime = "Any"
)

// 表單選項
var (
	CuisineOptions     = []string{"Any", "Indian", "Italian", "Chinese", "Mexican", "Thai", "Japanese", "Mediterranean", "American", "French", "Middle Eastern"}
	TasteOptions       = []string{"Any", "Savory", "Sweet", "Spicy", "Tangy", "Mild", "Umami"}
	MealTypeOptions    = []string{"Any", "Breakfast", "Lunch", "Dinner", "Snack", "Dessert"}
	PortionOptions     = []string{"1 person", "2-3 people", "4-5 people", "6+ people"}
	DietaryOptions     = []string{"None", "Vegetarian", "Vegan", "Gluten-Free", "Dairy-Free", "Keto", "Low-Carb"}
	SpiceLevelOptions  = []string{"Mild", "Medium", "Hot", "Extra Hot"}
	CookingTimeOptions = []string{"Any", "15 mins", "30 mins", "45 mins", "1 hour", "1+ hours"}
)

// Customization 使用者送出的客製化參數
type Customization struct {
	Ingredients string `form:"ingredients" json:"ingredients"`
	Cuisine     string `form:"cuisine" json:"cuisine"`
	Taste       string `form:"taste" json:"taste"`
	MealType    string `form:"mealType" json:"mealType"`
	Portion     string `form:"portion" json:"portion"`
	Dietary     string `form:"dietary" json:"dietary"`
	SpiceLevel  string `form:"spiceLevel" json:"spiceLevel"`
	CookingTime string `form:"cookingTime" json:"cookingTime"`
}

// Filters 目前套用中的篩選條件
type Filters struct {
	Cuisine  string `json:"cuisine" bson:"cuisine"`
	Taste    string `json:"taste" bson:"taste"`
	MealType string `json:"mealType" bson:"mealType"`
	Portion  string `json:"portion" bson:"portion"`
	Dietary  string `json:"dietary" bson:"dietary"`
}

// DefaultFilters 初始篩選條件
func DefaultFilters() Filters {
	return Filters{
		Cuisine:  DefaultCuisine,
		Taste:    DefaultTaste,
		MealType: DefaultMealType,
		Portion:  DefaultPortion,
		Dietary:  DefaultDietary,
	}
}

// WithDefaults 以預設值補齊空白欄位
func (c Customization) WithDefaults() Customization {
	c.Ingredients = strings.TrimSpace(c.Ingredients)
	c.Cuisine = orDefault(c.Cuisine, DefaultCuisine)
	c.Taste = orDefault(c.Taste, DefaultTaste)
	c.MealType = orDefault(c.MealType, DefaultMealType)
	c.Portion = orDefault(c.Portion, DefaultPortion)
	c.Dietary = orDefault(c.Dietary, DefaultDietary)
	c.SpiceLevel = orDefault(c.SpiceLevel, DefaultSpiceLevel)
	c.CookingTime = orDefault(c.CookingTime, DefaultCookingTime)
	return c
}

// IngredientList 以逗號切分食材並去除空白項目
func (c Customization) IngredientList() []string {
	return SplitIngredients(c.Ingredients)
}

// Filters 對應的篩選條件
func (c Customization) Filters() Filters {
	return Filters{
		Cuisine:  c.Cuisine,
		Taste:    c.Taste,
		MealType: c.MealType,
		Portion:  c.Portion,
		Dietary:  c.Dietary,
	}
}

// SplitIngredients 以逗號切分食材
func SplitIngredients(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
