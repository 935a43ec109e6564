package recipe

// Suggestion 輪播中的推薦食譜
type Suggestion struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Cuisine     string `json:"cuisine"`
	Time        string `json:"time"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
}

// Suggestions 輪播內容
var Suggestions = []Suggestion{
	{ID: "butter-chicken", Name: "Butter Chicken", Cuisine: "Indian", Time: "45 mins", Description: "Creamy tomato curry with tender chicken", Emoji: "🍛"},
	{ID: "pasta-carbonara", Name: "Pasta Carbonara", Cuisine: "Italian", Time: "25 mins", Description: "Silky egg and pecorino sauce with crispy pancetta", Emoji: "🍝"},
	{ID: "kung-pao-chicken", Name: "Kung Pao Chicken", Cuisine: "Chinese", Time: "30 mins", Description: "Sweet, spicy and nutty stir-fry", Emoji: "🥡"},
	{ID: "chicken-tacos", Name: "Chicken Tacos", Cuisine: "Mexican", Time: "30 mins", Description: "Charred tortillas with zesty lime chicken", Emoji: "🌮"},
	{ID: "pad-thai", Name: "Pad Thai", Cuisine: "Thai", Time: "35 mins", Description: "Tamarind rice noodles with peanuts", Emoji: "🍜"},
	{ID: "chicken-teriyaki", Name: "Chicken Teriyaki", Cuisine: "Japanese", Time: "30 mins", Description: "Glazed chicken with a glossy soy glaze", Emoji: "🍱"},
	{ID: "greek-salad", Name: "Greek Salad", Cuisine: "Mediterranean", Time: "15 mins", Description: "Crisp vegetables, olives and feta", Emoji: "🥗"},
	{ID: "palak-paneer", Name: "Palak Paneer", Cuisine: "Indian", Time: "40 mins", Description: "Spiced spinach gravy with soft paneer", Emoji: "🥬"},
}

// FindSuggestion 依 ID 查找推薦食譜
func FindSuggestion(id string) (Suggestion, bool) {
	for _, s := range Suggestions {
		if s.ID == id {
			return s, true
		}
	}
	return Suggestion{}, false
}

// Customization 點擊輪播時使用的固定參數
func (s Suggestion) Customization() Customization {
	return Customization{
		Ingredients: s.Name,
		Cuisine:     s.Cuisine,
		Taste:       DefaultTaste,
		MealType:    DefaultMealType,
		Portion:     DefaultPortion,
		Dietary:     DefaultDietary,
		SpiceLevel:  DefaultSpiceLevel,
		CookingTime: s.Time,
	}
}
