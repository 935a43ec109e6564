package page

import (
	"savora-web/internal/core/content"
	"savora-web/internal/core/notification"
	"savora-web/internal/core/recipe"
	"savora-web/internal/core/recipecard"
)

// 聊天視窗文字
const (
	ChatGreeting    = "Hi! Ask me anything about this recipe."
	ChatPlaceholder = "Ask about substitutions, techniques, timing..."
	ChatThinking    = "Thinking..."
)

// Option 下拉選單選項
type Option struct {
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

// Field 客製化表單欄位
type Field struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Options []Option `json:"options"`
}

// CustomizationView 客製化視窗
type CustomizationView struct {
	Ingredients string  `json:"ingredients"`
	Fields      []Field `json:"fields"`
}

// ChatView 聊天視窗
type ChatView struct {
	Greeting    string        `json:"greeting"`
	Placeholder string        `json:"placeholder"`
	Messages    []ChatMessage `json:"messages"`
	Pending     bool          `json:"pending"`
	Thinking    string        `json:"thinking"`
	HasRecipe   bool          `json:"hasRecipe"`
}

// UserView 登入狀態
type UserView struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// View 首頁顯示資料，同時供模板與 JSON 端點使用
type View struct {
	SessionID     string                     `json:"sessionId"`
	Phase         Phase                      `json:"phase"`
	Ingredients   string                     `json:"ingredients"`
	Loading       bool                       `json:"loading"`
	GenerateLabel string                     `json:"generateLabel"`
	Filters       recipe.Filters             `json:"filters"`
	User          *UserView                  `json:"user,omitempty"`
	Notification  *notification.Notification `json:"notification,omitempty"`
	Card          *recipecard.View           `json:"card,omitempty"`
	Customization *CustomizationView         `json:"customization,omitempty"`
	Chatbot       *ChatView                  `json:"chatbot,omitempty"`
	Suggestions   []recipe.Suggestion        `json:"suggestions"`
	Content       content.Page               `json:"-"`
}

// NewView 由頁面狀態產生顯示資料
func NewView(s *State, user User) View {
	v := View{
		SessionID:     s.SessionID,
		Phase:         s.Phase,
		Ingredients:   s.Ingredients,
		Loading:       s.Loading,
		Filters:       s.Filters,
		Notification:  s.Notification,
		Suggestions:   recipe.Suggestions,
		Content:       content.Home(),
		GenerateLabel: generateLabel(s.Loading),
	}

	if user.Present() {
		v.User = &UserView{ID: user.ID, Email: user.Email}
	}

	if s.HasRecipe() {
		card := s.Card().View()
		v.Card = &card
	}

	if s.ShowCustomization {
		v.Customization = customizationView(s.Customization)
	}

	if s.ShowChatbot {
		v.Chatbot = &ChatView{
			Greeting:    ChatGreeting,
			Placeholder: ChatPlaceholder,
			Messages:    s.Chat,
			Pending:     s.ChatPending,
			Thinking:    ChatThinking,
			HasRecipe:   s.HasRecipe(),
		}
	}
	return v
}

func generateLabel(loading bool) string {
	if loading {
		return content.Home().Hero.Loading
	}
	return content.Home().Hero.Button
}

func customizationView(c recipe.Customization) *CustomizationView {
	c = c.WithDefaults()
	return &CustomizationView{
		Ingredients: c.Ingredients,
		Fields: []Field{
			newField("cuisine", "Cuisine Type", recipe.CuisineOptions, c.Cuisine),
			newField("taste", "Taste Preference", recipe.TasteOptions, c.Taste),
			newField("mealType", "Meal Type", recipe.MealTypeOptions, c.MealType),
			newField("portion", "Portion Size", recipe.PortionOptions, c.Portion),
			newField("dietary", "Dietary Restrictions", recipe.DietaryOptions, c.Dietary),
			newField("spiceLevel", "Spice Level", recipe.SpiceLevelOptions, c.SpiceLevel),
			newField("cookingTime", "Cooking Time", recipe.CookingTimeOptions, c.CookingTime),
		},
	}
}

func newField(name, label string, values []string, selected string) Field {
	f := Field{Name: name, Label: label, Options: make([]Option, 0, len(values))}
	for _, v := range values {
		f.Options = append(f.Options, Option{Value: v, Selected: v == selected})
	}
	return f
}
