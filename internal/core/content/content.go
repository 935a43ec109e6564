package content

// Hero 首頁主視覺文案
type Hero struct {
	Title       string
	Subtitle    string
	Placeholder string
	Button      string
	Loading     string
	ChipLabel   string
	Examples    []string
}

// Feature 介紹區塊的特色卡片
type Feature struct {
	Icon    string
	Title   string
	Summary string
}

// About 關於區塊
type About struct {
	Title      string
	Headline   string
	Paragraphs []string
	Features   []Feature
}

// Step 使用步驟
type Step struct {
	Number int
	Title  string
	Detail string
}

// HowTo 使用說明區塊
type HowTo struct {
	Title    string
	Subtitle string
	Steps    []Step
}

// PlanFeature 方案功能項目
type PlanFeature struct {
	Text     string
	Included bool
}

// Plan 訂閱方案
type Plan struct {
	Badge    string
	Name     string
	Price    string
	Period   string
	Featured bool
	Features []PlanFeature
	Button   string
}

// Pricing 價格區塊
type Pricing struct {
	Title    string
	Subtitle string
	Plans    []Plan
}

// Page 首頁所有靜態內容
type Page struct {
	Hero    Hero
	About   About
	HowTo   HowTo
	Pricing Pricing
}

// ExampleIngredients 食材範例按鈕
var ExampleIngredients = []string{
	"Chicken, Rice, Tomatoes",
	"Paneer, Spinach, Cream",
	"Eggs, Bread, Cheese",
	"Pasta, Garlic, Olive Oil",
	"Salmon, Lemon, Dill",
}

func included(items ...string) []PlanFeature {
	out := make([]PlanFeature, 0, len(items))
	for _, item := range items {
		out = append(out, PlanFeature{Text: item, Included: true})
	}
	return out
}

func excluded(items ...string) []PlanFeature {
	out := make([]PlanFeature, 0, len(items))
	for _, item := range items {
		out = append(out, PlanFeature{Text: item})
	}
	return out
}

// Home 首頁內容，每次呼叫都回傳新副本
func Home() Page {
	examples := make([]string, len(ExampleIngredients))
	copy(examples, ExampleIngredients)

	return Page{
		Hero: Hero{
			Title:       "Turn Ingredients Into Delicious Recipes",
			Subtitle:    "Powered by AI - Enter your ingredients and let our smart chef create the perfect recipe for you",
			Placeholder: "Enter ingredients (e.g., chicken, rice, tomatoes)...",
			Button:      "Generate Recipe",
			Loading:     "Generating...",
			ChipLabel:   "Try:",
			Examples:    examples,
		},
		About: About{
			Title:    "About SavoraAI",
			Headline: "Revolutionizing Home Cooking with AI",
			Paragraphs: []string{
				"SavoraAI is your intelligent cooking companion that transforms the way you cook at home. " +
					"Using advanced AI technology, we help you create delicious recipes from whatever ingredients you have on hand. " +
					"No more food waste, no more boring meals!",
				"Whether you're a beginner or an experienced chef, SavoraAI adapts to your skill level, dietary preferences, " +
					"and taste preferences to provide personalized recipe recommendations that make cooking fun and accessible for everyone.",
			},
			Features: []Feature{
				{Icon: "🤖", Title: "AI-Powered", Summary: "Advanced algorithms create perfect recipes"},
				{Icon: "🎯", Title: "Personalized", Summary: "Tailored to your preferences & dietary needs"},
				{Icon: "⚡", Title: "Instant Results", Summary: "Get recipes in seconds, not hours"},
				{Icon: "🌍", Title: "Global Cuisine", Summary: "Explore flavors from around the world"},
			},
		},
		HowTo: HowTo{
			Title:    "How to Use SavoraAI",
			Subtitle: "Get started in 3 simple steps",
			Steps: []Step{
				{Number: 1, Title: "Enter Ingredients", Detail: "Type in the ingredients you have at home, or use voice input for hands-free convenience."},
				{Number: 2, Title: "Customize Preferences", Detail: "Select your cuisine type, dietary restrictions, spice level, cooking time, and more."},
				{Number: 3, Title: "Cook & Enjoy", Detail: "Follow the AI-generated recipe with step-by-step instructions and cooking tips."},
			},
		},
		Pricing: Pricing{
			Title:    "Choose Your Plan",
			Subtitle: "Perfect for home cooks of all levels",
			Plans: []Plan{
				{
					Badge:  "Free",
					Name:   "Starter",
					Price:  "$0",
					Period: "/forever",
					Features: append(
						included("10 recipes per day", "Basic recipe generation", "Standard cuisines", "Save to favorites", "Recipe history (30 days)"),
						excluded("Voice input", "AI chatbot assistance", "Advanced customization", "Meal planning")...,
					),
					Button: "Get Started",
				},
				{
					Badge:    "Most Popular",
					Name:     "Pro",
					Price:    "$9.99",
					Period:   "/month",
					Featured: true,
					Features: included(
						"Unlimited recipes", "Advanced AI recipe generation", "All global cuisines",
						"Unlimited favorites & history", "Voice input support", "AI chatbot assistance",
						"Advanced customization options", "Weekly meal planner", "Nutrition analysis", "Priority support",
					),
					Button: "Upgrade to Pro",
				},
				{
					Badge:  "Premium",
					Name:   "Chef",
					Price:  "$19.99",
					Period: "/month",
					Features: included(
						"Everything in Pro", "Recipe video tutorials", "Live cooking classes",
						"Personal chef consultation", "Custom diet plans", "Grocery list integration",
						"Family sharing (5 members)", "Early access to new features", "Ad-free experience", "24/7 premium support",
					),
					Button: "Go Premium",
				},
			},
		},
	}
}
