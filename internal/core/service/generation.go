package service

import (
	"context"
	"encoding/json"
	"errors"

	"savora-web/internal/core/recipe"
)

// GenerateRequest POST /generate 請求內容
type GenerateRequest struct {
	Ingredients []string `json:"ingredients"`
	RecipeName  string   `json:"recipeName,omitempty"`
	Cuisine     string   `json:"cuisine"`
	Taste       string   `json:"taste"`
	MealType    string   `json:"mealType"`
	Portion     string   `json:"portion"`
	Dietary     string   `json:"dietary"`
	SpiceLevel  string   `json:"spiceLevel"`
	CookingTime string   `json:"cookingTime"`
}

// NewGenerateRequest 由客製化參數建立請求
func NewGenerateRequest(c recipe.Customization) GenerateRequest {
	c = c.WithDefaults()
	return GenerateRequest{
		Ingredients: c.IngredientList(),
		Cuisine:     c.Cuisine,
		Taste:       c.Taste,
		MealType:    c.MealType,
		Portion:     c.Portion,
		Dietary:     c.Dietary,
		SpiceLevel:  c.SpiceLevel,
		CookingTime: c.CookingTime,
	}
}

// NewSuggestionRequest 輪播推薦食譜的請求，不帶食材
func NewSuggestionRequest(s recipe.Suggestion) GenerateRequest {
	c := s.Customization()
	return GenerateRequest{
		Ingredients: []string{},
		RecipeName:  s.Name,
		Cuisine:     c.Cuisine,
		Taste:       c.Taste,
		MealType:    c.MealType,
		Portion:     c.Portion,
		Dietary:     c.Dietary,
		SpiceLevel:  c.SpiceLevel,
		CookingTime: c.CookingTime,
	}
}

// GenerateResult 生成結果；Success 為 false 時 Error 為服務提供的原因
type GenerateResult struct {
	Success bool
	Recipe  recipe.Recipe
	Format  string
	Error   string
}

type generateResponse struct {
	Success bool            `json:"success"`
	Recipe  json.RawMessage `json:"recipe"`
	Format  string          `json:"format"`
	Error   string          `json:"error"`
}

// Generate 呼叫食譜生成服務；僅在連線或回應無法解析時回傳 error
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if req.Ingredients == nil {
		req.Ingredients = []string{}
	}

	var resp generateResponse
	if err := c.post(ctx, "/generate", req, &resp); err != nil {
		return nil, err
	}

	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "unknown error"
		}
		return &GenerateResult{Error: msg}, nil
	}

	format := resp.Format
	if format == "" {
		format = "text"
	}

	parsed, err := recipe.Parse(resp.Recipe, format)
	if err != nil {
		if errors.Is(err, recipe.ErrEmptyRecipe) {
			return &GenerateResult{Error: err.Error()}, nil
		}
		return nil, err
	}

	return &GenerateResult{
		Success: true,
		Recipe:  parsed,
		Format:  format,
	}, nil
}
