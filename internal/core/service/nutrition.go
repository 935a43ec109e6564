package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"savora-web/internal/core/recipe"
)

type nutritionRequest struct {
	Recipe recipe.Recipe `json:"recipe"`
}

type nutritionResponse struct {
	Success   bool            `json:"success"`
	Nutrition json.RawMessage `json:"nutrition"`
	Error     string          `json:"error"`
}

// AnalyzeNutrition 將整份食譜送往營養分析服務，每次呼叫都會發出新請求
func (c *Client) AnalyzeNutrition(ctx context.Context, r recipe.Recipe) (*recipe.NutritionDetail, error) {
	var resp nutritionResponse
	if err := c.post(ctx, "/nutrition", nutritionRequest{Recipe: r}, &resp); err != nil {
		return nil, err
	}

	if !resp.Success {
		return nil, fmt.Errorf("%w: %s", ErrServiceFailure, resp.Error)
	}

	raw := bytes.TrimSpace(resp.Nutrition)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("%w: missing nutrition payload", ErrMalformedResponse)
	}

	var detail recipe.NutritionDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &detail, nil
}
