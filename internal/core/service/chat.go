package service

import (
	"context"
	"fmt"
	"strings"

	"savora-web/internal/core/recipe"
)

type chatRequest struct {
	Question      string        `json:"question"`
	RecipeContext recipe.Recipe `json:"recipeContext"`
}

type chatResponse struct {
	Success bool   `json:"success"`
	Answer  string `json:"answer"`
	Error   string `json:"error"`
}

// Ask 以目前食譜為上下文向聊天服務提問
func (c *Client) Ask(ctx context.Context, question string, r recipe.Recipe) (string, error) {
	var resp chatResponse
	if err := c.post(ctx, "/chat", chatRequest{Question: question, RecipeContext: r}, &resp); err != nil {
		return "", err
	}

	if !resp.Success {
		return "", fmt.Errorf("%w: %s", ErrServiceFailure, resp.Error)
	}
	answer := strings.TrimSpace(resp.Answer)
	if answer == "" {
		return "", fmt.Errorf("%w: empty answer", ErrMalformedResponse)
	}
	return answer, nil
}
