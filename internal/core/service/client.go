package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"savora-web/internal/infrastructure/config"
	"savora-web/internal/infrastructure/metrics"
	"savora-web/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrUnavailable 無法連線到服務
	ErrUnavailable = errors.New("service unavailable")
	// ErrMalformedResponse 服務回應無法解析或缺少必要欄位
	ErrMalformedResponse = errors.New("malformed service response")
	// ErrServiceFailure 服務回傳 success=false
	ErrServiceFailure = errors.New("service reported failure")
)

// Client 食譜後端服務客戶端，涵蓋生成、營養分析與聊天
type Client struct {
	http *resty.Client
}

// NewClient 創建服務客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Services.BaseURL).
		SetTimeout(cfg.Services.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", fmt.Sprintf("%s/%s", cfg.App.Name, cfg.App.Version))

	return &Client{http: client}
}

// post 送出 JSON 請求；不論狀態碼皆嘗試解析回應內容
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	start := time.Now()
	err := c.doPost(ctx, path, body, out)
	duration := time.Since(start)

	common.LogServiceCall("recipe-backend", path, duration, err)
	metrics.ServiceCall(path, metrics.Outcome(err), duration)
	return err
}

func (c *Client) doPost(ctx context.Context, path string, body, out interface{}) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
	}

	if err := common.ParseJSONBytes(resp.Body(), out); err != nil {
		if resp.IsError() {
			return fmt.Errorf("%w: %s returned status %d", ErrUnavailable, path, resp.StatusCode())
		}
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, path, err)
	}
	return nil
}
