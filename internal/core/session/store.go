package session

import (
	"context"
	"errors"
)

// ErrNotFound 找不到 session 或已過期
var ErrNotFound = errors.New("session not found")

// UpdateFunc 接收目前內容（不存在時為 nil）並回傳新內容
type UpdateFunc func(current []byte) ([]byte, error)

// Store 頁面狀態儲存，Update 對同一個 key 為原子操作
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
