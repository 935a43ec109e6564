package persistence

import (
	"context"
	"errors"

	"savora-web/internal/core/recipe"
)

// ErrDisabled 未設定文件資料庫
var ErrDisabled = errors.New("document store is not configured")

// Collection 寫入目標
type Collection string

const (
	History   Collection = "history"
	Favorites Collection = "favorites"
)

// Entry 歷史或收藏紀錄，只新增不修改；timestamp 由資料庫寫入
type Entry struct {
	UserID      string         `bson:"userId"`
	Recipe      interface{}    `bson:"recipe"`
	Ingredients string         `bson:"ingredients"`
	Filters     recipe.Filters `bson:"filters"`
	CreatedAt   string         `bson:"createdAt"`
}

// Store 文件資料庫寫入介面
type Store interface {
	Append(ctx context.Context, collection Collection, entry Entry) (string, error)
}

// Disabled 未設定資料庫時使用，所有寫入皆失敗
type Disabled struct{}

// Append 回傳 ErrDisabled
func (Disabled) Append(context.Context, Collection, Entry) (string, error) {
	return "", ErrDisabled
}
