package page

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"savora-web/internal/core/notification"
	"savora-web/internal/core/recipe"
	"savora-web/internal/core/recipecard"
	"savora-web/internal/core/session"
	"savora-web/internal/pkg/common"

	"go.uber.org/zap"
)

// Phase 頁面流程階段
type Phase string

const (
	PhaseIdle                  Phase = "idle"
	PhaseAwaitingCustomization Phase = "awaiting-customization"
	PhaseGenerating            Phase = "generating"
	PhaseDisplaying            Phase = "displaying"
)

// User 已登入的使用者，ID 為空代表匿名
type User struct {
	ID    string
	Email string
}

// Present 是否已登入
func (u User) Present() bool {
	return u.ID != ""
}

// ChatMessage 聊天紀錄
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// State 每個 session 的頁面狀態
type State struct {
	SessionID         string                     `json:"sessionId"`
	Ingredients       string                     `json:"ingredients"`
	Phase             Phase                      `json:"phase"`
	Loading           bool                       `json:"loading"`
	Recipe            recipe.Recipe              `json:"recipe"`
	Format            string                     `json:"format"`
	Filters           recipe.Filters             `json:"filters"`
	Customization     recipe.Customization       `json:"customization"`
	ShowCustomization bool                       `json:"showCustomization"`
	ShowChatbot       bool                       `json:"showChatbot"`
	ChatPending       bool                       `json:"chatPending"`
	Chat              []ChatMessage              `json:"chat,omitempty"`
	Nutrition         recipecard.NutritionState  `json:"nutrition"`
	Notification      *notification.Notification `json:"notification,omitempty"`
	GenerationSeq     uint64                     `json:"generationSeq"`
	UpdatedAt         time.Time                  `json:"updatedAt"`
}

// NewState 初始頁面狀態
func NewState(sessionID string) *State {
	return &State{
		SessionID:     sessionID,
		Phase:         PhaseIdle,
		Format:        "text",
		Filters:       recipe.DefaultFilters(),
		Customization: recipe.Customization{}.WithDefaults(),
	}
}

// HasRecipe 是否有顯示中的食譜
func (s *State) HasRecipe() bool {
	return !s.Recipe.IsZero()
}

// Card 顯示中的食譜卡片
func (s *State) Card() recipecard.Card {
	card := recipecard.NewCard(s.Recipe, recipecard.ModeFromFormat(s.Format))
	card.Nutrition = s.Nutrition
	return card
}

func (s *State) notify(severity notification.Severity, message string) {
	s.Notification = notification.New(severity, message)
}

func (s *State) setRecipe(r recipe.Recipe, format string) {
	s.Recipe = r
	s.Format = format
	s.Nutrition.Reset()
	s.Chat = nil
	s.ChatPending = false
}

func (s *State) clearRecipe() {
	s.setRecipe(recipe.Recipe{}, s.Format)
}

// settle 依目前旗標推導階段
func (s *State) settle() {
	switch {
	case s.ShowCustomization:
		s.Phase = PhaseAwaitingCustomization
	case s.Loading:
		s.Phase = PhaseGenerating
	case s.HasRecipe():
		s.Phase = PhaseDisplaying
	default:
		s.Phase = PhaseIdle
	}
}

// StateStore 以 JSON 將頁面狀態存入 session 儲存
type StateStore struct {
	kv  session.Store
	now func() time.Time
}

// NewStateStore 創建頁面狀態儲存
func NewStateStore(kv session.Store) *StateStore {
	return &StateStore{kv: kv, now: time.Now}
}

// Load 讀取狀態，不存在時回傳初始狀態
func (s *StateStore) Load(ctx context.Context, sessionID string) (*State, error) {
	data, err := s.kv.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return NewState(sessionID), nil
		}
		return nil, common.Wrap(common.ErrSessionStore, err)
	}
	return decodeState(sessionID, data), nil
}

// Update 原子地修改狀態並回傳修改後的副本
func (s *StateStore) Update(ctx context.Context, sessionID string, fn func(*State) error) (*State, error) {
	var result *State
	err := s.kv.Update(ctx, sessionID, func(current []byte) ([]byte, error) {
		st := decodeState(sessionID, current)
		if err := fn(st); err != nil {
			return nil, err
		}
		st.UpdatedAt = s.now()
		data, err := json.Marshal(st)
		if err != nil {
			return nil, fmt.Errorf("failed to encode page state: %w", err)
		}
		result = st
		return data, nil
	})
	if err != nil {
		return nil, common.Wrap(common.ErrSessionStore, err)
	}
	return result, nil
}

// Reset 刪除狀態；進行中的回應會因序號不符而被丟棄
func (s *StateStore) Reset(ctx context.Context, sessionID string) error {
	if err := s.kv.Delete(ctx, sessionID); err != nil {
		return common.Wrap(common.ErrSessionStore, err)
	}
	return nil
}

func decodeState(sessionID string, data []byte) *State {
	if len(data) == 0 {
		return NewState(sessionID)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		common.LogWarn("頁面狀態無法解析，重新建立",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return NewState(sessionID)
	}
	st.SessionID = sessionID
	return &st
}
