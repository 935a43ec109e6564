package page

import (
	"context"
	"strings"
	"time"

	"savora-web/internal/core/notification"
	"savora-web/internal/core/persistence"
	"savora-web/internal/core/recipe"
	"savora-web/internal/core/service"
	"savora-web/internal/infrastructure/metrics"
	"savora-web/internal/pkg/common"

	"go.uber.org/zap"
)

// Generator 食譜生成服務
type Generator interface {
	Generate(ctx context.Context, req service.GenerateRequest) (*service.GenerateResult, error)
}

// NutritionAnalyzer 營養分析服務
type NutritionAnalyzer interface {
	AnalyzeNutrition(ctx context.Context, r recipe.Recipe) (*recipe.NutritionDetail, error)
}

// ChatClient 聊天服務
type ChatClient interface {
	Ask(ctx context.Context, question string, r recipe.Recipe) (string, error)
}

// Orchestrator 首頁流程協調者
type Orchestrator struct {
	states    *StateStore
	generator Generator
	nutrition NutritionAnalyzer
	chat      ChatClient
	store     persistence.Store
	now       func() time.Time
}

// NewOrchestrator 創建協調者
func NewOrchestrator(states *StateStore, generator Generator, nutrition NutritionAnalyzer, chat ChatClient, store persistence.Store) *Orchestrator {
	if store == nil {
		store = persistence.Disabled{}
	}
	return &Orchestrator{
		states:    states,
		generator: generator,
		nutrition: nutrition,
		chat:      chat,
		store:     store,
		now:       time.Now,
	}
}

// Load 讀取頁面狀態
func (o *Orchestrator) Load(ctx context.Context, sessionID string) (*State, error) {
	return o.states.Load(ctx, sessionID)
}

// SetIngredients 更新食材輸入，供範例按鈕與語音輸入使用
func (o *Orchestrator) SetIngredients(ctx context.Context, sessionID, text string) (*State, error) {
	return o.states.Update(ctx, sessionID, func(s *State) error {
		s.Ingredients = strings.TrimSpace(text)
		return nil
	})
}

// HandleGenerate 檢查食材後開啟客製化流程
func (o *Orchestrator) HandleGenerate(ctx context.Context, sessionID, ingredients string) (*State, error) {
	return o.states.Update(ctx, sessionID, func(s *State) error {
		s.Ingredients = ingredients
		if common.IsBlank(ingredients) {
			s.notify(notification.Warning, notification.MsgEmptyIngredients)
			return nil
		}
		s.Customization.Ingredients = strings.TrimSpace(ingredients)
		s.ShowCustomization = true
		s.settle()
		return nil
	})
}

// CloseCustomization 關閉客製化流程
func (o *Orchestrator) CloseCustomization(ctx context.Context, sessionID string) (*State, error) {
	return o.states.Update(ctx, sessionID, func(s *State) error {
		s.ShowCustomization = false
		s.settle()
		return nil
	})
}

// HandleCustomizationSubmit 送出客製化參數並生成食譜
func (o *Orchestrator) HandleCustomizationSubmit(ctx context.Context, sessionID string, user User, params recipe.Customization) (*State, error) {
	params = params.WithDefaults()

	common.LogInfo("開始處理食譜生成請求",
		zap.String("session_id", sessionID),
		zap.String("cuisine", params.Cuisine),
		zap.Int("ingredients", len(params.IngredientList())),
	)

	seq, err := o.beginGeneration(ctx, sessionID, func(s *State) {
		s.ShowCustomization = false
		s.Customization = params
	})
	if err != nil {
		return nil, err
	}

	res, genErr := o.generator.Generate(ctx, service.NewGenerateRequest(params))

	st, committed, err := o.commitGeneration(ctx, sessionID, seq, "customization", res, genErr, func(s *State) {
		s.Filters = params.Filters()
	})
	if err != nil || !committed {
		return st, err
	}

	return o.saveToHistory(ctx, sessionID, user, persistence.Entry{
		Recipe:      st.Recipe.Snapshot(),
		Ingredients: params.Ingredients,
		Filters:     params.Filters(),
	}, st)
}

// HandleCarouselRecipeClick 直接以推薦食譜名稱生成，略過客製化流程
func (o *Orchestrator) HandleCarouselRecipeClick(ctx context.Context, sessionID string, user User, suggestion recipe.Suggestion) (*State, error) {
	common.LogInfo("開始處理推薦食譜請求",
		zap.String("session_id", sessionID),
		zap.String("recipe_name", suggestion.Name),
	)

	seq, err := o.beginGeneration(ctx, sessionID, nil)
	if err != nil {
		return nil, err
	}

	res, genErr := o.generator.Generate(ctx, service.NewSuggestionRequest(suggestion))

	filters := suggestion.Customization().Filters()
	st, committed, err := o.commitGeneration(ctx, sessionID, seq, "carousel", res, genErr, func(s *State) {
		s.Ingredients = ""
		s.Filters = filters
	})
	if err != nil || !committed {
		return st, err
	}

	return o.saveToHistory(ctx, sessionID, user, persistence.Entry{
		Recipe:      st.Recipe.Snapshot(),
		Ingredients: suggestion.Name,
		Filters:     filters,
	}, st)
}

// beginGeneration 清除目前食譜並取得新的請求序號
func (o *Orchestrator) beginGeneration(ctx context.Context, sessionID string, prepare func(*State)) (uint64, error) {
	var seq uint64
	_, err := o.states.Update(ctx, sessionID, func(s *State) error {
		if prepare != nil {
			prepare(s)
		}
		s.clearRecipe()
		s.GenerationSeq++
		seq = s.GenerationSeq
		s.Loading = true
		s.settle()
		return nil
	})
	return seq, err
}

// commitGeneration 只有序號仍為最新的回應才會寫入狀態
func (o *Orchestrator) commitGeneration(ctx context.Context, sessionID string, seq uint64, trigger string, res *service.GenerateResult, genErr error, onSuccess func(*State)) (*State, bool, error) {
	var committed, stale bool
	outcome := "success"

	st, err := o.states.Update(ctx, sessionID, func(s *State) error {
		committed, stale, outcome = false, false, "success"
		if s.GenerationSeq != seq {
			stale = true
			return nil
		}
		s.Loading = false

		switch {
		case genErr != nil:
			outcome = "unavailable"
			s.notify(notification.Error, notification.MsgConnectionFailed)
		case !res.Success:
			outcome = "failed"
			s.notify(notification.Error, notification.MsgGenerationFailed+res.Error)
		default:
			s.setRecipe(res.Recipe, res.Format)
			onSuccess(s)
			committed = true
		}
		s.settle()
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if stale {
		metrics.StaleResponse("generation")
		common.LogInfo("忽略過期的生成回應",
			zap.String("session_id", sessionID),
			zap.Uint64("seq", seq),
			zap.Uint64("current_seq", st.GenerationSeq),
		)
		return st, false, nil
	}

	metrics.Generation(trigger, outcome)
	switch outcome {
	case "unavailable":
		common.LogError("食譜生成服務連線失敗", zap.String("session_id", sessionID), zap.Error(genErr))
	case "failed":
		common.LogWarn("食譜生成失敗", zap.String("session_id", sessionID), zap.String("error", res.Error))
	default:
		common.LogInfo("食譜生成完成",
			zap.String("session_id", sessionID),
			zap.String("format", res.Format),
			zap.String("kind", string(res.Recipe.Kind)),
			zap.String("title", res.Recipe.Title()),
		)
	}
	return st, committed, nil
}

// saveToHistory 寫入歷史紀錄；未登入時不寫入
func (o *Orchestrator) saveToHistory(ctx context.Context, sessionID string, user User, entry persistence.Entry, st *State) (*State, error) {
	if !user.Present() {
		common.LogDebug("未登入，略過歷史紀錄", zap.String("session_id", sessionID))
		return st, nil
	}

	entry.UserID = user.ID
	entry.CreatedAt = common.ISOTimestamp(o.now())
	if _, err := o.store.Append(ctx, persistence.History, entry); err != nil {
		return o.states.Update(ctx, sessionID, func(s *State) error {
			s.notify(notification.Error, notification.MsgHistoryFailed+err.Error())
			return nil
		})
	}
	return st, nil
}

// SaveToFavorites 將目前食譜加入收藏
func (o *Orchestrator) SaveToFavorites(ctx context.Context, sessionID string, user User) (*State, error) {
	st, err := o.states.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var severity notification.Severity
	var message string

	switch {
	case !user.Present():
		severity, message = notification.Warning, notification.MsgLoginForFavorites
	case !st.HasRecipe():
		severity, message = notification.Warning, notification.MsgNoRecipeToSave
	default:
		_, err := o.store.Append(ctx, persistence.Favorites, persistence.Entry{
			UserID:      user.ID,
			Recipe:      st.Recipe.Snapshot(),
			Ingredients: st.Ingredients,
			Filters:     st.Filters,
			CreatedAt:   common.ISOTimestamp(o.now()),
		})
		if err != nil {
			severity, message = notification.Error, notification.MsgFavoriteFailed+err.Error()
		} else {
			severity, message = notification.Success, notification.MsgFavoriteSaved
		}
	}

	return o.states.Update(ctx, sessionID, func(s *State) error {
		s.notify(severity, message)
		return nil
	})
}

// FetchNutrition 每次觸發都重新查詢營養資料；失敗只記錄日誌
func (o *Orchestrator) FetchNutrition(ctx context.Context, sessionID string) (*State, error) {
	var seq uint64
	var current recipe.Recipe
	st, err := o.states.Update(ctx, sessionID, func(s *State) error {
		seq = 0
		if !s.HasRecipe() {
			return nil
		}
		seq = s.Nutrition.Begin()
		current = s.Recipe
		return nil
	})
	if err != nil || seq == 0 {
		return st, err
	}

	detail, fetchErr := o.nutrition.AnalyzeNutrition(ctx, current)
	if fetchErr != nil {
		common.LogWarn("營養資料查詢失敗",
			zap.String("session_id", sessionID),
			zap.Error(fetchErr),
		)
	}

	var applied bool
	st, err = o.states.Update(ctx, sessionID, func(s *State) error {
		if fetchErr != nil {
			applied = s.Nutrition.Fail(seq)
		} else {
			applied = s.Nutrition.Complete(seq, detail)
		}
		return nil
	})
	if err == nil && !applied {
		metrics.StaleResponse("nutrition")
		common.LogInfo("忽略過期的營養資料回應", zap.String("session_id", sessionID))
	}
	return st, err
}

// CloseNutrition 關閉營養面板
func (o *Orchestrator) CloseNutrition(ctx context.Context, sessionID string) (*State, error) {
	return o.states.Update(ctx, sessionID, func(s *State) error {
		s.Nutrition.Close()
		return nil
	})
}

// OpenChatbot 開啟聊天視窗
func (o *Orchestrator) OpenChatbot(ctx context.Context, sessionID string) (*State, error) {
	return o.states.Update(ctx, sessionID, func(s *State) error {
		s.ShowChatbot = true
		return nil
	})
}

// CloseChatbot 關閉聊天視窗
func (o *Orchestrator) CloseChatbot(ctx context.Context, sessionID string) (*State, error) {
	return o.states.Update(ctx, sessionID, func(s *State) error {
		s.ShowChatbot = false
		return nil
	})
}

// AskChatbot 以目前食譜為上下文提問
func (o *Orchestrator) AskChatbot(ctx context.Context, sessionID, question string) (*State, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return o.states.Update(ctx, sessionID, func(s *State) error {
			s.ShowChatbot = true
			s.notify(notification.Warning, notification.MsgEmptyQuestion)
			return nil
		})
	}

	var genSeq uint64
	var current recipe.Recipe
	_, err := o.states.Update(ctx, sessionID, func(s *State) error {
		s.ShowChatbot = true
		s.ChatPending = true
		s.Chat = append(s.Chat, ChatMessage{Role: "user", Content: question})
		genSeq = s.GenerationSeq
		current = s.Recipe
		return nil
	})
	if err != nil {
		return nil, err
	}

	answer, askErr := o.chat.Ask(ctx, question, current)
	if askErr != nil {
		common.LogWarn("聊天服務請求失敗", zap.String("session_id", sessionID), zap.Error(askErr))
	}

	return o.states.Update(ctx, sessionID, func(s *State) error {
		if s.GenerationSeq != genSeq {
			return nil
		}
		s.ChatPending = false
		if askErr != nil {
			s.notify(notification.Error, notification.MsgChatFailed+askErr.Error())
			return nil
		}
		s.Chat = append(s.Chat, ChatMessage{Role: "assistant", Content: answer})
		return nil
	})
}

// DismissNotification 清除通知
func (o *Orchestrator) DismissNotification(ctx context.Context, sessionID string) (*State, error) {
	return o.states.Update(ctx, sessionID, func(s *State) error {
		s.Notification = nil
		return nil
	})
}

// ResetPage 清除整個頁面狀態，回到初始畫面
func (o *Orchestrator) ResetPage(ctx context.Context, sessionID string) (*State, error) {
	if err := o.states.Reset(ctx, sessionID); err != nil {
		return nil, err
	}
	common.LogInfo("頁面狀態已重置", zap.String("session_id", sessionID))
	return NewState(sessionID), nil
}
