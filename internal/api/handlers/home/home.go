package home

import (
	"net/http"

	"savora-web/internal/api/middleware"
	"savora-web/internal/core/page"
	"savora-web/internal/core/recipe"
	"savora-web/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Template 首頁模板名稱
const Template = "home.html"

type ingredientsRequest struct {
	Ingredients string `form:"ingredients" json:"ingredients"`
}

type transcriptRequest struct {
	Transcript string `json:"transcript" binding:"required"`
}

type transcriptResponse struct {
	Ingredients string `json:"ingredients"`
}

type questionRequest struct {
	Question string `form:"question" json:"question"`
}

// Handler 首頁處理程序
type Handler struct {
	orch  *page.Orchestrator
	debug bool
}

// NewHandler 創建首頁處理程序
func NewHandler(orch *page.Orchestrator, debug bool) *Handler {
	return &Handler{orch: orch, debug: debug}
}

// Register 註冊首頁路由；收藏端點需另外掛上去重中間件
func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/", h.Index)
	r.POST("/ingredients", h.SetIngredients)
	r.POST("/voice/transcript", h.VoiceTranscript)
	r.POST("/generate", h.Generate)
	r.POST("/customization", h.SubmitCustomization)
	r.POST("/customization/close", h.CloseCustomization)
	r.POST("/carousel/:id", h.CarouselClick)
	r.POST("/nutrition", h.FetchNutrition)
	r.POST("/nutrition/close", h.CloseNutrition)
	r.POST("/chatbot/open", h.OpenChatbot)
	r.POST("/chatbot/close", h.CloseChatbot)
	r.POST("/chatbot/ask", h.AskChatbot)
	r.POST("/notification/dismiss", h.DismissNotification)
	r.POST("/reset", h.Reset)
}

// Index 渲染首頁
func (h *Handler) Index(c *gin.Context) {
	st, err := h.orch.Load(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, Template, page.NewView(st, middleware.CurrentUser(c)))
}

// PageState 以 JSON 回傳頁面顯示資料
func (h *Handler) PageState(c *gin.Context) {
	st, err := h.orch.Load(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page.NewView(st, middleware.CurrentUser(c)))
}

// SetIngredients 範例按鈕或手動輸入更新食材
func (h *Handler) SetIngredients(c *gin.Context) {
	var req ingredientsRequest
	if !h.bind(c, &req) {
		return
	}
	st, err := h.orch.SetIngredients(c.Request.Context(), middleware.SessionID(c), req.Ingredients)
	h.respond(c, st, err)
}

// VoiceTranscript 接收瀏覽器語音辨識結果
func (h *Handler) VoiceTranscript(c *gin.Context) {
	var req transcriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, common.Wrap(common.ErrInvalidRequest, err))
		return
	}

	st, err := h.orch.SetIngredients(c.Request.Context(), middleware.SessionID(c), req.Transcript)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, transcriptResponse{Ingredients: st.Ingredients})
}

// Generate 按下生成按鈕
func (h *Handler) Generate(c *gin.Context) {
	var req ingredientsRequest
	if !h.bind(c, &req) {
		return
	}
	st, err := h.orch.HandleGenerate(c.Request.Context(), middleware.SessionID(c), req.Ingredients)
	h.respond(c, st, err)
}

// SubmitCustomization 送出客製化表單
func (h *Handler) SubmitCustomization(c *gin.Context) {
	var params recipe.Customization
	if !h.bind(c, &params) {
		return
	}
	st, err := h.orch.HandleCustomizationSubmit(c.Request.Context(), middleware.SessionID(c), middleware.CurrentUser(c), params)
	h.respond(c, st, err)
}

// CloseCustomization 關閉客製化視窗
func (h *Handler) CloseCustomization(c *gin.Context) {
	st, err := h.orch.CloseCustomization(c.Request.Context(), middleware.SessionID(c))
	h.respond(c, st, err)
}

// CarouselClick 點擊推薦食譜
func (h *Handler) CarouselClick(c *gin.Context) {
	suggestion, ok := recipe.FindSuggestion(c.Param("id"))
	if !ok {
		h.fail(c, common.ErrUnknownCarousel)
		return
	}
	st, err := h.orch.HandleCarouselRecipeClick(c.Request.Context(), middleware.SessionID(c), middleware.CurrentUser(c), suggestion)
	h.respond(c, st, err)
}

// SaveFavorite 收藏目前食譜
func (h *Handler) SaveFavorite(c *gin.Context) {
	st, err := h.orch.SaveToFavorites(c.Request.Context(), middleware.SessionID(c), middleware.CurrentUser(c))
	h.respond(c, st, err)
}

// FetchNutrition 開啟營養面板並查詢
func (h *Handler) FetchNutrition(c *gin.Context) {
	st, err := h.orch.FetchNutrition(c.Request.Context(), middleware.SessionID(c))
	h.respond(c, st, err)
}

// CloseNutrition 關閉營養面板
func (h *Handler) CloseNutrition(c *gin.Context) {
	st, err := h.orch.CloseNutrition(c.Request.Context(), middleware.SessionID(c))
	h.respond(c, st, err)
}

// OpenChatbot 開啟聊天視窗
func (h *Handler) OpenChatbot(c *gin.Context) {
	st, err := h.orch.OpenChatbot(c.Request.Context(), middleware.SessionID(c))
	h.respond(c, st, err)
}

// CloseChatbot 關閉聊天視窗
func (h *Handler) CloseChatbot(c *gin.Context) {
	st, err := h.orch.CloseChatbot(c.Request.Context(), middleware.SessionID(c))
	h.respond(c, st, err)
}

// AskChatbot 送出聊天問題
func (h *Handler) AskChatbot(c *gin.Context) {
	var req questionRequest
	if !h.bind(c, &req) {
		return
	}
	st, err := h.orch.AskChatbot(c.Request.Context(), middleware.SessionID(c), req.Question)
	h.respond(c, st, err)
}

// DismissNotification 關閉通知
func (h *Handler) DismissNotification(c *gin.Context) {
	st, err := h.orch.DismissNotification(c.Request.Context(), middleware.SessionID(c))
	h.respond(c, st, err)
}

// Reset 重新開始，清除頁面狀態
func (h *Handler) Reset(c *gin.Context) {
	st, err := h.orch.ResetPage(c.Request.Context(), middleware.SessionID(c))
	h.respond(c, st, err)
}

func (h *Handler) bind(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBind(out); err != nil {
		h.fail(c, common.Wrap(common.ErrInvalidRequest, err))
		return false
	}
	return true
}

// respond 表單請求以 303 導回首頁，JSON 請求直接回傳頁面資料
func (h *Handler) respond(c *gin.Context, st *page.State, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	if common.WantsJSON(c) {
		c.JSON(http.StatusOK, page.NewView(st, middleware.CurrentUser(c)))
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) fail(c *gin.Context, err error) {
	ce, ok := common.AsCustomError(err)
	if !ok {
		ce = common.Wrap(common.ErrInternalError, err)
	}

	fields := []zap.Field{
		zap.String("code", ce.Code),
		zap.String("path", c.Request.URL.Path),
		zap.String("session_id", middleware.SessionID(c)),
		zap.String("request_id", requestid.Get(c)),
		zap.Error(err),
	}
	if ce.Status >= http.StatusInternalServerError {
		common.LogError("請求處理失敗", fields...)
	} else {
		common.LogWarn("請求處理失敗", fields...)
	}

	_ = c.Error(err)
	if common.WantsJSON(c) {
		c.AbortWithStatusJSON(ce.Status, ce.Response(h.debug))
		return
	}
	c.Abort()
	c.String(ce.Status, ce.Message)
}
