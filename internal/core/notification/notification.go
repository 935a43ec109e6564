package notification

// Severity 通知等級
type Severity string

const (
	Success Severity = "success"
	Warning Severity = "warning"
	Error   Severity = "error"
	Info    Severity = "info"
)

// Notification 頁面上唯一的通知欄位，新通知會取代舊通知
type Notification struct {
	Message  string   `json:"message"`
	Severity Severity `json:"type"`
}

// New 建立通知
func New(severity Severity, message string) *Notification {
	return &Notification{Message: message, Severity: severity}
}

// 使用者可見的訊息
const (
	MsgEmptyIngredients  = "Please enter some ingredients!"
	MsgLoginForFavorites = "Please login to save favorites!"
	MsgNoRecipeToSave    = "No recipe to save!"
	MsgFavoriteSaved     = "Recipe saved to favorites!"
	MsgGenerationFailed  = "Error generating recipe: "
	MsgConnectionFailed  = "Failed to generate recipe. Please check your connection and try again."
	MsgFavoriteFailed    = "Failed to save to favorites: "
	MsgHistoryFailed     = "Failed to save to history: "
	MsgEmptyQuestion     = "Please type a question!"
	MsgChatFailed        = "Failed to get answer: "
)
