package dto

// ── 消息模块 ──

// MessageResponse 单条消息
type MessageResponse struct {
	ID         string `json:"id"`
	PSID       string `json:"ps_id"`
	PSTitle    string `json:"ps_title"`
	Sender     string `json:"sender"`
	SenderRole string `json:"sender_role"`
	Content    string `json:"content"`
	Timestamp  string `json:"timestamp"`
	IsRead     bool   `json:"is_read"`
}

// ThreadSummary 会话列表项
type ThreadSummary struct {
	PSID         string          `json:"ps_id"`
	PSTitle      string          `json:"ps_title"`
	MessageCount int             `json:"message_count"`
	UnreadCount  int             `json:"unread_count"`
	LastMessage  MessageResponse `json:"last_message"`
}

// ThreadListResponse GET /messages
type ThreadListResponse struct {
	Threads     []ThreadSummary `json:"threads"`
	TotalUnread int             `json:"total_unread"`
}

// ThreadResponse GET /messages/:psId
type ThreadResponse struct {
	PSID        string            `json:"ps_id"`
	PSTitle     string            `json:"ps_title"`
	UnreadCount int               `json:"unread_count"`
	Messages    []MessageResponse `json:"messages"`
}

// ReplyRequest POST /messages/:psId
type ReplyRequest struct {
	Content string `json:"content" binding:"max=4000"`
}
