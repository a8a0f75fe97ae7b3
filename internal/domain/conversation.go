package domain

import "time"

// Role роль автора реплики
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn реплика диалога. Добавляется в конец и больше не меняется.
type Turn struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
	// Text is what goes back to the model as history: the user's words or the raw reply.
	Text string `json:"text"`
	// Prose is what the UI shows; for assistant turns the order fence is cut out of it.
	Prose     string         `json:"prose"`
	Order     *PurchaseOrder `json:"purchase_order,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// ModelMessage сообщение в запросе к модели
type ModelMessage struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// ModelRequest собранный запрос к модели
type ModelRequest struct {
	SystemInstruction string         `json:"system_instruction"`
	Messages          []ModelMessage `json:"messages"`
}
