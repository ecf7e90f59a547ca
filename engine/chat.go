package engine

import "context"

// Roles of chat turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message in a chat.
type Turn struct {
	Role    string
	Content string
}

// Chat keeps the turn history of one conversation. Answers do not depend on
// earlier turns; the history is only kept for display.
type Chat struct {
	engine *Engine
	turns  []Turn
}

// NewChat starts an empty conversation with e.
func NewChat(e *Engine) *Chat {
	return &Chat{engine: e}
}

// Ask records question, answers it and records the answer.
func (c *Chat) Ask(ctx context.Context, question string) string {
	c.turns = append(c.turns, Turn{Role: RoleUser, Content: question})
	answer := c.engine.GenerateResponse(ctx, question)
	c.turns = append(c.turns, Turn{Role: RoleAssistant, Content: answer})
	return answer
}

// History returns the turns so far, oldest first.
func (c *Chat) History() []Turn {
	return append([]Turn(nil), c.turns...)
}
