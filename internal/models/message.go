// internal/models/message.go
package models

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn in the interview transcript. The transcript is
// owned by the host and treated as read-only, append-only input.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func (m Message) IsUser() bool      { return m.Role == RoleUser }
func (m Message) IsAssistant() bool { return m.Role == RoleAssistant }
func (m Message) IsSystem() bool    { return m.Role == RoleSystem }

// Transcript is an ordered message sequence.
type Transcript []Message

// ConversationText joins user and assistant content into one lowercased-ready
// blob. System messages are excluded; they carry no interview content.
func (t Transcript) ConversationText() string {
	var size int
	for _, m := range t {
		if !m.IsSystem() {
			size += len(m.Content) + 1
		}
	}
	buf := make([]byte, 0, size)
	for _, m := range t {
		if m.IsSystem() {
			continue
		}
		if len(buf) > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, m.Content...)
	}
	return string(buf)
}

// LastAssistant returns the most recent assistant message, or false when the
// transcript has none.
func (t Transcript) LastAssistant() (Message, bool) {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].IsAssistant() {
			return t[i], true
		}
	}
	return Message{}, false
}

// LastUser returns the most recent user message, or false when the transcript
// has none.
func (t Transcript) LastUser() (Message, bool) {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].IsUser() {
			return t[i], true
		}
	}
	return Message{}, false
}
