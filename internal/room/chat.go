package room

import "github.com/syncroom/sync-server/pkg/protocol"

const chatMessageRuneLimit = 10

func truncateChatMessage(message string) string {
	runes := []rune(message)
	if len(runes) <= chatMessageRuneLimit {
		return message
	}
	return string(runes[:chatMessageRuneLimit]) + "…"
}

// SendChat relays a truncated chat line to every participant, sender
// included. A sender without a participant entry gets an anonymous label.
func (r *roomContext) SendChat(connID protocol.ConnID, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	nickname := "anonymous"
	if p, exist := r.participants[connID]; exist {
		nickname = p.nickname
	}
	r.broadcastLocked("", EvChatMessage, chatMessageEvent{
		Nickname: nickname,
		Message:  truncateChatMessage(message),
	})
}
