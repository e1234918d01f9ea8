package session

import "github.com/rcsuperstore/partspro/internal/core"

// Deps bundles the collaborators a Session needs, so transports that spawn
// sessions on demand do not carry five constructor arguments around.
type Deps struct {
	AI       core.ChatProvider
	Registry core.ToolRegistry
	Repo     core.MessagesRepository
}
