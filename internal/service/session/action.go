package session

import (
	"github.com/rcsuperstore/partspro/internal/core"
	"github.com/rcsuperstore/partspro/internal/service/tools"
)

// plannerAction is one thing the model decided to do in a reasoning round.
type plannerAction interface {
	isPlannerAction()
}

type answerDirectly struct {
	Content string
}

type invokeRetrieval struct {
	Call core.ToolCall
}

type lookupOrder struct {
	Call core.ToolCall
}

// invokeUnknown covers tool names the model invented; the registry rejects
// them and the error text goes back into the loop.
type invokeUnknown struct {
	Call core.ToolCall
}

func (answerDirectly) isPlannerAction()  {}
func (invokeRetrieval) isPlannerAction() {}
func (lookupOrder) isPlannerAction()     {}
func (invokeUnknown) isPlannerAction()   {}

// decodeActions maps one assistant message onto the actions to take, in the
// order the model emitted them. Content and tool calls can coexist in a
// single message.
func decodeActions(msg core.Message) []plannerAction {
	var actions []plannerAction
	if msg.Content != "" {
		actions = append(actions, answerDirectly{Content: msg.Content})
	}
	for _, tc := range msg.ToolCalls {
		switch tc.Function.Name {
		case tools.ToolCatalogSearch:
			actions = append(actions, invokeRetrieval{Call: tc})
		case tools.ToolGetOrder:
			actions = append(actions, lookupOrder{Call: tc})
		default:
			actions = append(actions, invokeUnknown{Call: tc})
		}
	}
	return actions
}
