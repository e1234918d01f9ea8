package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcsuperstore/partspro/internal/core"
	"github.com/rcsuperstore/partspro/internal/service/tools"
)

func TestDecodeActionsAnswerOnly(t *testing.T) {
	actions := decodeActions(core.Message{
		Role:    core.RoleAssistant,
		Content: "The Slash is in stock.",
	})

	require.Len(t, actions, 1)
	answer, ok := actions[0].(answerDirectly)
	require.True(t, ok)
	assert.Equal(t, "The Slash is in stock.", answer.Content)
}

func TestDecodeActionsClassifiesToolCalls(t *testing.T) {
	actions := decodeActions(core.Message{
		Role: core.RoleAssistant,
		ToolCalls: []core.ToolCall{
			{ID: "c1", Function: core.FunctionCall{Name: tools.ToolCatalogSearch}},
			{ID: "c2", Function: core.FunctionCall{Name: tools.ToolGetOrder}},
			{ID: "c3", Function: core.FunctionCall{Name: "made_up_tool"}},
		},
	})

	require.Len(t, actions, 3)
	retrievalAction, ok := actions[0].(invokeRetrieval)
	require.True(t, ok)
	assert.Equal(t, "c1", retrievalAction.Call.ID)
	_, ok = actions[1].(lookupOrder)
	require.True(t, ok)
	_, ok = actions[2].(invokeUnknown)
	require.True(t, ok)
}

func TestDecodeActionsContentAndToolsCoexist(t *testing.T) {
	actions := decodeActions(core.Message{
		Role:    core.RoleAssistant,
		Content: "Let me check the catalog.",
		ToolCalls: []core.ToolCall{
			{ID: "c1", Function: core.FunctionCall{Name: tools.ToolCatalogSearch}},
		},
	})

	require.Len(t, actions, 2)
	_, ok := actions[0].(answerDirectly)
	require.True(t, ok)
	_, ok = actions[1].(invokeRetrieval)
	require.True(t, ok)
}

func TestDecodeActionsEmptyMessage(t *testing.T) {
	assert.Empty(t, decodeActions(core.Message{Role: core.RoleAssistant}))
}
