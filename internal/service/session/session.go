package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rcsuperstore/partspro/internal/config"
	"github.com/rcsuperstore/partspro/internal/core"
	"github.com/rcsuperstore/partspro/pkg/log"
)

const fallbackAnswer = "I ran into a problem while working on that. Could you rephrase the question or try again in a moment?"

// Session drives the tool-use loop for one conversation. One Session per chat
// context; turns within it run one at a time.
type Session struct {
	appCfg       *config.AppConfig
	retrievalCfg *config.RetrievalConfig
	ai           core.ChatProvider
	registry     core.ToolRegistry
	repo         core.MessagesRepository
	id           string

	// Degradation state for the current turn.
	sqlFailures  int
	semanticOnly bool
}

func New(
	appCfg *config.AppConfig,
	retrievalCfg *config.RetrievalConfig,
	ai core.ChatProvider,
	registry core.ToolRegistry,
	repo core.MessagesRepository,
	sessionID string,
) *Session {
	return &Session{
		appCfg:       appCfg,
		retrievalCfg: retrievalCfg,
		ai:           ai,
		registry:     registry,
		repo:         repo,
		id:           sessionID,
	}
}

// Ask runs one user turn to completion. Text chunks are forwarded to onDelta
// in production order as the model emits them; the returned string is the
// full final answer.
func (s *Session) Ask(ctx context.Context, input string, onDelta func(string)) (string, error) {
	logger := log.FromCtx(ctx)

	userMsg := core.Message{Role: core.RoleUser, Content: input}
	if err := s.repo.AddMessage(ctx, s.id, userMsg); err != nil {
		return "", fmt.Errorf("failed to save user message: %w", err)
	}

	s.sqlFailures = 0
	s.semanticOnly = false

	var finalContent string
	for round := 0; round < s.appCfg.MaxPlannerRounds; round++ {
		history, err := s.repo.GetMessages(ctx, s.id, s.appCfg.HistoryLimit)
		if err != nil {
			return "", fmt.Errorf("failed to fetch history: %w", err)
		}

		messages := make([]core.Message, 0, len(history)+1)
		messages = append(messages, core.Message{Role: core.RoleSystem, Content: s.systemPrompt()})
		messages = append(messages, history...)

		responseMsg, err := s.ai.ChatStream(ctx, messages, s.registry.GetTools(), onDelta)
		if err != nil {
			logger.Error().Err(err).Int("round", round).Msg("chat request failed")
			s.finishTurn(ctx, fallbackAnswer)
			return fallbackAnswer, nil
		}

		if err := s.repo.AddMessage(ctx, s.id, responseMsg); err != nil {
			logger.Error().Err(err).Msg("failed to save assistant message")
		}

		for _, action := range decodeActions(responseMsg) {
			switch a := action.(type) {
			case answerDirectly:
				finalContent = a.Content
			case invokeRetrieval:
				result := s.runTool(ctx, a.Call)
				s.noteSearchOutcome(ctx, result)
			case lookupOrder:
				s.runTool(ctx, a.Call)
			case invokeUnknown:
				s.runTool(ctx, a.Call)
			}
		}

		if len(responseMsg.ToolCalls) == 0 {
			if finalContent == "" {
				// The model produced neither text nor a tool call. Say
				// something rather than nothing.
				finalContent = fallbackAnswer
				s.finishTurn(ctx, finalContent)
				return finalContent, nil
			}
			s.trim(ctx)
			return finalContent, nil
		}
	}

	logger.Warn().Int("rounds", s.appCfg.MaxPlannerRounds).Msg("planner round limit reached")
	if finalContent == "" {
		finalContent = fallbackAnswer
		s.finishTurn(ctx, finalContent)
		return finalContent, nil
	}
	s.trim(ctx)
	return finalContent, nil
}

// runTool executes one tool call and records its (possibly truncated) result
// as a tool turn. Tool errors become result text so the model can react.
func (s *Session) runTool(ctx context.Context, tc core.ToolCall) string {
	logger := log.FromCtx(ctx)
	logger.Info().Str("tool", tc.Function.Name).Msg("executing tool")

	result, err := s.registry.CallTool(ctx, tc.Function.Name, tc.Function.Arguments)
	if err != nil {
		result = fmt.Sprintf("Error executing tool: %v", err)
	}

	toolMsg := core.Message{
		Role:       core.RoleTool,
		Content:    truncateToolResult(result, s.appCfg.MaxToolResultTokens),
		ToolCallID: tc.ID,
	}
	if err := s.repo.AddMessage(ctx, s.id, toolMsg); err != nil {
		logger.Error().Err(err).Msg("failed to save tool message")
	}
	return result
}

// noteSearchOutcome tracks consecutive structured failures so the planner can
// be steered away from SQL once the path looks broken for this turn.
func (s *Session) noteSearchOutcome(ctx context.Context, result string) {
	var envelope core.Envelope
	if err := json.Unmarshal([]byte(result), &envelope); err != nil {
		return
	}

	if envelope.Structured.Failed() {
		s.sqlFailures++
		if !s.semanticOnly && s.sqlFailures >= s.retrievalCfg.MaxSQLFailures {
			s.semanticOnly = true
			log.FromCtx(ctx).Warn().
				Int("failures", s.sqlFailures).
				Msg("structured path keeps failing, steering planner to semantic search")
		}
		return
	}
	s.sqlFailures = 0
}

func (s *Session) finishTurn(ctx context.Context, answer string) {
	msg := core.Message{Role: core.RoleAssistant, Content: answer}
	if err := s.repo.AddMessage(ctx, s.id, msg); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to save fallback answer")
	}
	s.trim(ctx)
}

func (s *Session) trim(ctx context.Context) {
	if err := s.repo.TrimSession(ctx, s.id, s.appCfg.HistoryLimit); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to trim session history")
	}
}
