// Package database defines the database store port (interface).
package database

import (
	"context"
	"encoding/json"

	"github.com/agenthub/agenthub/internal/domain/agent"
	"github.com/agenthub/agenthub/internal/domain/chat"
	"github.com/agenthub/agenthub/internal/domain/execlog"
	"github.com/agenthub/agenthub/internal/domain/settings"
	"github.com/agenthub/agenthub/internal/domain/tool"
)

// Store is the port interface for database operations.
type Store interface {
	// Agents
	ListAgents(ctx context.Context, limit, offset int) ([]agent.Agent, error)
	CountAgents(ctx context.Context) (int, error)
	GetAgent(ctx context.Context, id int64) (*agent.Agent, error)
	CreateAgent(ctx context.Context, req agent.CreateRequest) (*agent.Agent, error)
	UpdateAgent(ctx context.Context, id int64, req agent.UpdateRequest) (*agent.Agent, error)
	DeleteAgent(ctx context.Context, id int64) error
	BindTool(ctx context.Context, agentID, toolID int64) error
	UnbindTool(ctx context.Context, agentID, toolID int64) error

	// Tools
	ListTools(ctx context.Context, limit, offset int) ([]tool.Tool, error)
	CountTools(ctx context.Context) (int, error)
	GetTool(ctx context.Context, id int64) (*tool.Tool, error)
	CreateTool(ctx context.Context, req tool.CreateRequest) (*tool.Tool, error)
	UpdateTool(ctx context.Context, id int64, req tool.UpdateRequest) (*tool.Tool, error)
	DeleteTool(ctx context.Context, id int64) error

	// Execution log
	AppendLog(ctx context.Context, entry *execlog.Entry) (int64, error)
	ListLogs(ctx context.Context, limit, offset int) ([]execlog.Entry, error)
	ListToolLogs(ctx context.Context, toolID int64, limit, offset int) ([]execlog.Entry, error)
	CountLogs(ctx context.Context) (int, error)
	DeleteLog(ctx context.Context, id int64) error

	// Settings
	ListSettings(ctx context.Context) ([]settings.Setting, error)
	GetSetting(ctx context.Context, key string) (*settings.Setting, error)
	UpsertSetting(ctx context.Context, key string, req settings.UpsertRequest) (*settings.Setting, error)
	DeleteSetting(ctx context.Context, key string) error
	UpdateSettingValue(ctx context.Context, key string, value json.RawMessage) error

	// Chat
	SaveChatMessage(ctx context.Context, req chat.SaveRequest) (*chat.Message, error)
	ListChatMessages(ctx context.Context, sessionID string, limit int) ([]chat.Message, error)
	LatestChatSession(ctx context.Context) (string, error)
	ListChatSessions(ctx context.Context, limit int) ([]chat.SessionSummary, error)
	DeleteChatSession(ctx context.Context, sessionID string) (int64, error)
}
