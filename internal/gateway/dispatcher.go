package gateway

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/emp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/serialization"
	"github.com/charging-platform/oicp-emp-gateway/internal/logger"
	"github.com/charging-platform/oicp-emp-gateway/internal/message"
)

// CommandFunc 处理一条已解析的远程指令
type CommandFunc func(ctx context.Context, cmd *message.Command, msg emp.Message) error

// CommandDispatcher 按OICP消息名称分发远程指令
type CommandDispatcher interface {
	// RegisterHandler 注册指令处理器
	RegisterHandler(name string, handler CommandFunc) error

	// UnregisterHandler 注销指令处理器
	UnregisterHandler(name string) error

	// Dispatch 解析指令载荷并交给对应的处理器
	Dispatch(ctx context.Context, cmd *message.Command) error

	// GetRegisteredCommands 已注册的指令名称，按字母排序
	GetRegisteredCommands() []string

	// GetStats 获取分发统计
	GetStats() DispatcherStats
}

// DispatcherConfig 分发器配置
type DispatcherConfig struct {
	// 单条指令的处理超时
	CommandTimeout time.Duration `json:"command_timeout"`

	// 是否收集统计信息
	EnableStats bool `json:"enable_stats"`
}

// DefaultDispatcherConfig 默认分发器配置
func DefaultDispatcherConfig() *DispatcherConfig {
	return &DispatcherConfig{
		CommandTimeout: emp.DefaultRequestTimeout,
		EnableStats:    true,
	}
}

// DispatcherStats 分发器统计信息
type DispatcherStats struct {
	TotalCommands         int64            `json:"total_commands"`
	SuccessfulCommands    int64            `json:"successful_commands"`
	FailedCommands        int64            `json:"failed_commands"`
	CommandsByName        map[string]int64 `json:"commands_by_name"`
	AverageProcessingTime time.Duration    `json:"average_processing_time"`
	MaxProcessingTime     time.Duration    `json:"max_processing_time"`
	StartTime             time.Time        `json:"start_time"`
	Uptime                time.Duration    `json:"uptime"`
}

// DefaultCommandDispatcher 默认指令分发器
type DefaultCommandDispatcher struct {
	config     *DispatcherConfig
	serializer *serialization.Serializer

	handlers      map[string]CommandFunc
	handlersMutex sync.RWMutex

	stats      DispatcherStats
	statsMutex sync.RWMutex

	logger *logger.Logger
}

// NewDefaultCommandDispatcher 创建指令分发器
func NewDefaultCommandDispatcher(config *DispatcherConfig, serializer *serialization.Serializer, l *logger.Logger) *DefaultCommandDispatcher {
	if config == nil {
		config = DefaultDispatcherConfig()
	}
	if serializer == nil {
		serializer = serialization.NewSerializer(serialization.FormatJSON)
	}
	if l == nil {
		l = logger.Nop()
	}
	return &DefaultCommandDispatcher{
		config:     config,
		serializer: serializer,
		handlers:   make(map[string]CommandFunc),
		stats: DispatcherStats{
			CommandsByName: make(map[string]int64),
			StartTime:      time.Now(),
		},
		logger: l,
	}
}

// RegisterHandler 注册指令处理器，名称必须是编解码注册表中已知的消息
func (d *DefaultCommandDispatcher) RegisterHandler(name string, handler CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}
	if !d.known(name) {
		return fmt.Errorf("unknown OICP message %s", name)
	}

	d.handlersMutex.Lock()
	defer d.handlersMutex.Unlock()

	if _, exists := d.handlers[name]; exists {
		return fmt.Errorf("handler for command %s already registered", name)
	}
	d.handlers[name] = handler
	d.logger.Debugf("Registered command handler for %s", name)
	return nil
}

func (d *DefaultCommandDispatcher) known(name string) bool {
	for _, n := range d.serializer.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// UnregisterHandler 注销指令处理器
func (d *DefaultCommandDispatcher) UnregisterHandler(name string) error {
	d.handlersMutex.Lock()
	defer d.handlersMutex.Unlock()

	if _, exists := d.handlers[name]; !exists {
		return fmt.Errorf("no handler registered for command %s", name)
	}
	delete(d.handlers, name)
	return nil
}

// GetRegisteredCommands 已注册的指令名称
func (d *DefaultCommandDispatcher) GetRegisteredCommands() []string {
	d.handlersMutex.RLock()
	defer d.handlersMutex.RUnlock()

	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch 解析并处理一条指令
func (d *DefaultCommandDispatcher) Dispatch(ctx context.Context, cmd *message.Command) error {
	startTime := time.Now()

	d.handlersMutex.RLock()
	handler, exists := d.handlers[cmd.Name]
	d.handlersMutex.RUnlock()
	if !exists {
		d.updateStats(cmd.Name, startTime, false)
		return fmt.Errorf("no handler registered for command %s", cmd.Name)
	}

	msg, err := cmd.Decode(d.serializer, emp.WithRequestTimeout(d.config.CommandTimeout))
	if err != nil {
		d.updateStats(cmd.Name, startTime, false)
		return fmt.Errorf("failed to decode command %s: %w", cmd.CommandID, err)
	}

	cmdCtx, cancel := context.WithTimeout(ctx, d.config.CommandTimeout)
	defer cancel()

	if err := handler(cmdCtx, cmd, msg); err != nil {
		d.updateStats(cmd.Name, startTime, false)
		return fmt.Errorf("command %s (%s) failed: %w", cmd.CommandID, cmd.Name, err)
	}

	d.updateStats(cmd.Name, startTime, true)
	d.logger.ForMessage(cmd.Name, map[string]string{
		logger.FieldProviderID: string(cmd.ProviderID),
	}).Debugf("Dispatched command %s", cmd.CommandID)
	return nil
}

// GetStats 获取分发统计
func (d *DefaultCommandDispatcher) GetStats() DispatcherStats {
	d.statsMutex.RLock()
	defer d.statsMutex.RUnlock()

	stats := d.stats
	stats.Uptime = time.Since(d.stats.StartTime)
	stats.CommandsByName = make(map[string]int64, len(d.stats.CommandsByName))
	for name, count := range d.stats.CommandsByName {
		stats.CommandsByName[name] = count
	}
	return stats
}

func (d *DefaultCommandDispatcher) updateStats(name string, startTime time.Time, success bool) {
	if !d.config.EnableStats {
		return
	}

	d.statsMutex.Lock()
	defer d.statsMutex.Unlock()

	processingTime := time.Since(startTime)

	d.stats.TotalCommands++
	if success {
		d.stats.SuccessfulCommands++
	} else {
		d.stats.FailedCommands++
	}
	d.stats.CommandsByName[name]++

	if processingTime > d.stats.MaxProcessingTime {
		d.stats.MaxProcessingTime = processingTime
	}
	totalTime := time.Duration(d.stats.AverageProcessingTime.Nanoseconds()*(d.stats.TotalCommands-1)) + processingTime
	d.stats.AverageProcessingTime = totalTime / time.Duration(d.stats.TotalCommands)
}
