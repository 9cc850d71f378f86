package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"github.com/rs/zerolog/log"
)

// OICP消息日志的标准字段名
const (
	FieldMessage    = "message_type"
	FieldProviderID = "provider_id"
	FieldOperatorID = "operator_id"
	FieldSessionID  = "session_id"
	FieldProcessID  = "process_id"
	FieldTrackingID = "event_tracking_id"
)

// Logger 日志管理器
type Logger struct {
	logger  zerolog.Logger
	config  *Config
	closers []io.Closer // 文件句柄和diode writer，Close时按逆序关闭
}

// Config 日志配置
type Config struct {
	Level      string `json:"level"`      // 日志级别: debug, info, warn, error
	Format     string `json:"format"`     // 输出格式: console, json
	Output     string `json:"output"`     // 输出目标: stdout, stderr, file path
	TimeFormat string `json:"timeFormat"` // 时间格式
	Caller     bool   `json:"caller"`     // 是否显示调用者信息
	Async      bool   `json:"async"`      // 是否启用异步日志
}

// DefaultConfig 默认日志配置
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
		Caller:     true,
		Async:      false,
	}
}

// New 创建新的日志管理器，并设置为全局日志器
func New(config *Config) (*Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.TimeFormat == "" {
		config.TimeFormat = time.RFC3339
	}

	zerolog.TimeFieldFormat = config.TimeFormat

	level, err := zerolog.ParseLevel(config.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", config.Level, err)
	}
	zerolog.SetGlobalLevel(level)

	var (
		output  io.Writer
		closers []io.Closer
	)
	switch strings.ToLower(config.Output) {
	case "stdout", "":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		if err := ensureDir(filepath.Dir(config.Output)); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", config.Output, err)
		}
		output = file
		closers = append(closers, file)
	}

	// 异步模式下缓冲区满时丢弃日志，而不是阻塞请求处理
	if config.Async {
		w := diode.NewWriter(output, 1000, 10*time.Millisecond, func(missed int) {
			fmt.Fprintf(os.Stderr, "Logger dropped %d messages\n", missed)
		})
		output = w
		// diode.Writer.Close 会一并关闭下层文件
		closers = []io.Closer{w}
	}

	var logger zerolog.Logger
	switch strings.ToLower(config.Format) {
	case "console":
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: config.TimeFormat,
		})
	case "json":
		logger = zerolog.New(output)
	default:
		for _, c := range closers {
			c.Close()
		}
		return nil, fmt.Errorf("unsupported log format: %s", config.Format)
	}

	logger = logger.With().Timestamp().Logger()
	if config.Caller {
		logger = logger.With().Caller().Logger()
	}
	logger = logger.Level(level)

	// 全局 zerolog 与本包的全局日志器使用同一配置
	log.Logger = logger

	l := &Logger{
		logger:  logger,
		config:  config,
		closers: closers,
	}
	globalLogger = l
	return l, nil
}

// NewWithWriter 输出到指定writer的JSON日志器，不修改全局状态
func NewWithWriter(w io.Writer, level string) *Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return &Logger{
		logger: zerolog.New(w).With().Timestamp().Logger().Level(lvl),
		config: &Config{Level: lvl.String(), Format: "json"},
	}
}

// Nop 丢弃所有输出的日志器
func Nop() *Logger {
	return &Logger{logger: zerolog.Nop(), config: &Config{Level: "disabled"}}
}

// GetLogger 获取日志器实例
func (l *Logger) GetLogger() zerolog.Logger {
	return l.logger
}

// With 返回附加了字段的子日志器
func (l *Logger) With(fields map[string]string) *Logger {
	ctx := l.logger.With()
	for k, v := range fields {
		if v != "" {
			ctx = ctx.Str(k, v)
		}
	}
	return &Logger{logger: ctx.Logger(), config: l.config}
}

// ForMessage 返回用于记录一条OICP消息的子日志器，空字段不输出
func (l *Logger) ForMessage(messageType string, fields map[string]string) *Logger {
	child := l.With(fields)
	child.logger = child.logger.With().Str(FieldMessage, messageType).Logger()
	return child
}

func (l *Logger) Debug(msg string) {
	l.logger.Debug().Msg(msg)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

func (l *Logger) Info(msg string) {
	l.logger.Info().Msg(msg)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.logger.Info().Msgf(format, args...)
}

func (l *Logger) Warn(msg string) {
	l.logger.Warn().Msg(msg)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(format, args...)
}

func (l *Logger) Error(msg string) {
	l.logger.Error().Msg(msg)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(format, args...)
}

// ErrorWithErr 带错误对象的错误日志
func (l *Logger) ErrorWithErr(err error, msg string) {
	l.logger.Error().Err(err).Msg(msg)
}

// WarnWithErr 带错误对象的警告日志
func (l *Logger) WarnWithErr(err error, msg string) {
	l.logger.Warn().Err(err).Msg(msg)
}

func (l *Logger) Fatal(msg string) {
	l.logger.Fatal().Msg(msg)
}

func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.logger.Fatal().Msgf(format, args...)
}

// SetLevel 动态设置日志级别
func (l *Logger) SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %s: %w", level, err)
	}

	l.logger = l.logger.Level(lvl)
	l.config.Level = level
	return nil
}

// GetLevel 获取当前日志级别
func (l *Logger) GetLevel() string {
	return l.config.Level
}

// Close 刷新异步缓冲并关闭日志文件
func (l *Logger) Close() error {
	var firstErr error
	for i := len(l.closers) - 1; i >= 0; i-- {
		if err := l.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	l.closers = nil
	return firstErr
}

// ensureDir 确保目录存在
func ensureDir(dir string) error {
	if dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

// 全局便捷函数
var globalLogger *Logger

// InitGlobalLogger 初始化全局日志器
func InitGlobalLogger(config *Config) error {
	_, err := New(config)
	return err
}

// Global 全局日志器，未初始化时返回Nop
func Global() *Logger {
	if globalLogger == nil {
		return Nop()
	}
	return globalLogger
}

func Debug(msg string) { Global().Debug(msg) }

func Debugf(format string, args ...interface{}) { Global().Debugf(format, args...) }

func Info(msg string) { Global().Info(msg) }

func Infof(format string, args ...interface{}) { Global().Infof(format, args...) }

func Warn(msg string) { Global().Warn(msg) }

func Warnf(format string, args ...interface{}) { Global().Warnf(format, args...) }

func Error(msg string) { Global().Error(msg) }

func Errorf(format string, args ...interface{}) { Global().Errorf(format, args...) }

func ErrorWithErr(err error, msg string) { Global().ErrorWithErr(err, msg) }
