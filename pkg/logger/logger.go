package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Options 日志初始化选项
type Options struct {
	// 日志级别: debug/info/warn/error，默认info
	Level string
	// 输出目标: console/file/both，默认console
	Output string
	// 输出格式: text/json，默认text
	Format string
	// Output为file或both时的日志文件路径
	FilePath string
	// text格式下是否着色级别字段
	Colorize bool
	// 是否记录调用位置
	AddSource bool
}

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
	levelVar      = new(slog.LevelVar)
)

// ANSI颜色码，仅用于text格式的级别字段
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// Init 根据选项初始化全局日志器
// 未调用Init时首次输出会按默认配置惰性初始化
func Init(opts Options) error {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return err
	}

	writer, err := resolveOutput(opts)
	if err != nil {
		return err
	}

	levelVar.Set(level)
	handlerOpts := &slog.HandlerOptions{
		Level:     levelVar,
		AddSource: opts.AddSource,
	}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "json":
		handler = slog.NewJSONHandler(writer, handlerOpts)
	default:
		if opts.Colorize {
			handlerOpts.ReplaceAttr = colorizeLevel
		}
		handler = slog.NewTextHandler(writer, handlerOpts)
	}

	mu.Lock()
	defaultLogger = slog.New(handler)
	mu.Unlock()

	return nil
}

// SetLevel 运行时调整日志级别
func SetLevel(level string) error {
	parsed, err := parseLevel(level)
	if err != nil {
		return err
	}
	levelVar.Set(parsed)
	return nil
}

// resolveOutput 解析输出目标
func resolveOutput(opts Options) (io.Writer, error) {
	switch strings.ToLower(opts.Output) {
	case "", "console", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	case "file":
		return openLogFile(opts.FilePath)
	case "both":
		f, err := openLogFile(opts.FilePath)
		if err != nil {
			return nil, err
		}
		return io.MultiWriter(os.Stdout, f), nil
	default:
		return nil, fmt.Errorf("unknown log output: %s", opts.Output)
	}
}

func openLogFile(path string) (io.Writer, error) {
	if path == "" {
		return nil, fmt.Errorf("log output requires file_path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// parseLevel 解析日志级别字符串，空字符串视为info
func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

// colorizeLevel 为text格式的级别字段着色
func colorizeLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}

	var color string
	switch {
	case level < slog.LevelInfo:
		color = colorGray
	case level < slog.LevelWarn:
		color = colorGreen
	case level < slog.LevelError:
		color = colorYellow
	default:
		color = colorRed
	}
	a.Value = slog.StringValue(color + level.String() + colorReset)
	return a
}

// current 获取全局日志器，未初始化时按默认配置惰性创建
func current() *slog.Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		levelVar.Set(slog.LevelInfo)
		defaultLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: levelVar}))
	}
	return defaultLogger
}

// Debug 输出debug日志，参数为键值对
func Debug(msg string, args ...any) {
	current().Debug(msg, SanitizeArgs(args...)...)
}

// Info 输出info日志，参数为键值对
func Info(msg string, args ...any) {
	current().Info(msg, SanitizeArgs(args...)...)
}

// Warn 输出warn日志，参数为键值对
func Warn(msg string, args ...any) {
	current().Warn(msg, SanitizeArgs(args...)...)
}

// Error 输出error日志，参数为键值对
func Error(msg string, args ...any) {
	current().Error(msg, SanitizeArgs(args...)...)
}
