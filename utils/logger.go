package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	logFileName = "app.log"
	// 日志文件超过该大小时轮转
	maxLogSize = 10 * 1024 * 1024
)

var (
	logger     = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}).With().Timestamp().Logger()
	logFile    *rotatingFile
	mu         sync.Mutex
	clients    = make(map[*websocket.Conn]*logClient)
	clientsMux sync.Mutex

	// 单个 WebSocket 客户端写入的最长等待时间
	clientWriteTimeout = 2 * time.Second
	renameFile         = os.Rename
)

// rotatingFile 可在运行中替换底层文件的 io.Writer
type rotatingFile struct {
	mu   sync.Mutex
	dir  string
	file *os.File
}

func openRotatingFile(dir string) (*rotatingFile, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	rf := &rotatingFile{dir: dir}
	if err := rf.open(); err != nil {
		return nil, err
	}
	return rf, nil
}

func (rf *rotatingFile) path() string {
	return filepath.Join(rf.dir, logFileName)
}

func (rf *rotatingFile) open() error {
	file, err := os.OpenFile(rf.path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	rf.file = file
	return nil
}

func (rf *rotatingFile) Write(p []byte) (int, error) {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	return rf.file.Write(p)
}

func (rf *rotatingFile) needRotation() bool {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	info, err := rf.file.Stat()
	if err != nil {
		return false
	}
	return info.Size() > maxLogSize
}

// rotate 把当前文件重命名为 app.<时间戳>.log 并重新打开
func (rf *rotatingFile) rotate() error {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	rf.file.Close()
	newPath := filepath.Join(rf.dir, fmt.Sprintf("app.%s.log", time.Now().Format("20060102150405")))
	if err := renameFile(rf.path(), newPath); err != nil {
		// 重命名失败时继续写原文件
		if openErr := rf.open(); openErr != nil {
			return openErr
		}
		return err
	}
	return rf.open()
}

// broadcastWriter 把格式化后的日志行转发给 WebSocket 客户端
type broadcastWriter struct{}

func (broadcastWriter) Write(p []byte) (int, error) {
	BroadcastLog(string(p))
	return len(p), nil
}

// InitLogger 初始化日志系统，同时输出到控制台、日志文件和 WebSocket 客户端
func InitLogger(dir, level string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		return nil
	}

	rf, err := openRotatingFile(dir)
	if err != nil {
		return err
	}
	logFile = rf

	lvl := zerolog.InfoLevel
	if level != "" {
		if parsed, err := zerolog.ParseLevel(level); err == nil {
			lvl = parsed
		}
	}

	out := zerolog.ConsoleWriter{
		Out:        io.MultiWriter(os.Stdout, rf, broadcastWriter{}),
		NoColor:    true,
		TimeFormat: time.DateTime,
	}
	logger = zerolog.New(out).Level(lvl).With().Timestamp().Logger()

	go checkLogRotation(rf)
	return nil
}

// Logger 返回当前日志实例，供需要结构化字段的调用方使用
func Logger() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	l := logger
	return &l
}

// LogFilePath 返回当前日志文件路径，未初始化文件日志时返回空字符串
func LogFilePath() string {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return ""
	}
	return logFile.path()
}

// LogError 记录错误信息
func LogError(message string, err error) {
	l := Logger()
	l.Error().Err(err).Msg(message)
}

// LogWarn 记录警告信息
func LogWarn(message string) {
	l := Logger()
	l.Warn().Msg(message)
}

// LogInfo 记录信息日志
func LogInfo(message string) {
	l := Logger()
	l.Info().Msg(message)
}

// checkLogRotation 每小时检查一次是否需要轮转
func checkLogRotation(rf *rotatingFile) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		if rf.needRotation() {
			if err := rf.rotate(); err != nil {
				LogError("日志轮转失败", err)
			}
		}
	}
}

// logClient 串行化同一连接上的写入，gorilla/websocket 不允许并发写
type logClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (lc *logClient) write(message []byte) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if err := lc.conn.SetWriteDeadline(time.Now().Add(clientWriteTimeout)); err != nil {
		return err
	}
	return lc.conn.WriteMessage(websocket.TextMessage, message)
}

// BroadcastLog 向所有连接的WebSocket客户端广播日志，写入超时的客户端会被断开
func BroadcastLog(message string) {
	clientsMux.Lock()
	targets := make([]*logClient, 0, len(clients))
	for _, client := range clients {
		targets = append(targets, client)
	}
	clientsMux.Unlock()

	for _, client := range targets {
		if err := client.write([]byte(message)); err != nil {
			RemoveClient(client.conn)
			client.conn.Close()
		}
	}
}

// AddClient 添加新的WebSocket客户端
func AddClient(conn *websocket.Conn) {
	clientsMux.Lock()
	clients[conn] = &logClient{conn: conn}
	clientsMux.Unlock()
}

// RemoveClient 移除WebSocket客户端
func RemoveClient(conn *websocket.Conn) {
	clientsMux.Lock()
	delete(clients, conn)
	clientsMux.Unlock()
}
