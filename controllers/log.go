package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"seriesapi/models"
	"seriesapi/services/auth"
	"seriesapi/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	defaultLogLines = 100
	maxLogLines     = 1000
)

var upgrader = websocket.Upgrader{
	// 日志流只对管理员开放，来源校验交给令牌
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	HandshakeTimeout: 10 * time.Second,
}

type LogController struct {
	tokens *auth.TokenService
}

func NewLogController(tokens *auth.TokenService) *LogController {
	return &LogController{tokens: tokens}
}

// GetLogs godoc
// @Summary      获取系统日志
// @Description  获取系统日志文件的最新内容
// @Tags         系统管理
// @Produce      json
// @Param        lines  query    int     false  "返回的日志行数(默认100)"  minimum(1) maximum(1000)
// @Success      200    {object} Response{data=[]string}
// @Failure      500    {object} Response
// @Security     Bearer
// @Router       /admin/logs [get]
func (lc *LogController) GetLogs(c *gin.Context) {
	lines := defaultLogLines
	if lineParam := c.Query("lines"); lineParam != "" {
		if parsed, err := strconv.Atoi(lineParam); err == nil && parsed > 0 && parsed <= maxLogLines {
			lines = parsed
		}
	}

	path := utils.LogFilePath()
	if path == "" {
		c.JSON(http.StatusOK, Response{Data: []string{}})
		return
	}

	logLines, err := utils.TailFile(path, lines)
	if err != nil {
		utils.LogError("读取日志文件失败", err)
		c.JSON(http.StatusInternalServerError, Response{Error: "Failed to read log file"})
		return
	}
	c.JSON(http.StatusOK, Response{Data: logLines})
}

// WatchLogs godoc
// @Summary      实时监控系统日志
// @Description  通过WebSocket实时接收系统日志，令牌通过 token 参数传递
// @Tags         系统管理
// @Param        token  query  string  true  "管理员令牌"
// @Success      101    "Switching Protocols"
// @Router       /admin/logs/watch [get]
func (lc *LogController) WatchLogs(c *gin.Context) {
	utils.LogInfo(fmt.Sprintf("WebSocket连接尝试 - IP: %s", c.ClientIP()))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.LogError("升级WebSocket连接失败", err)
		return
	}

	// 浏览器无法为 WebSocket 设置请求头，因此在连接建立后校验 URL 中的令牌
	claims, err := lc.tokens.Parse(c.Query("token"))
	if err != nil {
		conn.WriteJSON(gin.H{"type": "auth_error", "message": "invalid token"})
		conn.Close()
		return
	}
	if auth.Role(claims) != models.RoleAdmin {
		conn.WriteJSON(gin.H{"type": "auth_error", "message": "permission denied"})
		conn.Close()
		return
	}
	conn.WriteJSON(gin.H{"type": "auth_success", "message": "authenticated"})

	utils.AddClient(conn)
	utils.LogInfo(fmt.Sprintf("WebSocket连接成功 - IP: %s", c.ClientIP()))

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	done := make(chan struct{})
	defer func() {
		close(done)
		utils.RemoveClient(conn)
		conn.Close()
		utils.LogInfo(fmt.Sprintf("WebSocket连接关闭 - IP: %s", c.ClientIP()))
	}()

	// 心跳
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				utils.LogError("WebSocket读取错误", err)
			}
			break
		}
	}
}
