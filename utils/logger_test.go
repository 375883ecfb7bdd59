package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotateKeepsWritingWhenRenameFails(t *testing.T) {
	rf, err := openRotatingFile(t.TempDir())
	require.NoError(t, err)

	renameFile = func(string, string) error { return errors.New("rename refused") }
	t.Cleanup(func() { renameFile = os.Rename })

	assert.Error(t, rf.rotate())

	_, err = rf.Write([]byte("still logging\n"))
	require.NoError(t, err)
	lines, err := TailFile(rf.path(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"still logging"}, lines)
}

// dialLogClient 建立一个已注册到广播列表的 WebSocket 连接，返回客户端一侧
func dialLogClient(t *testing.T) (*websocket.Conn, *websocket.Conn) {
	ready := make(chan *websocket.Conn, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		AddClient(conn)
		ready <- conn
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	select {
	case server := <-ready:
		t.Cleanup(func() {
			RemoveClient(server)
			server.Close()
		})
		return client, server
	case <-time.After(5 * time.Second):
		t.Fatal("websocket client was not registered")
		return nil, nil
	}
}

func registered(conn *websocket.Conn) bool {
	clientsMux.Lock()
	defer clientsMux.Unlock()
	_, ok := clients[conn]
	return ok
}

func TestBroadcastDropsStalledClient(t *testing.T) {
	clientWriteTimeout = 100 * time.Millisecond
	t.Cleanup(func() { clientWriteTimeout = 2 * time.Second })

	healthy, healthyServer := dialLogClient(t)
	received := make(chan string, 1)
	go func() {
		for {
			_, msg, err := healthy.ReadMessage()
			if err != nil {
				return
			}
			if string(msg) == "done" {
				received <- string(msg)
				return
			}
		}
	}()

	// 该客户端从不读取，发送缓冲写满后写入超时
	_, stalledServer := dialLogClient(t)

	line := strings.Repeat("x", 64*1024)
	deadline := time.Now().Add(20 * time.Second)
	for registered(stalledServer) && time.Now().Before(deadline) {
		BroadcastLog(line)
	}
	assert.False(t, registered(stalledServer), "stalled client should be dropped")
	assert.True(t, registered(healthyServer))

	BroadcastLog("done")
	select {
	case msg := <-received:
		assert.Equal(t, "done", msg)
	case <-time.After(5 * time.Second):
		t.Fatal("healthy client stopped receiving logs")
	}
}
