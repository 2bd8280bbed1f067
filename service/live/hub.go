// Package live 通过 websocket 把服务请求的状态变更实时推给
// 员工端和客人端视图，代替轮询
package live

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	clientSendSize = 16
)

// Event 推送给订阅方的一条变更
type Event struct {
	Type    string `json:"type"`
	HotelID uint   `json:"hotel_id"`
	Payload any    `json:"payload,omitempty"`
}

const EventServiceRequest = "service_request"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type client struct {
	conn *websocket.Conn
	send chan Event
}

type Hub struct {
	mu      sync.RWMutex
	clients map[uint]map[*client]bool
}

// Default 全局 hub，进程内唯一
var Default = NewHub()

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uint]map[*client]bool),
	}
}

// Broadcast 向某酒店的所有订阅方推送事件。
// 慢客户端发送缓冲满时直接丢弃连接，绝不阻塞状态迁移路径
func (h *Hub) Broadcast(hotelID uint, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[hotelID] {
		select {
		case c.send <- ev:
		default:
			go c.conn.Close()
		}
	}
}

// ServeWS 升级连接并订阅该酒店的变更，直到对端断开
func (h *Hub) ServeWS(c *gin.Context, hotelID uint) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Failed to upgrade websocket", "err", err)
		return
	}

	cl := &client{
		conn: conn,
		send: make(chan Event, clientSendSize),
	}
	h.register(hotelID, cl)

	go cl.writeLoop()

	// 读循环只用于感知断开
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.unregister(hotelID, cl)
	close(cl.send)
	_ = conn.Close()
}

func (h *Hub) register(hotelID uint, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[hotelID]
	if !ok {
		clients = make(map[*client]bool)
		h.clients[hotelID] = clients
	}
	clients[cl] = true
}

func (h *Hub) unregister(hotelID uint, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[hotelID]; ok {
		delete(clients, cl)
		if len(clients) == 0 {
			delete(h.clients, hotelID)
		}
	}
}

func (c *client) writeLoop() {
	for ev := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(ev); err != nil {
			return
		}
	}
}
