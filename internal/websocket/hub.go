package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Event — сообщение, отправляемое клиенту через WebSocket
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub хранит активные подключения, сгруппированные по пользователю,
// и доставляет события уведомлений конкретным получателям.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
}

// NewHub создает новый хаб
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]map[*Client]struct{}),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
	}
}

// Run обрабатывает регистрацию и отключение клиентов
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]struct{})
			}
			h.clients[client.userID][client] = struct{}{}
			h.mu.Unlock()
			log.Printf("[WSHub] Клиент пользователя #%d подключен", client.userID)

		case client := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.clients[client.userID]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.send)
					if len(conns) == 0 {
						delete(h.clients, client.userID)
					}
				}
			}
			h.mu.Unlock()
			log.Printf("[WSHub] Клиент пользователя #%d отключен", client.userID)
		}
	}
}

// SendToUser доставляет событие всем подключениям пользователя.
// Отсутствие подключений не ошибка: строка уведомления уже в БД,
// клиент увидит ее при следующем запросе списка.
func (h *Hub) SendToUser(userID uint, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("[WSHub] Ошибка сериализации события %s: %v", event.Type, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[userID] {
		select {
		case client.send <- payload:
		default:
			// Переполненный буфер не должен блокировать конвейер
			log.Printf("[WSHub] Буфер клиента пользователя #%d переполнен, событие пропущено", userID)
		}
	}
}
