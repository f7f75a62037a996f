//START OF FILE mparcade/internal/network/hub.go
package network

import (
	"context"

	"github.com/rs/zerolog"
)

type clientMessage struct {
	client *Client
	msg    Message
}

// Hub mantém o conjunto de clientes ativos e roteia eventos para o handler.
// O mapa clients e o handler só são acessados pela goroutine de Run.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan clientMessage
	broadcast  chan Message
	handler    EventHandler
	log        zerolog.Logger

	// done é fechado quando Run termina; envios para o Hub desistem a partir daí.
	done chan struct{}
}

func NewHub(handler EventHandler, log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan clientMessage),
		broadcast:  make(chan Message, 16),
		handler:    handler,
		log:        log.With().Str("component", "hub").Logger(),
		done:       make(chan struct{}),
	}
}

// enter registra c. Devolve false se o Hub já parou.
func (h *Hub) enter(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// deliver entrega uma mensagem do cliente. Devolve false se o Hub já parou.
func (h *Hub) deliver(cm clientMessage) bool {
	select {
	case h.incoming <- cm:
		return true
	case <-h.done:
		return false
	}
}

// Broadcast enfileira msg para todos os clientes. Se a fila estiver cheia a
// mensagem é descartada: o próximo STATE a substitui.
func (h *Hub) Broadcast(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		h.log.Debug().Str("type", msg.Type).Msg("broadcast queue full, dropping")
	}
}

// Run processa eventos até ctx ser cancelado. Deve ser chamado uma única vez.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	h.log.Info().Msg("hub started")
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			h.log.Info().Msg("hub stopped")
			return

		case c := <-h.register:
			h.clients[c] = true
			h.handler.OnConnect(c)

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
			}

		case cm := <-h.incoming:
			if _, ok := h.clients[cm.client]; ok {
				h.handler.OnMessage(cm.client, cm.msg)
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				if !c.trySend(msg) {
					c.log.Warn().Msg("client too slow, disconnecting")
					h.drop(c)
				}
			}
		}
	}
}

// drop remove o cliente e fecha o canal send, que é o sinal para o writeLoop parar.
func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.send)
	h.handler.OnDisconnect(c)
}

//END OF FILE mparcade/internal/network/hub.go
