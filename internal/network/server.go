//START OF FILE mparcade/internal/network/server.go
package network

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Server expõe o Hub em /ws. Outros handlers (health, etc.) podem ser
// registrados no mux devolvido por Mux.
type Server struct {
	hub      *Hub
	mux      *http.ServeMux
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewServer(handler EventHandler, log zerolog.Logger) *Server {
	s := &Server{
		hub: NewHub(handler, log),
		mux: http.NewServeMux(),
		upgrader: websocket.Upgrader{
			// Controles podem vir de qualquer origem.
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log: log.With().Str("component", "server").Logger(),
	}
	s.mux.HandleFunc("/ws", s.wsHandler)
	return s
}

func (s *Server) Hub() *Hub { return s.hub }

func (s *Server) Mux() *http.ServeMux { return s.mux }

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("upgrade failed")
		return
	}
	client := newClient(conn, s.hub)
	if !s.hub.enter(client) {
		conn.Close()
		return
	}

	go client.writeLoop()
	go client.readLoop()
}

// Listen roda o Hub e serve HTTP em address até ctx ser cancelado.
func (s *Server) Listen(ctx context.Context, address string) error {
	go s.hub.Run(ctx)

	srv := &http.Server{Addr: address, Handler: s.mux}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	s.log.Info().Str("addr", "ws://"+address+"/ws").Msg("websocket server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

//END OF FILE mparcade/internal/network/server.go
