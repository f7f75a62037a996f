//START OF FILE mparcade/internal/network/handler.go
package network

// EventHandler é a interface que conecta a lógica da rede com a lógica do jogo.
// Todos os métodos são chamados pela goroutine do Hub, nunca em paralelo.
type EventHandler interface {
	// OnConnect é chamado quando um novo cliente se conecta com sucesso.
	OnConnect(c *Client)

	// OnDisconnect é chamado quando um cliente se desconecta.
	OnDisconnect(c *Client)

	// OnMessage é chamado para cada mensagem recebida de um cliente.
	OnMessage(c *Client, msg Message)
}

//END OF FILE mparcade/internal/network/handler.go
