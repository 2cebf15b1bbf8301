package websocket

type Hub struct {
	Channels   map[string]*Channel
	Register   chan *WSClient
	Unregister chan *WSClient
	Broadcast  chan *WSMessage
}

func NewHub() *Hub {
	return &Hub{
		Channels:   make(map[string]*Channel),
		Register:   make(chan *WSClient),
		Unregister: make(chan *WSClient),
		Broadcast:  make(chan *WSMessage),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			channel, ok := h.Channels[client.ChannelID]
			if !ok {
				// Unknown channel, drop the registration.
				continue
			}
			channel.Clients[client.ID] = client
			incConnections()

		case client := <-h.Unregister:
			channel, ok := h.Channels[client.ChannelID]
			if !ok {
				continue
			}
			if _, ok := channel.Clients[client.ID]; ok {
				delete(channel.Clients, client.ID)
				close(client.Message)
				decConnections()
			}

		case message := <-h.Broadcast:
			channel, ok := h.Channels[message.ChannelID]
			if !ok {
				continue
			}
			delivered := 0
			for _, client := range channel.Clients {
				select {
				case client.Message <- message:
					delivered++
				default:
					// Slow consumer, disconnect it rather than block the hub.
					close(client.Message)
					delete(channel.Clients, client.ID)
					decConnections()
				}
			}
			if delivered > 0 {
				addDelivered(delivered)
			}
		}
	}
}
