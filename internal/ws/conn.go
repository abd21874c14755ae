package ws

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/igtm/baseball/internal/middleware"
)

const (
	frameBuffer  = 128
	writeTimeout = 5 * time.Second
)

// Conn is one browser client: the input producer and the render/audio
// consumer of a single session.
//
// Outgoing traffic is split in two. Render snapshots are coalesced so only
// the newest one waits to be written; every other frame (events, session
// start, errors, pong) is queued in order and written first.
type Conn struct {
	ws      *websocket.Conn
	frames  chan []byte
	latest  chan []byte
	done    chan struct{}
	once    sync.Once
	ID      string
	Team    string
	IP      string
	limiter *middleware.IPRateLimiter
}

func NewConn(ws *websocket.Conn, id, ip string, limiter *middleware.IPRateLimiter) *Conn {
	return &Conn{
		ws:      ws,
		frames:  make(chan []byte, frameBuffer),
		latest:  make(chan []byte, 1),
		done:    make(chan struct{}),
		ID:      id,
		IP:      ip,
		limiter: limiter,
	}
}

// Send queues msg without blocking.
func (c *Conn) Send(msg Message) {
	data, err := Encode(msg)
	if err != nil {
		log.Printf("conn %s: encode error: %v", c.ID, err)
		return
	}
	if msg.Type == MsgGameState {
		c.offerSnapshot(data)
		return
	}
	select {
	case c.frames <- data:
	case <-c.done:
	default:
		log.Printf("conn %s: send buffer full, dropping type=%#x", c.ID, msg.Type)
	}
}

// offerSnapshot replaces any snapshot still waiting to be written.
func (c *Conn) offerSnapshot(data []byte) {
	for {
		select {
		case c.latest <- data:
			return
		case <-c.done:
			return
		default:
		}
		select {
		case <-c.latest:
		default:
		}
	}
}

// SendPayload builds and queues a message.
func (c *Conn) SendPayload(typ uint8, tick uint64, payload any) {
	msg, err := NewMessage(typ, tick, payload)
	if err != nil {
		log.Printf("conn %s: %v", c.ID, err)
		return
	}
	c.Send(msg)
}

// ReadLoop decodes incoming frames until the connection or ctx ends. Frames
// over the IP's input budget are dropped without disconnecting.
func (c *Conn) ReadLoop(ctx context.Context) <-chan Message {
	ch := make(chan Message, 16)
	go func() {
		defer close(ch)
		for {
			_, data, err := c.ws.Read(ctx)
			if err != nil {
				if websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
					log.Printf("conn %s: read error: %v", c.ID, err)
				}
				c.Close()
				return
			}
			if c.limiter != nil && !c.limiter.InputAllowed(c.IP) {
				continue
			}
			msg, err := Decode(data)
			if err != nil {
				log.Printf("conn %s: %v", c.ID, err)
				continue
			}
			select {
			case ch <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func (c *Conn) WriteLoop(ctx context.Context) {
	for {
		// Drain queued frames before looking at the snapshot slot.
		select {
		case data := <-c.frames:
			if !c.write(ctx, data) {
				return
			}
			continue
		default:
		}

		select {
		case data := <-c.frames:
			if !c.write(ctx, data) {
				return
			}
		case data := <-c.latest:
			if !c.write(ctx, data) {
				return
			}
		case <-c.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (c *Conn) write(ctx context.Context, data []byte) bool {
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := c.ws.Write(wctx, websocket.MessageText, data); err != nil {
		log.Printf("conn %s: write error: %v", c.ID, err)
		c.Close()
		return false
	}
	return true
}

func (c *Conn) Close() {
	c.CloseWith(websocket.StatusNormalClosure, "")
}

// CloseWith closes the connection once with the given status.
func (c *Conn) CloseWith(code websocket.StatusCode, reason string) {
	c.once.Do(func() {
		close(c.done)
		c.ws.Close(code, reason)
	})
}

func (c *Conn) Done() <-chan struct{} {
	return c.done
}
