package server

import (
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lox/splittable/rng"
)

// connection serves requests from one client on the handler goroutine.
type connection struct {
	ws      *websocket.Conn
	gen     *rng.Generator // owned by this connection only
	config  Config
	metrics *metrics
	logger  zerolog.Logger
	remote  string
}

func newConnection(ws *websocket.Conn, gen *rng.Generator, cfg Config, m *metrics, logger zerolog.Logger) *connection {
	remote := ws.RemoteAddr().String()
	return &connection{
		ws:      ws,
		gen:     gen,
		config:  cfg,
		metrics: m,
		logger:  logger.With().Str("remote", remote).Logger(),
		remote:  remote,
	}
}

func (c *connection) run() {
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warn().Err(err).Msg("Connection closed unexpectedly")
			}
			return
		}

		if err := c.handle(data); err != nil {
			c.logger.Debug().Err(err).Msg("Write failed")
			return
		}
	}
}

// handle answers one request. Only write failures are returned; request
// errors are reported to the client.
func (c *connection) handle(data []byte) error {
	req, err := decodeRequest(data)
	if err != nil {
		return c.reject("", err)
	}
	draw, err := req.validate(c.config.MaxCount)
	if err != nil {
		return c.reject(req.Kind, err)
	}

	var gen *rng.Generator
	if req.Seed != nil {
		gen = rng.FromSeed(*req.Seed)
	} else {
		gen = c.gen.Split()
	}

	c.logger.Debug().Str("kind", req.Kind).Int("count", req.Count).Bool("seeded", req.Seed != nil).Msg("Streaming values")

	batch := make([]any, 0, min(req.Count, c.config.BatchSize))
	for i := 0; i < req.Count; i++ {
		batch = append(batch, draw(gen))
		if len(batch) == cap(batch) || i == req.Count-1 {
			if err := c.ws.WriteJSON(Response{Type: TypeValues, Values: batch}); err != nil {
				return err
			}
			c.metrics.values.WithLabelValues(req.Kind).Add(float64(len(batch)))
			batch = batch[:0]
		}
	}

	c.metrics.requests.WithLabelValues(req.Kind, "ok").Inc()
	return c.ws.WriteJSON(Response{Type: TypeDone, Count: req.Count})
}

func (c *connection) reject(kind string, err error) error {
	c.metrics.requests.WithLabelValues(kind, "error").Inc()
	c.logger.Debug().Err(err).Msg("Rejected request")
	return c.ws.WriteJSON(Response{Type: TypeError, Error: err.Error()})
}
