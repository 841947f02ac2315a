package service

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ziahq/specstudio/internal/debounce"
	"github.com/ziahq/specstudio/marker"
	"github.com/ziahq/specstudio/validator"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The service fronts a local editor; cross-origin embedding is expected.
	CheckOrigin: func(*http.Request) bool { return true },
}

// liveValidationMessage is pushed to the client after each debounced pass.
type liveValidationMessage struct {
	Result  *validator.Result `json:"result"`
	Markers []marker.Marker   `json:"markers"`
}

// handleLiveValidation runs debounced validation over a WebSocket: every
// text message replaces the pending buffer and restarts the quiescence
// window, so only the last edit in a burst triggers a pass. At most one
// pass is scheduled at a time; there is no in-flight cancellation to need.
func (s *Service) handleLiveValidation(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	s.metrics.liveSessions.Inc()
	defer s.metrics.liveSessions.Dec()

	var writeMu sync.Mutex
	deb := debounce.New(s.cfg.DebounceWindow, func(text string) {
		start := time.Now()
		result := s.val.Validate(text)
		s.metrics.observeValidation(result, time.Since(start))

		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(liveValidationMessage{
			Result:  result,
			Markers: marker.FromDiagnostics(result.Diagnostics(), text),
		}); err != nil {
			s.log.Debug().Err(err).Msg("live validation write failed")
		}
	})
	defer deb.Stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			// Deliver the last pending edit before the connection goes away.
			deb.Flush()
			return
		}
		deb.Trigger(string(data))
	}
}
