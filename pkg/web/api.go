package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/danielpaul/ft8encode/ft8"
	"github.com/danielpaul/ft8encode/pkg/logbook"
	"github.com/danielpaul/ft8encode/pkg/logger"
	"github.com/danielpaul/ft8encode/pkg/metrics"
)

// API handles REST API endpoints for the waveform-preview server.
type API struct {
	logger  *logger.Logger
	encoder *ft8.Encoder
	hub     *WebSocketHub
	repo    *logbook.Repository // optional; nil disables history persistence
	metrics *metrics.Collector  // optional; nil disables metric instrumentation
}

// NewAPI creates a new API instance. repo and collector may be nil, in which
// case encode-history persistence and metric instrumentation are skipped.
func NewAPI(log *logger.Logger, encoder *ft8.Encoder, hub *WebSocketHub, repo *logbook.Repository, collector *metrics.Collector) *API {
	return &API{
		logger:  log,
		encoder: encoder,
		hub:     hub,
		repo:    repo,
		metrics: collector,
	}
}

// HandleStatus handles the /api/status endpoint.
func (a *API) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ver, commit, build := GetVersionInfo()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	response := map[string]interface{}{
		"status":  "running",
		"service": "ft8encode",
		"version": ver,
		"commit":  commit,
		"build":   build,
	}

	json.NewEncoder(w).Encode(response)
}

// encodeRequest is the JSON body accepted by HandleEncode.
type encodeRequest struct {
	Message string `json:"message"`
}

// encodeResponse summarizes an encode result without echoing the full
// frequency trajectory.
type encodeResponse struct {
	Subtype        string `json:"subtype"`
	I3             uint8  `json:"i3"`
	SymbolCount    int    `json:"symbol_count"`
	TrajectorySize int    `json:"trajectory_size"`
	SampleRate     int    `json:"sample_rate"`
}

// HandleEncode handles POST /api/encode: encodes the message and broadcasts
// a decimated trajectory preview to any connected WebSocket clients.
func (a *API) HandleEncode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req encodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if a.hub != nil {
		a.hub.BroadcastEncodeStarted(req.Message)
	}

	if a.metrics != nil {
		a.metrics.ActiveEncodes.Inc()
		defer a.metrics.ActiveEncodes.Dec()
	}

	start := time.Now()

	processed, err := a.encoder.Process(req.Message)
	if err != nil {
		if a.hub != nil {
			a.hub.BroadcastEncodeFailed(req.Message, err.Error())
		}
		if a.metrics != nil {
			a.metrics.ObserveError(classifyEncodeError(err))
		}
		a.logger.Warn("encode request failed", logger.String("message", req.Message), logger.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	trajectory := ft8.Synthesize(processed.Symbols)
	elapsed := time.Since(start)
	subtype := processed.Message.Subtype().String()

	if a.hub != nil {
		a.hub.BroadcastEncodeCompleted(req.Message, subtype, decimate(trajectory, 256), ft8.SampleRate)
	}

	if a.metrics != nil {
		a.metrics.ObserveEncode(subtype, elapsed.Seconds(), len(trajectory))
	}

	if a.repo != nil {
		rec := &logbook.EncodeRecord{
			Message:          req.Message,
			Subtype:          subtype,
			I3:               uint8(processed.Payload.Uint(74, 3)),
			PayloadHex:       processed.Payload.Hex(),
			SymbolCount:      len(processed.Symbols),
			TrajectorySize:   len(trajectory),
			SampleRate:       ft8.SampleRate,
			EncodeDurationUs: elapsed.Microseconds(),
		}
		if err := a.repo.Create(rec); err != nil {
			a.logger.Warn("failed to persist encode record", logger.Error(err))
		}
	}

	resp := encodeResponse{
		Subtype:        processed.Message.Subtype().String(),
		I3:             uint8(processed.Payload.Uint(74, 3)),
		SymbolCount:    len(processed.Symbols),
		TrajectorySize: len(trajectory),
		SampleRate:     ft8.SampleRate,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// classifyEncodeError maps an encode error to a short label for the
// ft8encode_errors_total metric, falling back to "other" for anything that
// isn't one of the ft8 package's sentinel errors.
func classifyEncodeError(err error) string {
	switch {
	case errors.Is(err, ft8.ErrEmptyMessage):
		return "empty_message"
	case errors.Is(err, ft8.ErrInvalidCharacter):
		return "invalid_character"
	case errors.Is(err, ft8.ErrUnsupportedSubtype):
		return "unsupported_subtype"
	case errors.Is(err, ft8.ErrInvalidCallsignChar):
		return "invalid_callsign_char"
	case errors.Is(err, ft8.ErrInvalidGridChar):
		return "invalid_grid_char"
	default:
		return "other"
	}
}

// decimate downsamples a trajectory to at most n points for WebSocket
// preview delivery, picking evenly spaced samples rather than averaging.
func decimate(trajectory []float32, n int) []float32 {
	if len(trajectory) <= n {
		return trajectory
	}
	out := make([]float32, n)
	step := float64(len(trajectory)) / float64(n)
	for i := 0; i < n; i++ {
		out[i] = trajectory[int(float64(i)*step)]
	}
	return out
}
