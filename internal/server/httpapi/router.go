package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/fieldkeeper/internal/common"
	"github.com/dmitrijs2005/fieldkeeper/internal/logging"
)

const maxRecordBody = 10 << 20

// RecordStore saves and lists record documents.
type RecordStore interface {
	Save(ctx context.Context, body []byte) (json.RawMessage, error)
	List(ctx context.Context) ([]json.RawMessage, error)
}

// SpeechStreamer turns text into an audio stream.
type SpeechStreamer interface {
	Stream(ctx context.Context, text, lang string) (io.ReadCloser, error)
}

// Router wraps the mux router and the API dependencies.
type Router struct {
	*mux.Router
	logger  logging.Logger
	records RecordStore
	tts     SpeechStreamer
	metrics *Metrics
}

// NewRouter creates the HTTP router with all routes. Metrics are registered
// with reg and served on /metrics.
func NewRouter(logger logging.Logger, records RecordStore, tts SpeechStreamer, reg *prometheus.Registry) *Router {
	metrics, err := NewMetrics(reg)
	if err != nil {
		panic(err)
	}

	r := &Router{
		Router:  mux.NewRouter(),
		logger:  logger,
		records: records,
		tts:     tts,
		metrics: metrics,
	}

	api := r.PathPrefix("/api").Subrouter()
	api.Use(r.instrument)
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	api.HandleFunc("/records", r.listRecords).Methods(http.MethodGet)
	api.HandleFunc("/records", r.saveRecord).Methods(http.MethodPost)
	api.HandleFunc("/tts", r.speak).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return r
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (r *Router) listRecords(w http.ResponseWriter, req *http.Request) {
	all, err := r.records.List(req.Context())
	if err != nil {
		r.logger.Error(req.Context(), "list records failed", "err", err)
		respondError(w, http.StatusInternalServerError, "Failed to load records")
		return
	}
	respondJSON(w, http.StatusOK, all)
}

func (r *Router) saveRecord(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxRecordBody))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid record data")
		return
	}

	saved, err := r.records.Save(req.Context(), body)
	switch {
	case errors.Is(err, common.ErrInvalidRecord):
		respondError(w, http.StatusBadRequest, "Invalid record data")
		return
	case err != nil:
		r.logger.Error(req.Context(), "save record failed", "err", err)
		respondError(w, http.StatusInternalServerError, "Failed to save record")
		return
	}

	r.metrics.recordsSaved.Inc()
	respondJSON(w, http.StatusOK, saved)
}

// speak proxies GET /api/tts?text=&language= to the speech vendor and
// streams the audio back as it arrives.
func (r *Router) speak(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	text, lang := q.Get("text"), q.Get("language")
	if text == "" || lang == "" {
		respondError(w, http.StatusBadRequest, "Missing text or language")
		return
	}

	audio, err := r.tts.Stream(req.Context(), text, lang)
	if err != nil {
		r.metrics.ttsRequests.WithLabelValues(lang, "error").Inc()
		r.logger.Error(req.Context(), "TTS proxy error", "err", err, "language", lang)
		respondError(w, http.StatusInternalServerError, "Internal server error during TTS")
		return
	}
	defer audio.Close()
	r.metrics.ttsRequests.WithLabelValues(lang, "success").Inc()

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.WriteHeader(http.StatusOK)

	if err := copyFlush(w, audio); err != nil {
		r.logger.Warn(req.Context(), "TTS stream interrupted", "err", err)
	}
}

// copyFlush copies src to w, flushing after every chunk so the client can
// start playback before the vendor finishes.
func copyFlush(w http.ResponseWriter, src io.Reader) error {
	flusher, _ := w.(http.Flusher)
	buf := make([]byte, 32<<10)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return werr
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}
