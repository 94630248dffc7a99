package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"time"

	"bujonow/internal/config"
	"bujonow/internal/journal"
	"bujonow/internal/logging"
)

type apiServer struct {
	bind        string
	token       string
	defaultUser string
	logger      *slog.Logger
	daemon      *Daemon

	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) (*apiServer, error) {
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, errors.New("api bind address required")
	}

	srv := &apiServer{
		bind:        bind,
		token:       strings.TrimSpace(cfg.Paths.APIToken),
		defaultUser: cfg.Paths.DefaultUser,
		logger:      logging.NewComponentLogger(logger, "api-server"),
		daemon:      d,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", authMiddleware(srv.token, srv.handleStatus))
	mux.HandleFunc("/api/entries", authMiddleware(srv.token, srv.handleEntries))
	mux.HandleFunc("/api/entries/", authMiddleware(srv.token, srv.handleEntry))
	mux.HandleFunc("/api/chat", authMiddleware(srv.token, srv.handleChat))
	mux.HandleFunc("/api/summary/weekly", authMiddleware(srv.token, srv.handleWeeklySummary))
	mux.HandleFunc("/api/report/mood", authMiddleware(srv.token, srv.handleMoodReport))
	mux.HandleFunc("/api/uploads/audio", authMiddleware(srv.token, srv.handleAudioUpload))
	mux.HandleFunc("/api/uploads/photo", authMiddleware(srv.token, srv.handlePhotoUpload))

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

func (s *apiServer) start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// userFor resolves the acting user from the X-Journal-User header.
func (s *apiServer) userFor(r *http.Request) string {
	if user := strings.TrimSpace(r.Header.Get("X-Journal-User")); user != "" {
		return user
	}
	return s.defaultUser
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, s.daemon.Status())
}

type recordRequest struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

func (s *apiServer) handleEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleRecord(w, r)
	case http.MethodGet:
		s.handleSearch(w, r)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *apiServer) handleRecord(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !s.validDate(w, req.Date) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	entry, err := s.daemon.service.RecordText(r.Context(), s.userFor(r), req.Date, req.Text)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, entry)
}

func (s *apiServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var searchQuery journal.SearchQuery
	if value := strings.TrimSpace(query.Get("start")); value != "" {
		start, err := journal.ParseDate(value)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid start date")
			return
		}
		searchQuery.Start = &start
	}
	if value := strings.TrimSpace(query.Get("end")); value != "" {
		end, err := journal.ParseDate(value)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid end date")
			return
		}
		searchQuery.End = &end
	}
	for _, tag := range query["tag"] {
		if tag = strings.TrimSpace(tag); tag != "" {
			searchQuery.Tags = append(searchQuery.Tags, tag)
		}
	}
	searchQuery.Emotion = strings.TrimSpace(query.Get("emotion"))

	entries, err := s.daemon.service.Search(r.Context(), s.userFor(r), searchQuery)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

type updateRequest struct {
	Text        *string                `json:"text"`
	Tasks       *[]journal.Task        `json:"tasks"`
	Goals       *[]journal.Goal        `json:"goals"`
	Tags        *[]string              `json:"tags"`
	ChatHistory *[]journal.ChatMessage `json:"chat_history"`
	AISummary   *string                `json:"ai_summary"`
}

func (s *apiServer) handleEntry(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimPrefix(r.URL.Path, "/api/entries/")
	if tail, ok := strings.CutSuffix(date, "/chat"); ok {
		s.handleEntryChat(w, r, tail)
		return
	}
	if date == "" || strings.Contains(date, "/") {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	if _, err := journal.ParseDate(date); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid date")
		return
	}

	switch r.Method {
	case http.MethodGet:
		entry, err := s.daemon.service.Entry(r.Context(), s.userFor(r), date)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if entry == nil {
			s.writeError(w, http.StatusNotFound, "no entry for "+date)
			return
		}
		s.writeJSON(w, http.StatusOK, entry)

	case http.MethodPatch:
		var req updateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		entry, err := s.daemon.service.UpdateEntry(r.Context(), s.userFor(r), date, journal.UpdateFields{
			Text:        req.Text,
			Tasks:       req.Tasks,
			Goals:       req.Goals,
			Tags:        req.Tags,
			ChatHistory: req.ChatHistory,
			AISummary:   req.AISummary,
		})
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if entry == nil {
			s.writeError(w, http.StatusNotFound, "no entry for "+date)
			return
		}
		s.writeJSON(w, http.StatusOK, entry)

	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

func (s *apiServer) handleChat(w http.ResponseWriter, r *http.Request) {
	s.handleEntryChat(w, r, "")
}

// handleEntryChat serves both the date-scoped chat route and the bare
// /api/chat convenience route (empty date means today).
func (s *apiServer) handleEntryChat(w http.ResponseWriter, r *http.Request, date string) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.validDate(w, date) {
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	reply, err := s.daemon.service.Chat(r.Context(), s.userFor(r), date, req.Message)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (s *apiServer) handleWeeklySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	end := strings.TrimSpace(r.URL.Query().Get("end"))
	if !s.validDate(w, end) {
		return
	}
	summary, err := s.daemon.service.WeeklySummary(r.Context(), s.userFor(r), end)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"summary":         summary.Summary,
		"emotion_trend":   summary.EmotionTrend,
		"recommendations": summary.Recommendations,
	})
}

func (s *apiServer) handleMoodReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	query := r.URL.Query()
	var start, end *time.Time
	if value := strings.TrimSpace(query.Get("start")); value != "" {
		parsed, err := journal.ParseDate(value)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid start date")
			return
		}
		start = &parsed
	}
	if value := strings.TrimSpace(query.Get("end")); value != "" {
		parsed, err := journal.ParseDate(value)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid end date")
			return
		}
		end = &parsed
	}
	trend, distribution, err := s.daemon.service.MoodReport(r.Context(), s.userFor(r), start, end)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"trend":        trend,
		"distribution": distribution,
	})
}

func (s *apiServer) handleAudioUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	file, header, date, ok := s.parseUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	voice, err := s.daemon.service.RecordVoice(r.Context(), s.userFor(r), date, header.Filename, file)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]any{
		"entry":      voice.Entry,
		"transcript": voice.Transcript,
	})
}

func (s *apiServer) handlePhotoUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	file, header, date, ok := s.parseUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	notes := r.FormValue("notes")
	photo, err := s.daemon.service.RecordPhoto(r.Context(), s.userFor(r), date, header.Filename, file, notes)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]any{
		"entry":            photo.Entry,
		"detected_emotion": photo.Detected,
	})
}

// parseUpload extracts the multipart file and optional date field, writing
// the error response itself on failure.
func (s *apiServer) parseUpload(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, string, bool) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid multipart body")
		return nil, nil, "", false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "file field is required")
		return nil, nil, "", false
	}
	date := strings.TrimSpace(r.FormValue("date"))
	if date != "" {
		if _, err := journal.ParseDate(date); err != nil {
			_ = file.Close()
			s.writeError(w, http.StatusBadRequest, "invalid date")
			return nil, nil, "", false
		}
	}
	return file, header, date, true
}

// validDate writes a 400 for a non-empty unparsable date and reports whether
// the caller may proceed.
func (s *apiServer) validDate(w http.ResponseWriter, date string) bool {
	if strings.TrimSpace(date) == "" {
		return true
	}
	if _, err := journal.ParseDate(date); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid date")
		return false
	}
	return true
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
