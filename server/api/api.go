package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/teamstools/chatsessiond/server/metrics"
	"github.com/teamstools/chatsessiond/server/session"
)

type API struct {
	manager *session.Manager
	logger  *logrus.Logger
	metrics *metrics.Metrics
	router  *mux.Router
}

type createSessionRequest struct {
	Topic      string              `json:"topic"`
	CreatorID  string              `json:"creator_id"`
	Candidates []session.Candidate `json:"candidates"`
}

type createSessionResponse struct {
	SessionID  string              `json:"session_id"`
	ChatID     string              `json:"chat_id"`
	Status     string              `json:"status"`
	MemberIDs  []string            `json:"member_ids"`
	Unresolved []session.Candidate `json:"unresolved,omitempty"`
}

type memberRequest struct {
	UserID string `json:"user_id"`
}

func New(manager *session.Manager, logger *logrus.Logger, metrics *metrics.Metrics) *API {
	router := mux.NewRouter()
	api := &API{manager: manager, logger: logger, metrics: metrics, router: router}

	router.Use(api.requestIDMiddleware)
	if metrics != nil {
		router.Use(api.metricsMiddleware)
	}

	s := router.PathPrefix("/api/v1").Subrouter()
	s.HandleFunc("/sessions", api.createSession).Methods(http.MethodPost)
	s.HandleFunc("/sessions/{session_id}", api.getSession).Methods(http.MethodGet)
	s.HandleFunc("/sessions/{session_id}/members", api.addMember).Methods(http.MethodPost)
	s.HandleFunc("/sessions/{session_id}/members", api.removeAllMembers).Methods(http.MethodDelete)
	s.HandleFunc("/sessions/{session_id}/members/{user_id}", api.removeMember).Methods(http.MethodDelete)
	s.HandleFunc("/sessions/{session_id}/transcript", api.exportTranscript).Methods(http.MethodGet)

	router.HandleFunc("/health", api.health).Methods(http.MethodGet)

	return api
}

func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func (a *API) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "unable to decode the request body", http.StatusBadRequest)
		return
	}

	controller := a.manager.NewSession()
	result, sessErr := controller.CreateChat(req.Candidates, req.CreatorID, req.Topic)
	if sessErr != nil {
		a.handleSessionError(w, sessErr)
		return
	}

	a.manager.Register(controller)

	a.respondJSON(w, http.StatusCreated, createSessionResponse{
		SessionID:  controller.ID(),
		ChatID:     result.ChatID,
		Status:     controller.Snapshot().Status,
		MemberIDs:  result.MemberIDs,
		Unresolved: result.Unresolved,
	})
}

func (a *API) getSession(w http.ResponseWriter, r *http.Request) {
	controller, ok := a.session(w, r)
	if !ok {
		return
	}

	if err := controller.Refresh(); err != nil {
		a.handleSessionError(w, err)
		return
	}

	a.respondJSON(w, http.StatusOK, controller.Snapshot())
}

func (a *API) addMember(w http.ResponseWriter, r *http.Request) {
	controller, ok := a.session(w, r)
	if !ok {
		return
	}

	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "unable to decode the request body", http.StatusBadRequest)
		return
	}

	if err := controller.AddMember(req.UserID); err != nil {
		a.handleSessionError(w, err)
		return
	}

	a.respondJSON(w, http.StatusOK, controller.Snapshot())
}

func (a *API) removeMember(w http.ResponseWriter, r *http.Request) {
	controller, ok := a.session(w, r)
	if !ok {
		return
	}

	userID := mux.Vars(r)["user_id"]
	if err := controller.RemoveMember(userID); err != nil {
		a.handleSessionError(w, err)
		return
	}

	a.respondJSON(w, http.StatusOK, controller.Snapshot())
}

func (a *API) removeAllMembers(w http.ResponseWriter, r *http.Request) {
	controller, ok := a.session(w, r)
	if !ok {
		return
	}

	if err := controller.RemoveAllMembers(); err != nil {
		a.handleSessionError(w, err)
		return
	}

	a.respondJSON(w, http.StatusOK, controller.Snapshot())
}

func (a *API) exportTranscript(w http.ResponseWriter, r *http.Request) {
	controller, ok := a.session(w, r)
	if !ok {
		return
	}

	format, ok := session.ParseTranscriptFormat(r.URL.Query().Get("format"))
	if !ok {
		http.Error(w, "unknown transcript format", http.StatusBadRequest)
		return
	}

	transcript, err := controller.ExportTranscript(format)
	if err != nil {
		a.handleSessionError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+transcript.Filename+`"`)
	if _, err := w.Write([]byte(transcript.Content)); err != nil {
		a.logger.WithError(err).Warn("Unable to write the transcript response")
	}
}

func (a *API) health(w http.ResponseWriter, _ *http.Request) {
	a.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) session(w http.ResponseWriter, r *http.Request) (*session.Controller, bool) {
	sessionID := mux.Vars(r)["session_id"]
	controller, ok := a.manager.Get(sessionID)
	if !ok {
		a.respondJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return nil, false
	}
	return controller, true
}

func (a *API) handleSessionError(w http.ResponseWriter, err *session.Error) {
	status := http.StatusInternalServerError
	body := map[string]string{"error": err.Message}

	switch err.Kind {
	case session.ErrValidation, session.ErrNoUsersSelected:
		status = http.StatusBadRequest
	case session.ErrNoActiveChat, session.ErrBusy:
		status = http.StatusConflict
	case session.ErrMemberNotFound:
		status = http.StatusNotFound
		body["status"] = "not_found"
	case session.ErrRemote:
		status = http.StatusBadGateway
		a.logger.WithError(err).Error("Graph operation failed")
	}

	a.respondJSON(w, status, body)
}

func (a *API) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.WithError(err).Warn("Unable to write the response body")
	}
}
