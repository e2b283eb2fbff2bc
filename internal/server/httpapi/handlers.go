package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Janxz01/PersonalNoteHub/internal/common"
	"github.com/Janxz01/PersonalNoteHub/internal/markup"
	"github.com/Janxz01/PersonalNoteHub/internal/server/models"
	"github.com/Janxz01/PersonalNoteHub/internal/server/services"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// notePatch mirrors models.NoteUpdate with JSON field names; absent keys
// stay nil and keep the stored value.
type notePatch struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Pinned   *bool     `json:"pinned"`
	Archived *bool     `json:"archived"`
	LabelIDs *[]string `json:"labelIds"`
	Color    *string   `json:"backgroundColor"`
	FontSize *string   `json:"fontSize"`
}

type labelPatch struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

type formatRequest struct {
	Text string `json:"text"`
}

type formatResponse struct {
	Blocks []markup.Block `json:"blocks"`
}

type uploadURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// wantsSummary reports whether the client asked for an on-save summary.
func wantsSummary(r *http.Request) bool {
	return r.URL.Query().Get("summarize") == "true"
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(r.Context(), w, &common.ValidationError{Field: "body", Reason: "malformed json"})
		return
	}

	token, user, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(r.Context(), w, &common.ValidationError{Field: "body", Reason: "malformed json"})
		return
	}

	token, user, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, authResponse{Token: token, User: user})
}

func (s *Server) handleSocialLogin(w http.ResponseWriter, r *http.Request) {
	var profile models.SocialProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.writeError(r.Context(), w, &common.ValidationError{Field: "body", Reason: "malformed json"})
		return
	}

	token, user, err := s.users.SocialLogin(r.Context(), &profile)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, authResponse{Token: token, User: user})
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	filter := services.NoteFilter{
		Archived: r.URL.Query().Get("archived") == "true",
		LabelID:  r.URL.Query().Get("label"),
	}

	notes, err := s.notes.List(r.Context(), user.ID, filter)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, notes)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	var note models.Note
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		s.writeError(r.Context(), w, &common.ValidationError{Field: "body", Reason: "malformed json"})
		return
	}

	created, err := s.notes.Create(r.Context(), user.ID, &note, wantsSummary(r))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusCreated, created)
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	note, err := s.notes.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, note)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	var patch notePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.writeError(r.Context(), w, &common.ValidationError{Field: "body", Reason: "malformed json"})
		return
	}

	note, err := s.notes.Update(r.Context(), user.ID, chi.URLParam(r, "id"), models.NoteUpdate{
		Title:    patch.Title,
		Content:  patch.Content,
		Pinned:   patch.Pinned,
		Archived: patch.Archived,
		LabelIDs: patch.LabelIDs,
		Color:    patch.Color,
		FontSize: patch.FontSize,
	}, wantsSummary(r))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	if err := s.notes.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTogglePinned(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	note, err := s.notes.TogglePinned(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, note)
}

func (s *Server) handleToggleArchived(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	note, err := s.notes.ToggleArchived(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, note)
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	note, err := s.notes.Summarize(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, note)
}

func (s *Server) handleAttachLabel(w http.ResponseWriter, r *http.Request) {
	s.setLabel(w, r, true)
}

func (s *Server) handleDetachLabel(w http.ResponseWriter, r *http.Request) {
	s.setLabel(w, r, false)
}

func (s *Server) setLabel(w http.ResponseWriter, r *http.Request, attach bool) {
	user := currentUser(r.Context())

	note, err := s.notes.SetLabel(r.Context(), user.ID,
		chi.URLParam(r, "id"), chi.URLParam(r, "labelId"), attach)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, note)
}

func (s *Server) handleListLabels(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	labels, err := s.labels.List(r.Context(), user.ID)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, labels)
}

func (s *Server) handleCreateLabel(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	var label models.Label
	if err := json.NewDecoder(r.Body).Decode(&label); err != nil {
		s.writeError(r.Context(), w, &common.ValidationError{Field: "body", Reason: "malformed json"})
		return
	}

	created, err := s.labels.Create(r.Context(), user.ID, &label)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusCreated, created)
}

func (s *Server) handleUpdateLabel(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	var patch labelPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.writeError(r.Context(), w, &common.ValidationError{Field: "body", Reason: "malformed json"})
		return
	}

	label, err := s.labels.Update(r.Context(), user.ID, chi.URLParam(r, "id"),
		models.LabelUpdate{Name: patch.Name, Color: patch.Color})
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, label)
}

func (s *Server) handleDeleteLabel(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	if err := s.labels.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(r.Context(), w, &common.ValidationError{Field: "body", Reason: "malformed json"})
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, formatResponse{Blocks: markup.Render(req.Text)})
}

func (s *Server) handleAvatarUploadURL(w http.ResponseWriter, r *http.Request) {
	key, url, err := s.avatars.UploadURL(r.Context())
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, uploadURLResponse{Key: key, URL: url})
}

func (s *Server) handleAvatarViewURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		s.writeError(r.Context(), w, &common.ValidationError{Field: "key", Reason: "must not be empty"})
		return
	}

	url, err := s.avatars.ViewURL(r.Context(), key)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, map[string]string{"url": url})
}

func (s *Server) writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(ctx, "encoding response failed", "error", err)
	}
}

func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}

	var status int
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		resp.Field = verr.Field
	case errors.Is(err, common.ErrorValidation):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrorInvalidCredentials), errors.Is(err, common.ErrorInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrorForbidden):
		status = http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrorConflict):
		status = http.StatusConflict
	case errors.Is(err, common.ErrorUnavailable):
		status = http.StatusServiceUnavailable
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		status = http.StatusInternalServerError
		resp.Error = "internal error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
