package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"invite-warden/internal/domain"
	"invite-warden/internal/security"
	"invite-warden/internal/service"
)

// InviteHandler serves the command-layer collaborator API
type InviteHandler struct {
	admin service.InviteAdminService
}

func NewInviteHandler(admin service.InviteAdminService) *InviteHandler {
	return &InviteHandler{admin: admin}
}

// HandleListInvites lists a guild's cached invites, optionally filtered
// by inviter
func (h *InviteHandler) HandleListInvites(w http.ResponseWriter, r *http.Request) {
	guildID := mux.Vars(r)["guildID"]
	inviterID := r.URL.Query().Get("inviter")

	invites, err := h.admin.QueryInvites(guildID, inviterID)
	if err != nil {
		if errors.Is(err, domain.ErrGuildNotTracked) {
			http.Error(w, "Guild not tracked", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to list invites", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"invites": invites})
}

// HandleRevokeInvite revokes one invite; ?kick=true also kicks every
// member who joined through it
func (h *InviteHandler) HandleRevokeInvite(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	kick := r.URL.Query().Get("kick") == "true"

	kicked, err := h.admin.Revoke(r.Context(), vars["guildID"], vars["code"], kick)
	if err != nil {
		http.Error(w, "Failed to revoke invite", http.StatusBadGateway)
		return
	}
	writeJSON(w, map[string]any{"revoked": vars["code"], "kicked": kicked})
}

// HandleRevokeByInviter revokes every invite of the guild credited to
// one inviter
func (h *InviteHandler) HandleRevokeByInviter(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	kick := r.URL.Query().Get("kick") == "true"

	revoked, kicked, err := h.admin.RevokeAllByInviter(r.Context(), vars["guildID"], vars["userID"], kick)
	if err != nil {
		if errors.Is(err, domain.ErrGuildNotTracked) {
			http.Error(w, "Guild not tracked", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to revoke invites", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"revoked": revoked, "kicked": kicked})
}

// HandleMemberAttribution returns who invited a member
func (h *InviteHandler) HandleMemberAttribution(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	rec, err := h.admin.MemberAttribution(r.Context(), vars["guildID"], vars["userID"])
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "No attribution stored for this member", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load attribution", http.StatusInternalServerError)
		return
	}
	writeJSON(w, rec)
}

// HandleInviterCodes returns the distinct invite codes historically
// credited to an inviter
func (h *InviteHandler) HandleInviterCodes(w http.ResponseWriter, r *http.Request) {
	codes, err := h.admin.InviterCodes(r.Context(), mux.Vars(r)["userID"])
	if err != nil {
		http.Error(w, "Failed to list codes", http.StatusInternalServerError)
		return
	}
	if codes == nil {
		codes = []string{}
	}
	writeJSON(w, map[string]any{"codes": codes})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// RegisterRoutes registers the collaborator API endpoints
func RegisterRoutes(router *mux.Router, admin service.InviteAdminService, tokens security.TokenManager) {
	handler := NewInviteHandler(admin)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(RequestIDMiddleware)
	api.Use(AuthMiddleware(tokens))

	api.HandleFunc("/guilds/{guildID}/invites", handler.HandleListInvites).Methods("GET")
	api.HandleFunc("/guilds/{guildID}/invites/{code}", handler.HandleRevokeInvite).Methods("DELETE")
	api.HandleFunc("/guilds/{guildID}/inviters/{userID}/invites", handler.HandleRevokeByInviter).Methods("DELETE")
	api.HandleFunc("/guilds/{guildID}/members/{userID}/attribution", handler.HandleMemberAttribution).Methods("GET")
	api.HandleFunc("/inviters/{userID}/codes", handler.HandleInviterCodes).Methods("GET")
}
