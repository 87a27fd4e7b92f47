package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ManjeetSingh-02/project-management-tool/authorization"
	"github.com/ManjeetSingh-02/project-management-tool/services"
	"github.com/ManjeetSingh-02/project-management-tool/utils"
)

type NoteHandler struct {
	NoteService   *services.NoteService
	MemberService *services.MemberService
}

func NewNoteHandler(noteService *services.NoteService, memberService *services.MemberService) *NoteHandler {
	return &NoteHandler{NoteService: noteService, MemberService: memberService}
}

type noteRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *NoteHandler) GetNotes(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathObjectID(mux.Vars(r), "projectId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	actor, _, ok := requireProjectRole(w, r, h.MemberService, projectID)
	if !ok {
		return
	}

	notes, err := h.NoteService.GetNotes(r.Context(), projectID, actor.ID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "Notes fetched successfully", notes)
}

func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID, err := pathObjectID(vars, "projectId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	noteID, err := pathObjectID(vars, "noteId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	actor, _, ok := requireProjectRole(w, r, h.MemberService, projectID)
	if !ok {
		return
	}

	note, err := h.NoteService.GetNoteByID(r.Context(), projectID, noteID, actor.ID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "Note fetched successfully", note)
}

func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathObjectID(mux.Vars(r), "projectId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	actor, role, ok := requireProjectRole(w, r, h.MemberService, projectID)
	if !ok {
		return
	}
	if !authorization.CanCreateNote(role) {
		utils.WriteError(w, utils.NewAuthorizationError("Insufficient role to create notes"))
		return
	}

	var req noteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	note, err := h.NoteService.CreateNote(r.Context(), projectID, actor.ID, req.Content)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, "Note created successfully", map[string]any{"note": note})
}

func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID, err := pathObjectID(vars, "projectId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	noteID, err := pathObjectID(vars, "noteId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	actor, _, ok := requireProjectRole(w, r, h.MemberService, projectID)
	if !ok {
		return
	}

	var req noteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	note, err := h.NoteService.UpdateNote(r.Context(), projectID, noteID, actor.ID, req.Content)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "Note updated successfully", map[string]any{"note": note})
}

func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID, err := pathObjectID(vars, "projectId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	noteID, err := pathObjectID(vars, "noteId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	actor, _, ok := requireProjectRole(w, r, h.MemberService, projectID)
	if !ok {
		return
	}

	if err := h.NoteService.DeleteNote(r.Context(), projectID, noteID, actor.ID); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "Note deleted successfully", nil)
}
