package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ManjeetSingh-02/project-management-tool/authorization"
	"github.com/ManjeetSingh-02/project-management-tool/services"
	"github.com/ManjeetSingh-02/project-management-tool/utils"
)

type ProjectHandler struct {
	ProjectService *services.ProjectService
	MemberService  *services.MemberService
}

func NewProjectHandler(projectService *services.ProjectService, memberService *services.MemberService) *ProjectHandler {
	return &ProjectHandler{ProjectService: projectService, MemberService: memberService}
}

type projectRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=13"`
	Description string `json:"description" validate:"required,min=10,max=100"`
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	projects, err := h.ProjectService.GetProjectsForUser(r.Context(), actor.ID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "Projects fetched successfully", projects)
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req projectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	project, err := h.ProjectService.CreateProject(r.Context(), req.Name, req.Description, actor.ID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, "Project created successfully", project)
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathObjectID(mux.Vars(r), "projectId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	_, role, ok := requireProjectRole(w, r, h.MemberService, projectID)
	if !ok {
		return
	}
	if !authorization.CanViewProject(role) {
		utils.WriteError(w, utils.NewAuthorizationError("Insufficient role to view project"))
		return
	}

	project, err := h.ProjectService.GetProjectByID(r.Context(), projectID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "Project fetched successfully", project)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathObjectID(mux.Vars(r), "projectId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	_, role, ok := requireProjectRole(w, r, h.MemberService, projectID)
	if !ok {
		return
	}
	if !authorization.CanUpdateProject(role) {
		utils.WriteError(w, utils.NewAuthorizationError("Insufficient role to update project"))
		return
	}

	var req projectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	project, err := h.ProjectService.UpdateProject(r.Context(), projectID, req.Name, req.Description)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "Project updated successfully", project)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathObjectID(mux.Vars(r), "projectId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	_, role, ok := requireProjectRole(w, r, h.MemberService, projectID)
	if !ok {
		return
	}
	if !authorization.CanDeleteProject(role) {
		utils.WriteError(w, utils.NewAuthorizationError("Insufficient role to delete project"))
		return
	}

	if err := h.ProjectService.DeleteProject(r.Context(), projectID); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "Project deleted successfully", nil)
}
