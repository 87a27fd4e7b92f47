package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ManjeetSingh-02/project-management-tool/authorization"
	"github.com/ManjeetSingh-02/project-management-tool/models"
	"github.com/ManjeetSingh-02/project-management-tool/services"
	"github.com/ManjeetSingh-02/project-management-tool/utils"
)

type MemberHandler struct {
	MemberService  *services.MemberService
	ProjectService *services.ProjectService
}

func NewMemberHandler(memberService *services.MemberService, projectService *services.ProjectService) *MemberHandler {
	return &MemberHandler{MemberService: memberService, ProjectService: projectService}
}

type addMemberRequest struct {
	MemberID string `json:"memberId" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=admin manager member"`
}

type memberRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin manager member"`
}

func (h *MemberHandler) GetMembers(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathObjectID(mux.Vars(r), "projectId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if _, _, ok := requireProjectRole(w, r, h.MemberService, projectID); !ok {
		return
	}

	members, err := h.MemberService.GetProjectMembers(r.Context(), projectID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "Project members fetched successfully", members)
}

func (h *MemberHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathObjectID(mux.Vars(r), "projectId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	_, role, ok := requireProjectRole(w, r, h.MemberService, projectID)
	if !ok {
		return
	}

	var req addMemberRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	memberID, err := pathObjectID(map[string]string{"memberId": req.MemberID}, "memberId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	newRole := models.Role(req.Role)
	if newRole == "" {
		newRole = models.RoleMember
	}

	if err := authorization.CanAddMember(role, newRole); err != nil {
		utils.WriteError(w, err)
		return
	}

	member, err := h.MemberService.AddMember(r.Context(), projectID, memberID, newRole)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, "Project member added successfully", map[string]any{"member": member})
}

func (h *MemberHandler) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID, err := pathObjectID(vars, "projectId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	memberID, err := pathObjectID(vars, "memberId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	actor, role, ok := requireProjectRole(w, r, h.MemberService, projectID)
	if !ok {
		return
	}

	var req memberRoleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	project, err := h.ProjectService.GetProjectByID(r.Context(), projectID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	target, err := h.MemberService.GetMember(r.Context(), projectID, memberID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	policyActor := authorization.Actor{ID: actor.ID, Role: role}
	if err := authorization.CanChangeMemberRole(policyActor, target, project.CreatedBy, models.Role(req.Role)); err != nil {
		utils.WriteError(w, err)
		return
	}

	member, err := h.MemberService.UpdateMemberRole(r.Context(), projectID, memberID, models.Role(req.Role))
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "Project member role updated successfully", member)
}

func (h *MemberHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID, err := pathObjectID(vars, "projectId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	memberID, err := pathObjectID(vars, "memberId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	actor, role, ok := requireProjectRole(w, r, h.MemberService, projectID)
	if !ok {
		return
	}

	project, err := h.ProjectService.GetProjectByID(r.Context(), projectID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	target, err := h.MemberService.GetMember(r.Context(), projectID, memberID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	policyActor := authorization.Actor{ID: actor.ID, Role: role}
	if err := authorization.CanRemoveMember(policyActor, target, project.CreatedBy); err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.MemberService.RemoveMember(r.Context(), projectID, memberID); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "Project member deleted successfully", nil)
}
