package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ManjeetSingh-02/project-management-tool/authorization"
	"github.com/ManjeetSingh-02/project-management-tool/services"
	"github.com/ManjeetSingh-02/project-management-tool/utils"
)

type SubTaskHandler struct {
	SubTaskService *services.SubTaskService
	MemberService  *services.MemberService
}

func NewSubTaskHandler(subTaskService *services.SubTaskService, memberService *services.MemberService) *SubTaskHandler {
	return &SubTaskHandler{SubTaskService: subTaskService, MemberService: memberService}
}

type subTaskRequest struct {
	Title string `json:"title" validate:"required,min=3,max=13"`
}

type updateSubTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=13"`
	IsCompleted *bool   `json:"isCompleted"`
}

func (h *SubTaskHandler) pathIDs(w http.ResponseWriter, r *http.Request) (projectID, taskID primitive.ObjectID, ok bool) {
	vars := mux.Vars(r)
	projectID, err := pathObjectID(vars, "projectId")
	if err != nil {
		utils.WriteError(w, err)
		return projectID, taskID, false
	}
	taskID, err = pathObjectID(vars, "taskId")
	if err != nil {
		utils.WriteError(w, err)
		return projectID, taskID, false
	}
	return projectID, taskID, true
}

func (h *SubTaskHandler) GetSubTasks(w http.ResponseWriter, r *http.Request) {
	projectID, taskID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	if _, _, ok := requireProjectRole(w, r, h.MemberService, projectID); !ok {
		return
	}

	subTasks, err := h.SubTaskService.GetSubTasks(r.Context(), projectID, taskID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "SubTasks fetched successfully", subTasks)
}

func (h *SubTaskHandler) CreateSubTask(w http.ResponseWriter, r *http.Request) {
	projectID, taskID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	actor, role, ok := requireProjectRole(w, r, h.MemberService, projectID)
	if !ok {
		return
	}
	if !authorization.CanManageSubTasks(role) {
		utils.WriteError(w, utils.NewAuthorizationError("Insufficient role to manage subtasks"))
		return
	}

	var req subTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	subTask, err := h.SubTaskService.CreateSubTask(r.Context(), projectID, taskID, req.Title, actor.ID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, "SubTask created successfully", subTask)
}

func (h *SubTaskHandler) UpdateSubTask(w http.ResponseWriter, r *http.Request) {
	projectID, taskID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}
	subTaskID, err := pathObjectID(mux.Vars(r), "subTaskId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if _, _, ok := requireProjectRole(w, r, h.MemberService, projectID); !ok {
		return
	}

	var req updateSubTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	subTask, err := h.SubTaskService.UpdateSubTask(r.Context(), projectID, taskID, subTaskID, services.SubTaskUpdate{
		Title:       req.Title,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "SubTask updated successfully", subTask)
}

func (h *SubTaskHandler) DeleteSubTask(w http.ResponseWriter, r *http.Request) {
	projectID, taskID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}
	subTaskID, err := pathObjectID(mux.Vars(r), "subTaskId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if _, _, ok := requireProjectRole(w, r, h.MemberService, projectID); !ok {
		return
	}

	if err := h.SubTaskService.DeleteSubTask(r.Context(), projectID, taskID, subTaskID); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "SubTask deleted successfully", nil)
}
