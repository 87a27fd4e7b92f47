package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ManjeetSingh-02/project-management-tool/authorization"
	"github.com/ManjeetSingh-02/project-management-tool/models"
	"github.com/ManjeetSingh-02/project-management-tool/services"
	"github.com/ManjeetSingh-02/project-management-tool/utils"
)

type TaskHandler struct {
	TaskService   *services.TaskService
	MemberService *services.MemberService
	UploadDir     string
}

func NewTaskHandler(taskService *services.TaskService, memberService *services.MemberService, uploadDir string) *TaskHandler {
	return &TaskHandler{TaskService: taskService, MemberService: memberService, UploadDir: uploadDir}
}

type createTaskRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=13"`
	Description string `json:"description" validate:"required,min=10,max=100"`
	AssignedTo  string `json:"assignedTo" validate:"required"`
}

type updateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=13"`
	Description *string `json:"description" validate:"omitempty,min=10,max=100"`
	Status      *string `json:"status" validate:"omitempty,oneof=todo in_progress done"`
	AssignedTo  *string `json:"assignedTo"`
}

func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathObjectID(mux.Vars(r), "projectId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if _, _, ok := requireProjectRole(w, r, h.MemberService, projectID); !ok {
		return
	}

	tasks, err := h.TaskService.GetTasksForProject(r.Context(), projectID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "Tasks fetched successfully", tasks)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathObjectID(mux.Vars(r), "projectId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	actor, role, ok := requireProjectRole(w, r, h.MemberService, projectID)
	if !ok {
		return
	}
	if !authorization.CanCreateTask(role) {
		utils.WriteError(w, utils.NewAuthorizationError("Insufficient role to create tasks"))
		return
	}

	var req createTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	assignedTo, err := pathObjectID(map[string]string{"assignedTo": req.AssignedTo}, "assignedTo")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	task, err := h.TaskService.CreateTask(r.Context(), projectID, req.Title, req.Description, assignedTo, actor.ID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, "Task created successfully", task)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID, err := pathObjectID(vars, "projectId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	taskID, err := pathObjectID(vars, "taskId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if _, _, ok := requireProjectRole(w, r, h.MemberService, projectID); !ok {
		return
	}

	task, err := h.TaskService.GetTaskByID(r.Context(), projectID, taskID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "Task fetched successfully", task)
}

// requireTaskMutation loads the task and checks the actor may mutate it:
// admin or the original assigner.
func (h *TaskHandler) requireTaskMutation(w http.ResponseWriter, r *http.Request, projectID, taskID primitive.ObjectID, actor authorization.Actor) (*models.Task, bool) {
	task, err := h.TaskService.GetTaskByID(r.Context(), projectID, taskID)
	if err != nil {
		utils.WriteError(w, err)
		return nil, false
	}

	if err := authorization.CanModifyTask(actor, *task); err != nil {
		utils.WriteError(w, err)
		return nil, false
	}

	return task, true
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID, err := pathObjectID(vars, "projectId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	taskID, err := pathObjectID(vars, "taskId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	actor, role, ok := requireProjectRole(w, r, h.MemberService, projectID)
	if !ok {
		return
	}

	if _, ok := h.requireTaskMutation(w, r, projectID, taskID, authorization.Actor{ID: actor.ID, Role: role}); !ok {
		return
	}

	var req updateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updates := services.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		updates.Status = &status
	}
	if req.AssignedTo != nil {
		assignedTo, err := pathObjectID(map[string]string{"assignedTo": *req.AssignedTo}, "assignedTo")
		if err != nil {
			utils.WriteError(w, err)
			return
		}
		updates.AssignedTo = &assignedTo
	}

	task, err := h.TaskService.UpdateTask(r.Context(), projectID, taskID, updates)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "Task updated successfully", task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID, err := pathObjectID(vars, "projectId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	taskID, err := pathObjectID(vars, "taskId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	actor, role, ok := requireProjectRole(w, r, h.MemberService, projectID)
	if !ok {
		return
	}

	if _, ok := h.requireTaskMutation(w, r, projectID, taskID, authorization.Actor{ID: actor.ID, Role: role}); !ok {
		return
	}

	if err := h.TaskService.DeleteTask(r.Context(), projectID, taskID); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "Task deleted successfully", nil)
}

// UploadAttachments stores the multipart files of the "attachments" field
// on disk and records them on the task.
func (h *TaskHandler) UploadAttachments(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID, err := pathObjectID(vars, "projectId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	taskID, err := pathObjectID(vars, "taskId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	actor, role, ok := requireProjectRole(w, r, h.MemberService, projectID)
	if !ok {
		return
	}

	if _, ok := h.requireTaskMutation(w, r, projectID, taskID, authorization.Actor{ID: actor.ID, Role: role}); !ok {
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.WriteError(w, utils.NewBadRequestError(utils.KindValidation, "Invalid multipart payload"))
		return
	}

	files := r.MultipartForm.File["attachments"]
	if len(files) == 0 {
		utils.WriteError(w, utils.NewBadRequestError(utils.KindValidation, "No attachments provided"))
		return
	}

	attachments := make([]models.Attachment, 0, len(files))
	for _, fileHeader := range files {
		url, err := utils.SaveUploadedFile(fileHeader, h.UploadDir)
		if err != nil {
			utils.WriteError(w, err)
			return
		}
		attachments = append(attachments, models.Attachment{
			URL:      url,
			MimeType: fileHeader.Header.Get("Content-Type"),
			Size:     fileHeader.Size,
		})
	}

	task, err := h.TaskService.AddAttachments(r.Context(), projectID, taskID, attachments)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "Attachments uploaded successfully", task)
}
