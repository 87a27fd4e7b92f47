package main

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ManjeetSingh-02/project-management-tool/handlers"
)

type apiHandlers struct {
	users    *handlers.UserHandler
	projects *handlers.ProjectHandler
	members  *handlers.MemberHandler
	tasks    *handlers.TaskHandler
	subTasks *handlers.SubTaskHandler
	notes    *handlers.NoteHandler
}

// newRouter wires the /api/v1 route table. Routes under the returned
// protected subrouter run behind the authentication gate.
func newRouter(h apiHandlers, auth func(http.Handler) http.Handler) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/healthcheck", handlers.HealthCheck).Methods(http.MethodGet)

	// public user routes
	api.HandleFunc("/users/register", h.users.Register).Methods(http.MethodPost)
	api.HandleFunc("/users/verify-account/{token}", h.users.VerifyAccount).Methods(http.MethodPatch)
	api.HandleFunc("/users/login", h.users.Login).Methods(http.MethodPost)
	api.HandleFunc("/users/resend-verification-email", h.users.ResendVerificationEmail).Methods(http.MethodPost)
	api.HandleFunc("/users/forgot-password", h.users.ForgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/users/reset-password/{token}", h.users.ResetPassword).Methods(http.MethodPost)
	api.HandleFunc("/users/refresh-access-token", h.users.RefreshAccessToken).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(auth)

	protected.HandleFunc("/users/change-password", h.users.ChangePassword).Methods(http.MethodPatch)
	protected.HandleFunc("/users/profile", h.users.Profile).Methods(http.MethodGet)
	protected.HandleFunc("/users/logout", h.users.Logout).Methods(http.MethodPost)

	protected.HandleFunc("/projects", h.projects.ListProjects).Methods(http.MethodGet)
	protected.HandleFunc("/projects", h.projects.CreateProject).Methods(http.MethodPost)
	protected.HandleFunc("/projects/{projectId}", h.projects.GetProject).Methods(http.MethodGet)
	protected.HandleFunc("/projects/{projectId}", h.projects.UpdateProject).Methods(http.MethodPatch)
	protected.HandleFunc("/projects/{projectId}", h.projects.DeleteProject).Methods(http.MethodDelete)

	protected.HandleFunc("/projects/{projectId}/members", h.members.GetMembers).Methods(http.MethodGet)
	protected.HandleFunc("/projects/{projectId}/members", h.members.AddMember).Methods(http.MethodPost)
	protected.HandleFunc("/projects/{projectId}/members/{memberId}", h.members.UpdateMemberRole).Methods(http.MethodPatch)
	protected.HandleFunc("/projects/{projectId}/members/{memberId}", h.members.RemoveMember).Methods(http.MethodDelete)

	protected.HandleFunc("/notes/{projectId}", h.notes.GetNotes).Methods(http.MethodGet)
	protected.HandleFunc("/notes/{projectId}", h.notes.CreateNote).Methods(http.MethodPost)
	protected.HandleFunc("/notes/{projectId}/{noteId}", h.notes.GetNote).Methods(http.MethodGet)
	protected.HandleFunc("/notes/{projectId}/{noteId}", h.notes.UpdateNote).Methods(http.MethodPatch)
	protected.HandleFunc("/notes/{projectId}/{noteId}", h.notes.DeleteNote).Methods(http.MethodDelete)

	protected.HandleFunc("/tasks/{projectId}", h.tasks.GetTasks).Methods(http.MethodGet)
	protected.HandleFunc("/tasks/{projectId}", h.tasks.CreateTask).Methods(http.MethodPost)
	protected.HandleFunc("/tasks/{projectId}/{taskId}", h.tasks.GetTask).Methods(http.MethodGet)
	protected.HandleFunc("/tasks/{projectId}/{taskId}", h.tasks.UpdateTask).Methods(http.MethodPatch)
	protected.HandleFunc("/tasks/{projectId}/{taskId}", h.tasks.DeleteTask).Methods(http.MethodDelete)
	protected.HandleFunc("/tasks/{projectId}/{taskId}/attachments", h.tasks.UploadAttachments).Methods(http.MethodPost)

	protected.HandleFunc("/tasks/{projectId}/{taskId}/subtasks", h.subTasks.GetSubTasks).Methods(http.MethodGet)
	protected.HandleFunc("/tasks/{projectId}/{taskId}/subtasks", h.subTasks.CreateSubTask).Methods(http.MethodPost)
	protected.HandleFunc("/tasks/{projectId}/{taskId}/subtasks/{subTaskId}", h.subTasks.UpdateSubTask).Methods(http.MethodPatch)
	protected.HandleFunc("/tasks/{projectId}/{taskId}/subtasks/{subTaskId}", h.subTasks.DeleteSubTask).Methods(http.MethodDelete)

	return r
}
