package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/ManjeetSingh-02/project-management-tool/config"
	"github.com/ManjeetSingh-02/project-management-tool/db"
	"github.com/ManjeetSingh-02/project-management-tool/handlers"
	"github.com/ManjeetSingh-02/project-management-tool/logging"
	"github.com/ManjeetSingh-02/project-management-tool/middleware"
	"github.com/ManjeetSingh-02/project-management-tool/services"
	"github.com/ManjeetSingh-02/project-management-tool/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.InitLogger("")
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: %v", err)
	}

	logging.InitLogger(cfg.LogFilePath)
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Project Management Tool backend...")

	ctx := context.Background()
	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: %v", err)
	}
	defer client.Disconnect(ctx)
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB")

	database := client.Database(cfg.MongoDBName)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: %v", err)
	}

	usersCollection := database.Collection("users")
	projectsCollection := database.Collection("projects")
	membersCollection := database.Collection("projectmembers")
	tasksCollection := database.Collection("tasks")
	subTasksCollection := database.Collection("subtasks")
	notesCollection := database.Collection("projectnotes")

	blackList, err := services.LoadBlackList(cfg.BlackListFilePath)
	if err != nil {
		logging.Logger.Fatalf("Event ID: BLACKLIST_LOAD_FAILED, Description: %v", err)
	}

	mailer := utils.NewMailer(utils.MailConfig{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		From:      cfg.SMTPFrom,
		OriginURL: cfg.OriginURL,
	})

	jwtService := services.NewJWTService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry)
	userService := services.NewUserService(usersCollection, jwtService, mailer, blackList, cfg.TempTokenExpiry)
	projectService := services.NewProjectService(projectsCollection, membersCollection, tasksCollection, subTasksCollection, notesCollection)
	memberService := services.NewMemberService(membersCollection, usersCollection, notesCollection)
	taskService := services.NewTaskService(tasksCollection, subTasksCollection, membersCollection)
	subTaskService := services.NewSubTaskService(subTasksCollection, tasksCollection)
	noteService := services.NewNoteService(notesCollection)

	cookieSecure := strings.HasPrefix(cfg.OriginURL, "https://")
	h := apiHandlers{
		users:    handlers.NewUserHandler(userService, cookieSecure),
		projects: handlers.NewProjectHandler(projectService, memberService),
		members:  handlers.NewMemberHandler(memberService, projectService),
		tasks:    handlers.NewTaskHandler(taskService, memberService, cfg.UploadDir),
		subTasks: handlers.NewSubTaskHandler(subTaskService, memberService),
		notes:    handlers.NewNoteHandler(noteService, memberService),
	}

	router := newRouter(h, middleware.Auth(jwtService, userService))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.CORS(cfg.OriginURL)(router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on port %s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
