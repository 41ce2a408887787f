package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	_ "erp-service/docs"
	"erp-service/internal/config"
	"erp-service/internal/handlers"
	"erp-service/internal/logger"
	"erp-service/internal/metrics"
	"erp-service/internal/models"
	"erp-service/internal/notifier"
	"erp-service/internal/repository"
	"erp-service/internal/services"
	"erp-service/internal/storage"
)

// @title Construction ERP Service API
// @version 1.0
// @BasePath /api/erp
func main() {
	cfg := InitConfig()
	appLog := InitLogger(cfg)
	defer appLog.Sync()

	db := ConnectDatabase(cfg)
	MigrateDatabase(db)
	minioClient := InitMinIOClient(cfg)

	collector := metrics.NewCollector(prometheus.DefaultRegisterer)
	attachments := storage.NewAttachmentStore(minioClient, cfg.MinioBucket)
	mail := notifier.NewSendGrid(cfg, appLog)

	clientRepo := repository.NewClientRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	tenderRepo := repository.NewTenderRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	userRepo := repository.NewUserRepository(db)

	refcodes := services.NewReferenceCodeService(appLog, collector)
	lifecycle := services.NewLifecycleService(db, clientRepo, projectRepo, taskRepo, documentRepo, tenderRepo, attachments, appLog, collector)
	invitations := services.NewInvitationService(invitationRepo, tenderRepo, userRepo, mail, appLog, collector)
	clients := services.NewClientService(clientRepo, refcodes)
	projects := services.NewProjectService(projectRepo, taskRepo, refcodes)
	tenders := services.NewTenderService(tenderRepo, projectRepo, refcodes)
	contracts := services.NewContractService(repository.NewContractRepository(db), refcodes)
	documents := services.NewDocumentService(documentRepo, projectRepo, attachments, refcodes)

	app := fiber.New()

	// Register Prometheus metrics endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	clientHandler := handlers.NewClientHandler(clients, lifecycle, appLog)
	projectHandler := handlers.NewProjectHandler(projects, lifecycle, appLog)
	tenderHandler := handlers.NewTenderHandler(tenders, lifecycle, appLog)
	invitationHandler := handlers.NewInvitationHandler(invitations, appLog)
	contractHandler := handlers.NewContractHandler(contracts, appLog)
	documentHandler := handlers.NewDocumentHandler(documents, appLog)

	api := app.Group("/api/erp")

	api.Get("/clients", clientHandler.ListClients)
	api.Post("/clients", clientHandler.CreateClient)
	api.Delete("/clients", clientHandler.BulkDeleteClients)
	api.Get("/clients/:id", clientHandler.GetClient)
	api.Put("/clients/:id", clientHandler.UpdateClient)
	api.Delete("/clients/:id", clientHandler.DeleteClient)

	api.Get("/projects", projectHandler.ListProjects)
	api.Post("/projects", projectHandler.CreateProject)
	api.Get("/projects/:id", projectHandler.GetProject)
	api.Get("/projects/:id/full", projectHandler.GetProjectFull)
	api.Put("/projects/:id", projectHandler.UpdateProject)
	api.Delete("/projects/:id", projectHandler.DeleteProject)
	api.Get("/projects/:id/tasks", projectHandler.ListTasks)
	api.Post("/projects/:id/tasks", projectHandler.CreateTask)

	api.Get("/tenders", tenderHandler.ListTenders)
	api.Post("/tenders", tenderHandler.CreateTender)
	api.Get("/tenders/:id", tenderHandler.GetTender)
	api.Put("/tenders/:id", tenderHandler.UpdateTender)
	api.Delete("/tenders/:id", tenderHandler.DeleteTender)
	api.Post("/tenders/:id/invitations", invitationHandler.IssueInvitation)

	api.Get("/invitations/:token", invitationHandler.LookupInvitation)
	api.Post("/invitations/:token/accept", invitationHandler.AcceptInvitation)

	api.Get("/contracts", contractHandler.ListContracts)
	api.Post("/contracts", contractHandler.CreateContract)
	api.Get("/contracts/:id", contractHandler.GetContract)
	api.Put("/contracts/:id", contractHandler.UpdateContract)
	api.Delete("/contracts/:id", contractHandler.DeleteContract)

	api.Get("/documents", documentHandler.ListDocuments)
	api.Post("/documents", documentHandler.CreateDocument)
	api.Get("/documents/:id", documentHandler.GetDocument)
	api.Get("/documents/:id/download", documentHandler.DownloadDocument)

	api.Get("/swagger/*", swagger.HandlerDefault)

	// Add Health check endpoint
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	port := cfg.AppPort
	if port == "" {
		port = "8080"
		appLog.Info("defaulting port", "port", port)
	}
	appLog.Info("server listening", "port", port)
	log.Fatal(app.Listen(":" + port))
}

func InitConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	return cfg
}

func InitLogger(cfg *config.Config) *logger.Logger {
	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Logger initialization failed: %v", err)
	}
	return appLog
}

func ConnectDatabase(cfg *config.Config) *gorm.DB {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	return db
}

func MigrateDatabase(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Project{},
		&models.ProjectAssignment{},
		&models.ProjectChecklist{},
		&models.ProjectAttachment{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.TaskChecklist{},
		&models.TaskAttachment{},
		&models.TaskComment{},
		&models.Document{},
		&models.Tender{},
		&models.TenderInvitation{},
		&models.TechnicalSubmission{},
		&models.Contract{},
	)
	if err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
}

func InitMinIOClient(cfg *config.Config) *minio.Client {
	minioClient, err := storage.NewMinioClient(cfg)
	if err != nil {
		log.Fatalf("MinIO client initialization failed: %v", err)
	}
	return minioClient
}
