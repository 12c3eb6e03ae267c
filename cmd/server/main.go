package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"rag-chat/internal/api"
	"rag-chat/internal/middleware"
	"rag-chat/internal/repository"
	"rag-chat/internal/service"
	"rag-chat/internal/vectorstore"
	"rag-chat/pkg/config"
	"rag-chat/pkg/db"
	"rag-chat/pkg/logger"
)

func main() {
	if err := config.Init(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.GlobalConfig

	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.Production); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	gdb, err := db.Init(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	store, err := vectorstore.Open(cfg.Vector.Path)
	if err != nil {
		log.Fatalf("Failed to open vector store: %v", err)
	}
	defer store.Close()
	embedder := vectorstore.NewHashingEmbedder(cfg.Vector.EmbeddingDimensions)

	userRepo := repository.NewUserRepository(gdb)
	groupRepo := repository.NewGroupRepository(gdb)

	userHandler := api.NewUserHandler(service.NewUserService(userRepo))
	groupHandler := api.NewGroupHandler(service.NewGroupService(groupRepo))
	membershipHandler := api.NewMembershipHandler(service.NewMembershipService(gdb))
	authHandler := api.NewAuthHandler(service.NewAuthService(userRepo))
	documentHandler := api.NewDocumentHandler(service.NewDocumentService(
		store, embedder, cfg.Vector.Collection, cfg.Vector.Path))

	r := gin.New()
	r.Use(middleware.GinZapLogger(), gin.Recovery())

	r.GET("/health", api.Health)

	users := r.Group("/api/users")
	{
		users.POST("/", userHandler.CreateUser)
		users.GET("/", userHandler.ListUsers)
		users.GET("/:user_id", userHandler.GetUser)
		users.PUT("/:user_id", userHandler.UpdateUser)
		users.DELETE("/:user_id", userHandler.DeleteUser)
		users.DELETE("/", userHandler.DeleteAllUsers)
	}

	groups := r.Group("/api/groups")
	{
		groups.POST("/", groupHandler.CreateGroup)
		groups.GET("/", groupHandler.ListGroups)
		groups.GET("/:group_id", groupHandler.GetGroup)
		groups.PUT("/:group_id", groupHandler.UpdateGroup)
		groups.DELETE("/:group_id", groupHandler.DeleteGroup)
		groups.DELETE("/", groupHandler.DeleteAllGroups)
	}

	memberships := r.Group("/api/memberships")
	{
		memberships.POST("/", membershipHandler.AddMember)
		memberships.DELETE("/groups/:group_id/users/:user_id", membershipHandler.RemoveMember)
		memberships.GET("/groups/:group_id/members", membershipHandler.GetGroupMembers)
		memberships.GET("/users/:user_id/groups", membershipHandler.GetUserGroups)
		memberships.POST("/bulk-add", membershipHandler.BulkAddMembers)
		memberships.POST("/bulk-remove", membershipHandler.BulkRemoveMembers)
		memberships.GET("/users/:user_id/groups/:group_id/membership", membershipHandler.CheckMembership)
	}

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", middleware.AuthMiddleware(userRepo), authHandler.Me)
	}

	documents := r.Group("/api/documents")
	{
		documents.POST("/", documentHandler.AddDocument)
		documents.POST("/search", documentHandler.SearchDocuments)
		documents.GET("/", documentHandler.GetAllDocuments)
		documents.GET("/info", documentHandler.GetCollectionInfo)
		documents.GET("/:document_id", documentHandler.GetDocument)
		documents.DELETE("/:document_id", documentHandler.DeleteDocument)
		documents.DELETE("/", documentHandler.DeleteAllDocuments)
	}

	if err := r.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
