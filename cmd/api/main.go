package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/contest-api/internal/config"
	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/handler"
	"github.com/yourusername/contest-api/internal/middleware"
	pgRepo "github.com/yourusername/contest-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/contest-api/internal/repository/redis"
	"github.com/yourusername/contest-api/internal/service"
	ws "github.com/yourusername/contest-api/internal/websocket"
	"github.com/yourusername/contest-api/pkg/auth"
	"github.com/yourusername/contest-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	contestRepo := pgRepo.NewContestRepo(db)
	sampleRepo := pgRepo.NewSampleRepo(db)
	physicalRepo := pgRepo.NewPhysicalEvaluationRepo(db)
	sensoryRepo := pgRepo.NewSensoryEvaluationRepo(db)
	finalRepo := pgRepo.NewFinalEvaluationRepo(db)
	assignmentRepo := pgRepo.NewAssignmentRepo(db)
	topResultRepo := pgRepo.NewTopResultRepo(db)
	notificationRepo := pgRepo.NewNotificationRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT сервис
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWT service: %v", err)
		os.Exit(1)
	}

	// Инициализируем WebSocket хаб
	hub := ws.NewHub()
	go hub.Run()

	// Инициализируем почтовую доставку
	var emailSender service.EmailSender
	if cfg.Email.Enabled {
		emailSender, err = service.NewResendEmailSender(cfg.Email.APIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to initialize email sender: %v", err)
			os.Exit(1)
		}
		log.Println("Email notifications enabled")
	} else {
		emailSender = &service.NoopEmailSender{}
		log.Println("Email notifications disabled, using noop sender")
	}

	// Инициализируем сервисы
	notificationService := service.NewNotificationService(notificationRepo, userRepo, hub, emailSender)
	authService := service.NewAuthService(userRepo, jwtService, notificationService, db)
	contestService := service.NewContestService(contestRepo, userRepo, notificationService, db)
	sampleService := service.NewSampleService(sampleRepo, contestRepo, assignmentRepo, notificationService, cacheRepo, db, cfg)
	physicalService := service.NewPhysicalService(physicalRepo, sampleRepo, notificationService, cacheRepo, db, cfg.Evaluation.Physical)
	assignmentService := service.NewAssignmentService(assignmentRepo, sampleRepo, userRepo, notificationService, db)
	sensoryService := service.NewSensoryService(sensoryRepo, assignmentRepo, sampleRepo, topResultRepo, notificationService, cacheRepo, db, cfg)
	finalService := service.NewFinalService(finalRepo, sampleRepo, contestRepo, notificationService, db, cfg)
	rankingService := service.NewRankingService(topResultRepo, cacheRepo)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService)
	contestHandler := handler.NewContestHandler(contestService)
	sampleHandler := handler.NewSampleHandler(sampleService)
	evaluationHandler := handler.NewEvaluationHandler(physicalService, sensoryService, finalService)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService)
	rankingHandler := handler.NewRankingHandler(rankingService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	wsHandler := handler.NewWSHandler(hub, jwtService)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	router := gin.Default()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Printf("Warning: failed to set trusted proxies: %v", err)
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)

			authedAuth := authGroup.Group("/")
			authedAuth.Use(authMiddleware.RequireAuth())
			{
				authedAuth.GET("/profile", authHandler.Profile)
			}
		}

		// Создание пользователей с ролями (только администратор)
		adminUsers := api.Group("/users")
		adminUsers.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin))
		{
			adminUsers.POST("", authHandler.CreateUser)
		}

		// Анонимное отслеживание образца по коду
		api.GET("/track/:code", sampleHandler.TrackSample)

		// Конкурсы
		contests := api.Group("/contests")
		{
			contests.GET("", contestHandler.ListContests)

			adminContests := contests.Group("")
			adminContests.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleDirector))
			{
				adminContests.POST("", contestHandler.CreateContest)
			}

			contestWithID := contests.Group("/:id")
			contestWithID.Use(middleware.ExtractUintParam("id", "contestID"))
			{
				contestWithID.GET("", contestHandler.GetContest)
				contestWithID.GET("/ranking", rankingHandler.GetRanking)

				authedContest := contestWithID.Group("")
				authedContest.Use(authMiddleware.RequireAuth())
				{
					authedContest.GET("/samples", sampleHandler.ListContestSamples)
				}

				directorContest := contestWithID.Group("")
				directorContest.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleDirector))
				{
					directorContest.PUT("/final-stage", contestHandler.OpenFinalStage)
					directorContest.GET("/ranking/export/csv", rankingHandler.ExportRankingCSV)
					directorContest.GET("/ranking/export/xlsx", rankingHandler.ExportRankingXLSX)
				}
			}
		}

		// Образцы
		samples := api.Group("/samples")
		samples.Use(authMiddleware.RequireAuth())
		{
			samples.POST("", sampleHandler.CreateSample)
			samples.GET("/my", sampleHandler.ListMySamples)

			sampleWithID := samples.Group("/:id")
			sampleWithID.Use(middleware.ExtractUintParam("id", "sampleID"))
			{
				sampleWithID.GET("", sampleHandler.GetSample)
				sampleWithID.PUT("", sampleHandler.UpdateSample)
				sampleWithID.POST("/submit", sampleHandler.SubmitSample)
				sampleWithID.GET("/progress", assignmentHandler.GetProgress)

				// Прием образца и физическая оценка
				staffSample := sampleWithID.Group("")
				staffSample.Use(authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleDirector, entity.RoleJudge))
				{
					staffSample.POST("/receive", sampleHandler.ReceiveSample)
					staffSample.POST("/physical", evaluationHandler.SubmitPhysical)
					staffSample.GET("/physical", evaluationHandler.GetPhysical)
					staffSample.GET("/final", evaluationHandler.ListFinal)
				}

				// Сенсорная и финальная оценка (только судьи)
				judgeSample := sampleWithID.Group("")
				judgeSample.Use(authMiddleware.RequireRole(entity.RoleJudge))
				{
					judgeSample.POST("/sensory", evaluationHandler.SubmitSensory)
					judgeSample.GET("/sensory/my", evaluationHandler.GetMySensory)
					judgeSample.DELETE("/sensory", evaluationHandler.DeleteSensory)
					judgeSample.POST("/sensory/start", assignmentHandler.StartEvaluation)
					judgeSample.POST("/final", evaluationHandler.SubmitFinal)
				}

				directorSample := sampleWithID.Group("")
				directorSample.Use(authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleDirector))
				{
					directorSample.GET("/sensory", evaluationHandler.ListSensory)
				}
			}
		}

		// Назначения судей
		assignments := api.Group("/assignments")
		assignments.Use(authMiddleware.RequireAuth())
		{
			assignments.GET("/my", authMiddleware.RequireRole(entity.RoleJudge), assignmentHandler.ListMyAssignments)

			directorAssignments := assignments.Group("")
			directorAssignments.Use(authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleDirector))
			{
				directorAssignments.POST("", assignmentHandler.AssignJudges)
			}
		}

		// Уведомления получателя
		notifications := api.Group("/notifications")
		notifications.Use(authMiddleware.RequireAuth())
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.PUT("/read-all", notificationHandler.MarkAllRead)

			notificationWithID := notifications.Group("/:id")
			notificationWithID.Use(middleware.ExtractUintParam("id", "notificationID"))
			{
				notificationWithID.PUT("/read", notificationHandler.MarkRead)
				notificationWithID.DELETE("", notificationHandler.DeleteNotification)
			}
		}
	}

	// WebSocket маршрут
	router.GET("/ws", wsHandler.HandleConnection)

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ожидаем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
