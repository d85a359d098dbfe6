package cli

import (
	"log"

	"github.com/doniphane/AcadyoquizzV2-deploy/internal/config"
	"github.com/doniphane/AcadyoquizzV2-deploy/internal/database"
	"github.com/doniphane/AcadyoquizzV2-deploy/internal/handlers"
	"github.com/doniphane/AcadyoquizzV2-deploy/internal/middleware"
	"github.com/doniphane/AcadyoquizzV2-deploy/internal/repository"
	"github.com/doniphane/AcadyoquizzV2-deploy/internal/services"

	_ "github.com/doniphane/AcadyoquizzV2-deploy/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewServeCmd builds the subcommand that starts the HTTP server.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	quizRepo := repository.NewQuestionnaireRepository(db)
	tentativeRepo := repository.NewTentativeRepository(db)
	userRepo := repository.NewUtilisateurRepository(db)

	codeGenerator := services.NewAccessCodeGenerator(quizRepo)
	validator := services.NewQuestionnaireValidator()

	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	quizService := services.NewQuizManagementService(quizRepo, tentativeRepo, validator, codeGenerator)
	questionService := services.NewQuestionService(db)
	attemptService := services.NewAttemptService(quizRepo, tentativeRepo)

	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService, authService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	participantHandler := handlers.NewParticipantHandler(quizService, attemptService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		quizzes := api.Group("/quizzes")
		quizzes.Use(middleware.JWTAuth(authService))
		{
			quizzes.GET("", quizHandler.ListQuizzes)
			quizzes.POST("", quizHandler.CreateQuiz)
			quizzes.GET("/:id", quizHandler.GetQuiz)
			quizzes.PUT("/:id", quizHandler.UpdateQuiz)
			quizzes.DELETE("/:id", quizHandler.DeleteQuiz)
			quizzes.POST("/:id/toggle", quizHandler.ToggleQuizStatus)
			quizzes.GET("/:id/attempts", quizHandler.GetQuizAttempts)
			quizzes.GET("/:id/attempts/:attemptId", quizHandler.GetAttemptDetails)
			quizzes.POST("/:id/questions", questionHandler.CreateQuestion)
		}

		questions := api.Group("/questions")
		questions.Use(middleware.JWTAuth(authService))
		{
			questions.PUT("/:id", questionHandler.UpdateQuestion)
			questions.DELETE("/:id", questionHandler.DeleteQuestion)
		}

		play := api.Group("/play")
		play.Use(middleware.OptionalJWTAuth(authService))
		{
			play.POST("/join", participantHandler.Join)
			play.POST("/submit", participantHandler.Submit)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	return r.Run(":" + cfg.ServerPort)
}
