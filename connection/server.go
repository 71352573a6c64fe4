package connection

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assignmenthub/controller/assignment"
	"assignmenthub/controller/submission"
	"assignmenthub/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func StartServer() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := DBConnection()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	authClient, firestoreClient, err := FBConnection(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	var verifier middleware.TokenVerifier
	if authClient != nil {
		verifier = middleware.NewFirebaseVerifier(authClient)
	} else {
		log.Println("FB_SERVICE_KEY not set, verifying tokens with JWT_SECRET_KEY")
		verifier = middleware.HMACVerifier{}
	}

	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Assignment hub server is cooking"})
	})

	assignment.AssignmentController(router, db, verifier)
	assignment.CreateAssignmentController(router, db, verifier)
	assignment.UpdateAssignmentController(router, db, verifier)
	assignment.DeleteAssignmentController(router, db, verifier)

	submission.SubmissionController(router, db, firestoreClient, verifier)
	submission.CreateSubmissionController(router, db, firestoreClient, verifier)
	submission.EvaluateSubmissionController(router, db, firestoreClient, verifier)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Assignment hub server running on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	if firestoreClient != nil {
		firestoreClient.Close()
	}
}
