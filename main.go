package main

import (
	"log"
	"os"
	"time"

	"api-bloommarbella-go/config"
	"api-bloommarbella-go/controllers"
	"api-bloommarbella-go/jobs"
	"api-bloommarbella-go/models"
	"api-bloommarbella-go/nieuwkoop"
	"api-bloommarbella-go/routes"
	"api-bloommarbella-go/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()
	r := gin.Default()

	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Database
	config.ConnectDB()
	config.DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Setting{},
		&models.SyncLog{},
		&models.Translation{},
		&models.AssociateRequest{},
	)

	// Redis for asynq + the sync lock
	config.InitRedis()

	// Cloudinary (optional: without it the image proxy streams directly)
	if err := utils.InitCloudinary(); err != nil {
		log.Printf("Cloudinary disabled: %v", err)
	}

	// Supplier client
	controllers.Supplier = nieuwkoop.NewClientFromEnv()

	// Worker + periodic sync goroutines
	go startWorker()
	go schedulePeriodicSync()

	// Routes
	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Server running on 0.0.0.0:" + port)
	r.Run(":" + port)
}

func redisOpt() asynq.RedisClientOpt {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}
	return asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	}
}

func startWorker() {
	srv := asynq.NewServer(redisOpt(), asynq.Config{
		Concurrency: 2,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.Handle(jobs.TaskCatalogSync, jobs.NewCatalogSyncProcessor(config.DB, config.RDB, controllers.Supplier))

	if err := srv.Run(mux); err != nil {
		log.Printf("Worker stopped: %v", err)
	}
}

// schedulePeriodicSync enqueues an incremental sync every hour. The job's
// redis lock keeps it out of the way of admin-triggered full syncs.
func schedulePeriodicSync() {
	interval := time.Hour
	if raw := os.Getenv("SYNC_INTERVAL_MINUTES"); raw != "" {
		if d, err := time.ParseDuration(raw + "m"); err == nil && d > 0 {
			interval = d
		}
	}

	client := asynq.NewClient(redisOpt())
	defer client.Close()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		task, err := jobs.NewCatalogSyncTask(false)
		if err != nil {
			log.Printf("Failed to build sync task: %v", err)
			continue
		}
		if _, err := client.Enqueue(task); err != nil {
			log.Printf("Failed to enqueue sync task: %v", err)
		}
	}
}
