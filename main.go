package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	"batch-gateway-server/handlers"
	"batch-gateway-server/middleware"
	"batch-gateway-server/services"

	_ "batch-gateway-server/docs"
)

// @title BatchGate API
// @version 1.0
// @description Batch invocation execution gateway API
// @host localhost:8080
// @BasePath /api
func main() {
	// Config
	redisHost := getEnv("REDIS_HOST", "localhost")
	redisPort, _ := strconv.Atoi(getEnv("REDIS_PORT", "6379"))
	serverPort := getEnv("SERVER_PORT", "8080")

	// PostgreSQL Config
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	dbUser := getEnv("DB_USER", "batchgate")
	dbPassword := getEnv("DB_PASSWORD", "batchgate")
	dbName := getEnv("DB_NAME", "batchgate")

	// Payload store Config
	storeType := getEnv("PAYLOAD_STORE_TYPE", "local")
	storePath := getEnv("PAYLOAD_STORE_PATH", "/data/payloads")

	// Initialize services
	dbService, err := services.NewDBService(dbHost, dbPort, dbUser, dbPassword, dbName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbService.Close()

	// Initialize database schema
	if err := dbService.InitSchema(context.Background()); err != nil {
		log.Fatalf("Failed to initialize database schema: %v", err)
	}
	log.Println("Database schema initialized")

	// Initialize payload store
	payloadStore, err := services.NewPayloadStore(storeType, storePath)
	if err != nil {
		log.Fatalf("Failed to initialize payload store: %v", err)
	}
	log.Printf("Payload store initialized: %s (%s)", storeType, storePath)

	// Initialize Redis service (queue endpoint transport)
	redisService := services.NewRedisService(redisHost, redisPort)

	// Dispatcher is the host invocation primitive behind all batch runs
	dispatcher := services.NewDispatcher(dbService, redisService, middleware.GetXRayHTTPClient())

	batchService := services.NewBatchService(dbService, payloadStore, dispatcher)
	endpointService := services.NewEndpointService(dbService)
	scheduleService := services.NewScheduleService(dbService)

	// Scheduled batches
	scheduleRunner := services.NewScheduleRunner(scheduleService, batchService)
	scheduleRunner.Start()
	defer scheduleRunner.Stop()

	// Initialize handlers
	batchHandler := handlers.NewBatchHandler(batchService)
	endpointHandler := handlers.NewEndpointHandler(endpointService)
	payloadHandler := handlers.NewPayloadHandler(payloadStore)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName: "BatchGate",
	})

	// Middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(middleware.XRayMiddleware())

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health endpoints
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "UP"})
	})

	// API routes
	api := app.Group("/api")

	// Endpoint registry
	api.Post("/endpoints", endpointHandler.CreateEndpoint)
	api.Get("/endpoints", endpointHandler.ListEndpoints)
	api.Get("/endpoints/:id", endpointHandler.GetEndpoint)
	api.Delete("/endpoints/:id", endpointHandler.DeleteEndpoint)

	// Batch runs: {execute, query} x {atomic, best-effort}
	api.Post("/batches/execute", batchHandler.Execute)
	api.Post("/batches/try-execute", batchHandler.TryExecute)
	api.Post("/batches/query", batchHandler.Query)
	api.Post("/batches/try-query", batchHandler.TryQuery)
	api.Get("/batches", batchHandler.ListRuns)
	api.Get("/batches/:id", batchHandler.GetRun)

	// Payload blobs
	api.Post("/payloads", payloadHandler.UploadPayload)
	api.Get("/payloads/*", payloadHandler.GetPayload)
	api.Delete("/payloads/*", payloadHandler.DeletePayload)

	// Schedules
	api.Post("/schedules", scheduleHandler.CreateSchedule)
	api.Get("/schedules", scheduleHandler.ListSchedules)
	api.Delete("/schedules/:scheduleId", scheduleHandler.DeleteSchedule)

	log.Printf("BatchGate Server starting on port %s", serverPort)
	log.Printf("Database: %s:%d/%s", dbHost, dbPort, dbName)
	log.Printf("Redis: %s:%d", redisHost, redisPort)
	log.Fatal(app.Listen(":" + serverPort))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
