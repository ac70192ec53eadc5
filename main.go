package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"smart-parking/database"
	"smart-parking/database/seeders"
	"smart-parking/logger"
	"smart-parking/routes"
	"smart-parking/store"
)

func main() {
	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
	})
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
		fmt.Println("Error loading .env file", err)
	}

	db, err := database.InitDB()
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return
	}

	st := store.NewGormStore(db)
	if err := seeders.SeedDemoData(context.Background(), st); err != nil {
		logger.Error("Failed to seed demo data", err)
		return
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("FRONTEND_URL"),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	routes.SetupRoutes(app, db)

	appHost := os.Getenv("APP_HOST")
	appPort := os.Getenv("APP_PORT")
	logger.Success("Server is running on ip: " + appHost + " port: " + appPort)
	if err := app.Listen(appHost + ":" + appPort); err != nil {
		logger.Error("Server stopped", err)
	}
}
