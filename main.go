package main

import (
	"fmt"
	"log"
	"os"
	"templekovan-backend/config"
	"templekovan-backend/models"
	"templekovan-backend/routes"
	"templekovan-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()
	config.ConnectCache()

	config.DB.AutoMigrate(
		&models.User{},
		&models.PersonalInfo{},
		&models.PersonalInfoHistory{},
		&models.ServiceAdd{},
		&models.ServiceLimit{},
		&models.Booking{},
		&models.Post{},
		&models.Comment{},
		&models.NallaNeram{},
		&models.ReminderLog{},
	)
}

func main() {
	reminder := services.NewReminderService(config.DB)
	reminder.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
