package main

import (
	"os"

	"github.com/DedS3t/monopoly-engine/app/controllers"
	"github.com/DedS3t/monopoly-engine/pkg/routes"
	"github.com/DedS3t/monopoly-engine/platform/logging"
	socket "github.com/DedS3t/monopoly-engine/platform/sockets"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	logging.Init()

	app := fiber.New()

	app.Use(cors.New())
	routes.AuthRoutes(app)
	routes.GameRoutes(app)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "secret"
	}
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(secret),
	}))

	app.Get("/user/cur", controllers.Cur)
	go socket.CreateSocketIOServer()
	app.Listen(":4101")
}
