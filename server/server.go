package server

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"treedb/server/routes"
)

// Server starts the HTTP API on the given port and blocks.
func Server(port int) {
	app := fiber.New()

	routes.SetupRoutes(app)

	addr := fmt.Sprintf(":%d", port)
	log.Printf("treedb listening on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatal(err)
	}
}
