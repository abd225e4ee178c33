package controllers

import (
	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/pkg"
	"github.com/DedS3t/monopoly-engine/platform/database"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

func CreateGame(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	gameCreateDto := new(models.GameCreateDto)
	if err := c.BodyParser(gameCreateDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	game := &models.Game{
		Id:     pkg.RandString(8),
		Name:   gameCreateDto.Name,
		Status: "open",
	}

	if _, err := db.Model(game).Insert(); err != nil {
		log.WithError(err).Error("failed creating game")
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(fiber.Map{"id": game.Id})
}

func GetAllAvailGames(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	var games []models.Game
	if err := db.Model(&games).Where("status = ?", "open").Select(); err != nil {
		log.WithError(err).Error("failed listing games")
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(games)
}

// FindAvailGame picks one joinable game, for the quick-play button.
func FindAvailGame(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	game := new(models.Game)
	err := db.Model(game).Where("status = ?", "open").Limit(1).Select()
	if err != nil {
		return c.JSON(fiber.Map{"status": false})
	}
	return c.JSON(fiber.Map{"status": true, "id": game.Id})
}

func VerifyGame(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	verifyGameDto := new(models.VerifyGameDto)
	if err := c.QueryParser(verifyGameDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	game := &models.Game{Id: verifyGameDto.Code}
	if err := db.Model(game).WherePK().Select(); err != nil {
		return c.JSON(fiber.Map{"status": false})
	}
	return c.JSON(fiber.Map{"status": true})
}
