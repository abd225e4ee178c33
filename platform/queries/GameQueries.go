package queries

import (
	"fmt"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/cache"
	"github.com/DedS3t/monopoly-engine/platform/engine"
	"github.com/go-pg/pg/v10"
	"github.com/gomodule/redigo/redis"
	log "github.com/sirupsen/logrus"
)

func VerifyGame(id string, db *pg.DB) bool {
	game := &models.Game{Id: id}
	return db.Model(game).WherePK().Select() == nil
}

func GetUserData(user_id string, db *pg.DB) (*models.User, error) {
	user := &models.User{Id: user_id}
	if err := db.Model(user).WherePK().Select(); err != nil {
		return nil, err
	}
	return user, nil
}

func CreatePlayer(player models.Player, db *pg.DB) error {
	_, err := db.Model(&player).Insert()
	return err
}

// DeletePlayer removes a player from the lobby. When the last player
// leaves, the game row and its redis keys are pruned.
func DeletePlayer(user_id string, game_id string, db *pg.DB, conn *redis.Conn) error {
	player := new(models.Player)
	if _, err := db.Model(player).Where("user_id = ? and game_id = ?", user_id, game_id).Delete(); err != nil {
		return err
	}

	if err := cache.LREM(fmt.Sprintf("%s.order", game_id), user_id, conn); err != nil {
		log.WithError(err).WithField("game", game_id).Warn("seat order removal failed")
	}

	length, err := cache.LLEN(fmt.Sprintf("%s.order", game_id), conn)
	if err == nil && length == 0 {
		CleanUp(game_id, db, conn)
	}
	return nil
}

// StartGame loads the seated players, marks the game row in progress and
// records the seat order in redis. It returns the seats in play order.
func StartGame(game_id string, db *pg.DB, conn *redis.Conn) ([]engine.Seat, error) {
	var players []models.Player
	if err := db.Model(&players).Where("game_id = ?", game_id).Select(); err != nil {
		return nil, err
	}
	if len(players) < 2 {
		return nil, fmt.Errorf("game %s needs at least 2 players, has %d", game_id, len(players))
	}

	seats := make([]engine.Seat, 0, len(players))
	ids := make([]interface{}, 0, len(players))
	for _, player := range players {
		seats = append(seats, engine.Seat{ID: player.User_id, Name: player.Username})
		ids = append(ids, player.User_id)
	}
	if err := cache.RPUSH(fmt.Sprintf("%s.order", game_id), ids, conn); err != nil {
		return nil, err
	}

	game := &models.Game{Id: game_id}
	if _, err := db.Model(game).WherePK().Set("status = ?", "in progress").Update(); err != nil {
		return nil, err
	}
	return seats, nil
}

// SeatOrder returns the user ids in play order for a started game.
func SeatOrder(game_id string, conn *redis.Conn) ([]string, error) {
	return cache.LGET(fmt.Sprintf("%s.order", game_id), conn)
}

// CleanUp deletes a finished or abandoned game from postgres and redis.
func CleanUp(game_id string, db *pg.DB, conn *redis.Conn) {
	player := new(models.Player)
	game := new(models.Game)
	if _, err := db.Model(player).Where("game_id = ?", game_id).Delete(); err != nil {
		log.WithError(err).WithField("game", game_id).Warn("player cleanup failed")
	}
	if _, err := db.Model(game).Where("id = ?", game_id).Delete(); err != nil {
		log.WithError(err).WithField("game", game_id).Warn("game cleanup failed")
	}
	cache.Del(game_id, conn)
	cache.Del(fmt.Sprintf("%s.order", game_id), conn)
}
