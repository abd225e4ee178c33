package socket

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/cache"
	"github.com/DedS3t/monopoly-engine/platform/database"
	"github.com/DedS3t/monopoly-engine/platform/engine"
	"github.com/DedS3t/monopoly-engine/platform/queries"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

func parse(jsonStr string) map[string]string {
	var result map[string]string
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return map[string]string{}
	}
	return result
}

func CreateSocketIOServer() {

	server, err := socketio.NewServer(nil)
	if err != nil {
		panic(err)
	}
	db := database.PostgreSQLConnection()
	defer db.Close()

	pool := cache.CreateRedisPool()
	defer pool.Close()

	sessions := NewSessions()

	// journal cursor per game; only touched under the session lock
	seen := make(map[string]int)

	// broadcast the full game view plus whose turn it is; called after
	// every state-changing event.
	sync := func(game_id string, g *engine.Game) {
		evs := g.Events(seen[game_id])
		seen[game_id] += len(evs)
		for _, ev := range evs {
			if ev.Action == "bankrupt" {
				server.BroadcastToRoom("/", game_id, "player-bankrupt", ev.Player)
			}
		}
		snap, err := json.Marshal(g.Snapshot())
		if err != nil {
			log.WithError(err).Error("snapshot marshal failed")
			return
		}
		server.BroadcastToRoom("/", game_id, "game-state", string(snap))
		server.BroadcastToRoom("/", game_id, "change-turn", g.CurrentPlayer())
		if d := g.PendingDecision(); d != nil {
			payload, _ := json.Marshal(d)
			server.BroadcastToRoom("/", game_id, "pending-decision", string(payload))
		}
		if g.Phase() == engine.GameOver {
			winner, _ := g.Winner()
			server.BroadcastToRoom("/", game_id, "game-over", winner)
			// sync runs with the session locked; drop it once released
			go func() {
				sessions.Drop(game_id)
				conn := pool.Get()
				defer conn.Close()
				queries.CleanUp(game_id, db, &conn)
			}()
		}
	}

	// run a guarded engine command and re-broadcast on success.
	act := func(s socketio.Conn, game_id string, fn func(*engine.Game) error) {
		err := sessions.With(game_id, func(g *engine.Game) error {
			if err := fn(g); err != nil {
				return err
			}
			sync(game_id, g)
			return nil
		})
		if err != nil {
			s.Emit("error-message", err.Error())
		}
	}

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		return nil
	})

	server.OnEvent("/", "join-game", func(s socketio.Conn, jsonStr string) {
		result := parse(jsonStr)
		game_id, ok := result["game_id"]
		if !ok {
			s.Emit("error-message", "game_id not passed")
			return
		}
		if !queries.VerifyGame(game_id, db) {
			s.Emit("error-message", "Invalid game")
			s.Emit("failed")
			return
		}
		user_id, ok := result["user_id"]
		if !ok {
			s.Emit("error-message", "User not authenticated")
			s.Emit("failed")
			return
		}

		user, err := queries.GetUserData(user_id, db)
		if err != nil {
			s.Emit("error-message", "User retrieval failed")
			s.Emit("failed")
			return
		}
		err = queries.CreatePlayer(models.Player{
			Game_id:  game_id,
			User_id:  user_id,
			Username: user.Email,
		}, db)
		if err != nil {
			log.WithError(err).Error("failed creating player")
			s.Emit("error-message", "Failed creating player")
			s.Emit("failed")
			return
		}

		server.BroadcastToRoom("/", game_id, "player-join")
		s.Join(game_id)
		s.Emit("joined-game", strconv.Itoa(server.RoomLen("/", game_id)))
		log.WithFields(log.Fields{"socket": s.ID(), "game": game_id}).Info("player joined")
	})

	server.OnEvent("/", "leave-game", func(s socketio.Conn, jsonStr string) {
		result := parse(jsonStr)
		game_id := result["game_id"]
		user_id := result["user_id"]

		s.Leave(game_id)
		server.BroadcastToRoom("/", game_id, "player-left", user_id)

		// if the game already started, leaving means resigning
		sessions.With(game_id, func(g *engine.Game) error {
			if err := g.Resign(user_id); err != nil {
				return nil
			}
			sync(game_id, g)
			return nil
		})

		conn := pool.Get()
		defer conn.Close()
		if err := queries.DeletePlayer(user_id, game_id, db, &conn); err != nil {
			log.WithError(err).Warn("failed deleting player")
		}
	})

	server.OnEvent("/", "start-game", func(s socketio.Conn, game_id string) {
		conn := pool.Get()
		defer conn.Close()

		seats, err := queries.StartGame(game_id, db, &conn)
		if err != nil {
			s.Emit("error-message", "Unable to start game")
			log.WithError(err).WithField("game", game_id).Warn("failed to start game")
			return
		}
		g, err := engine.New(game_id, seats, engine.DefaultConfig())
		if err != nil {
			s.Emit("error-message", "Unable to start game")
			return
		}
		sessions.Put(g)

		seatJson, _ := json.Marshal(seats)
		server.BroadcastToRoom("/", game_id, "game-start", string(seatJson))
		sessions.With(game_id, func(g *engine.Game) error {
			sync(game_id, g)
			return nil
		})
	})

	server.OnEvent("/", "roll-dice", func(s socketio.Conn, jsonStr string) {
		result := parse(jsonStr)
		game_id := result["game_id"]
		user_id := result["user_id"]

		err := sessions.With(game_id, func(g *engine.Game) error {
			res, err := g.Roll(user_id)
			if err != nil {
				return err
			}
			payload, _ := json.Marshal(res)
			server.BroadcastToRoom("/", game_id, "dice-rolled", string(payload))
			if res.Card != nil {
				cardJson, _ := json.Marshal(res.Card)
				server.BroadcastToRoom("/", game_id, "card-drawn", string(cardJson))
			}
			sync(game_id, g)
			return nil
		})
		if err != nil {
			s.Emit("error-message", err.Error())
		}
	})

	server.OnEvent("/", "request-buy", func(s socketio.Conn, jsonStr string) {
		result := parse(jsonStr)
		act(s, result["game_id"], func(g *engine.Game) error {
			return g.Buy(result["user_id"])
		})
	})

	server.OnEvent("/", "decline-buy", func(s socketio.Conn, jsonStr string) {
		result := parse(jsonStr)
		act(s, result["game_id"], func(g *engine.Game) error {
			return g.Decline(result["user_id"])
		})
	})

	server.OnEvent("/", "buy-house", func(s socketio.Conn, jsonStr string) {
		result := parse(jsonStr)
		pos, err := strconv.Atoi(result["pos"])
		if err != nil {
			s.Emit("error-message", "Invalid position")
			return
		}
		act(s, result["game_id"], func(g *engine.Game) error {
			return g.BuildHouse(result["user_id"], pos)
		})
	})

	server.OnEvent("/", "sell-house", func(s socketio.Conn, jsonStr string) {
		result := parse(jsonStr)
		pos, err := strconv.Atoi(result["pos"])
		if err != nil {
			s.Emit("error-message", "Invalid position")
			return
		}
		act(s, result["game_id"], func(g *engine.Game) error {
			return g.SellHouse(result["user_id"], pos)
		})
	})

	server.OnEvent("/", "mortgage", func(s socketio.Conn, jsonStr string) {
		result := parse(jsonStr)
		pos, err := strconv.Atoi(result["pos"])
		if err != nil {
			s.Emit("error-message", "Invalid position")
			return
		}
		act(s, result["game_id"], func(g *engine.Game) error {
			return g.Mortgage(result["user_id"], pos)
		})
	})

	server.OnEvent("/", "unmortgage", func(s socketio.Conn, jsonStr string) {
		result := parse(jsonStr)
		pos, err := strconv.Atoi(result["pos"])
		if err != nil {
			s.Emit("error-message", "Invalid position")
			return
		}
		act(s, result["game_id"], func(g *engine.Game) error {
			return g.Unmortgage(result["user_id"], pos)
		})
	})

	server.OnEvent("/", "pay-out-jail", func(s socketio.Conn, jsonStr string) {
		result := parse(jsonStr)
		act(s, result["game_id"], func(g *engine.Game) error {
			return g.PayBail(result["user_id"])
		})
	})

	server.OnEvent("/", "use-jail-card", func(s socketio.Conn, jsonStr string) {
		result := parse(jsonStr)
		act(s, result["game_id"], func(g *engine.Game) error {
			return g.UseJailCard(result["user_id"])
		})
	})

	server.OnEvent("/", "settle-debt", func(s socketio.Conn, jsonStr string) {
		result := parse(jsonStr)
		act(s, result["game_id"], func(g *engine.Game) error {
			return g.SettleDebt(result["user_id"])
		})
	})

	server.OnEvent("/", "propose-trade", func(s socketio.Conn, jsonStr string) {
		var dto models.TradeDto
		if err := json.Unmarshal([]byte(jsonStr), &dto); err != nil {
			s.Emit("error-message", "Invalid trade")
			return
		}
		err := sessions.With(dto.Game_id, func(g *engine.Game) error {
			prop, err := g.ProposeTrade(dto.User_id, dto.Counterparty, dto.Give, dto.Take, dto.GiveCash, dto.TakeCash)
			if err != nil {
				return err
			}
			payload, _ := json.Marshal(prop)
			server.BroadcastToRoom("/", dto.Game_id, "trade-proposed", string(payload))
			return nil
		})
		if err != nil {
			s.Emit("error-message", err.Error())
		}
	})

	server.OnEvent("/", "accept-trade", func(s socketio.Conn, jsonStr string) {
		result := parse(jsonStr)
		act(s, result["game_id"], func(g *engine.Game) error {
			return g.AcceptTrade(result["user_id"], result["proposal_id"])
		})
	})

	server.OnEvent("/", "reject-trade", func(s socketio.Conn, jsonStr string) {
		result := parse(jsonStr)
		act(s, result["game_id"], func(g *engine.Game) error {
			return g.RejectTrade(result["user_id"], result["proposal_id"])
		})
	})

	server.OnEvent("/", "cancel-trade", func(s socketio.Conn, jsonStr string) {
		result := parse(jsonStr)
		act(s, result["game_id"], func(g *engine.Game) error {
			return g.CancelTrade(result["user_id"], result["proposal_id"])
		})
	})

	server.OnEvent("/", "end-turn", func(s socketio.Conn, jsonStr string) {
		result := parse(jsonStr)
		act(s, result["game_id"], func(g *engine.Game) error {
			return g.EndTurn(result["user_id"])
		})
	})

	server.OnEvent("/", "game-state", func(s socketio.Conn, game_id string) {
		err := sessions.With(game_id, func(g *engine.Game) error {
			snap, err := json.Marshal(g.Snapshot())
			if err != nil {
				return err
			}
			s.Emit("game-state", string(snap))
			return nil
		})
		if err != nil {
			s.Emit("error-message", err.Error())
		}
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		log.WithError(e).Error("socket error")
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		for _, room := range s.Rooms() {
			server.BroadcastToRoom("/", room, "player-left")
		}
		s.LeaveAll()
	})

	go server.Serve()
	defer server.Close()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", server)
	http.ListenAndServe(":8000", c.Handler(mux))
}
