package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/judgegodwins/wikirace/game"
)

type checkRoomRequest struct {
	RoomID string `uri:"id" binding:"required"`
}

type roomSummary struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	GameMode   game.Mode `json:"gameMode"`
	Players    int       `json:"players"`
	MaxPlayers int       `json:"maxPlayers"`
	Full       bool      `json:"full"`
}

// CheckRoom lets a client find out whether a room exists and can be joined
// before opening a socket.
func (s *Server) CheckRoom(c *gin.Context) {
	var data checkRoomRequest

	if err := c.ShouldBindUri(&data); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err.Error()))
		return
	}

	room, err := s.registry.Room(data.RoomID)

	if err != nil {
		abortWithError(c, err)
		return
	}

	maxPlayers := s.registry.Settings().MaxPlayers

	c.JSON(http.StatusOK, successResponse("room data", roomSummary{
		ID:         room.ID,
		Status:     room.Status.String(),
		GameMode:   room.GameMode,
		Players:    len(room.Players),
		MaxPlayers: maxPlayers,
		Full:       len(room.Players) >= maxPlayers,
	}))
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, successResponse("ok", s.registry.Stats()))
}
