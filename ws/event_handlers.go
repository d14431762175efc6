package ws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/judgegodwins/wikirace/game"
	"github.com/judgegodwins/wikirace/util"
)

// decodePayload unmarshals and validates the payload of e into dst.
func decodePayload(e Event, dst any) error {
	if err := json.Unmarshal(e.Payload, dst); err != nil {
		return fmt.Errorf("invalid %s payload", e.Type)
	}

	if err := util.Validate.Struct(dst); err != nil {
		return fmt.Errorf("invalid %s payload: %w", e.Type, err)
	}

	return nil
}

func CreateRoom(ctx context.Context, e Event, c *Client) error {
	var payload PayloadCreateRoom

	if err := decodePayload(e, &payload); err != nil {
		return err
	}

	mode, err := game.ParseMode(payload.GameMode)

	if err != nil {
		return err
	}

	outcome, err := c.manager.registry.Create(ctx, c.ID, payload.PlayerName, mode)

	if err != nil {
		return err
	}

	c.manager.publish(outcome.Room.ID, outcome, c)

	abandonIfGone(ctx, c, outcome.Room.ID)

	return nil
}

func JoinRoom(ctx context.Context, e Event, c *Client) error {
	var payload PayloadJoinRoom

	if err := decodePayload(e, &payload); err != nil {
		return err
	}

	// Subscribe first so broadcasts made right after the roster changes
	// already reach the joiner.
	subscribed := c.Subscribed(payload.RoomID)
	if !subscribed {
		c.Join(payload.RoomID)
	}

	if err := dispatch(ctx, c, payload.RoomID, game.Join{PlayerName: payload.PlayerName}); err != nil {
		if !subscribed {
			c.Leave(payload.RoomID)
		}
		return err
	}

	return nil
}

func StartGame(ctx context.Context, e Event, c *Client) error {
	var payload PayloadRoom

	if err := decodePayload(e, &payload); err != nil {
		return err
	}

	return dispatch(ctx, c, payload.RoomID, game.Start{})
}

func SelectPage(ctx context.Context, e Event, c *Client) error {
	var payload PayloadSelectPage

	if err := decodePayload(e, &payload); err != nil {
		return err
	}

	return dispatch(ctx, c, payload.RoomID, game.SelectPage{
		PageName:          payload.PageName,
		UseContinuousTurn: payload.UseContinuousTurn,
	})
}

func LeaveRoom(ctx context.Context, e Event, c *Client) error {
	var payload PayloadRoom

	if err := decodePayload(e, &payload); err != nil {
		return err
	}

	return dispatch(ctx, c, payload.RoomID, game.Leave{})
}

func dispatch(ctx context.Context, c *Client, roomID string, action game.Action) error {
	outcome, err := c.manager.registry.Dispatch(ctx, roomID, c.ID, action)

	if err != nil {
		return err
	}

	c.manager.publish(roomID, outcome, c)

	if outcome.Kind == game.EventPlayerJoined {
		abandonIfGone(ctx, c, roomID)
	}

	return nil
}

// abandonIfGone takes c back out of roomID when the connection was removed
// while its action was in flight, since that removal could not see the seat.
func abandonIfGone(ctx context.Context, c *Client, roomID string) {
	if c.manager.hasClient(c.ID) {
		return
	}

	c.Leave(roomID)

	outcome, err := c.manager.registry.Dispatch(ctx, roomID, c.ID, game.Leave{})
	if err != nil {
		return
	}

	c.manager.publish(roomID, outcome, nil)
}
