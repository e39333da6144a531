/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Globetrotter question feed
//
// A websocket alternative to the HTTP endpoints, for clients that play many
// rounds in a row. Every message is answered on its own; the server keeps no
// score and no per-connection game state.
//
// Client messages:
//   - {"type":"next","exclude_city":"...","exclude_country":"..."}
//   - {"type":"guess","city":"...","country":"...","answer":"..."}
//
// Server messages:
//   - {"type":"destination", city, country, clues, fun_fact, trivia, options, selected_clues}
//   - {"type":"guess_result", correct, answer, fact}
//   - {"type":"error", message}

package main

import (
	"log"
	"net/http"
	"time"

	"github.com/Seednode/globetrotter/destinations"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Messages coming from clients
type FeedRequest struct {
	Type           string `json:"type"`                      // "next", "guess"
	ExcludeCity    string `json:"exclude_city,omitempty"`    // next
	ExcludeCountry string `json:"exclude_country,omitempty"` // next
	City           string `json:"city,omitempty"`            // guess
	Country        string `json:"country,omitempty"`         // guess
	Answer         string `json:"answer,omitempty"`          // guess
}

// DestinationMessage carries a new question, with the clues to show already
// sampled.
type DestinationMessage struct {
	Type string `json:"type"` // "destination"
	destinations.Result
	SelectedClues []string `json:"selected_clues"`
}

// GuessResultMessage answers a single guess.
type GuessResultMessage struct {
	Type string `json:"type"` // "guess_result"
	destinations.GuessResult
}

// ErrorMessage is sent when a request cannot be served.
type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

const (
	// A FeedRequest is a handful of short strings.
	maxFeedMessage = 4096

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type feedClient struct {
	conn *websocket.Conn
	send chan any
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func handleFeedRequest(cfg *Config, store *catalogStore, src destinations.Source, msg FeedRequest) any {
	switch msg.Type {
	case "next":
		exclude := destinations.Exclusion{
			City:    msg.ExcludeCity,
			Country: msg.ExcludeCountry,
		}

		result, err := nextDestination(store.Catalog(), exclude, src)
		if err != nil {
			logf(cfg, "FEED: Selecting destination: %v", err)

			return ErrorMessage{Type: "error", Message: loadFailure}
		}

		return DestinationMessage{
			Type:          "destination",
			Result:        result,
			SelectedClues: destinations.Clues(result.Destination, src),
		}

	case "guess":
		d, ok := store.Catalog().Find(destinations.Key(msg.City, msg.Country))
		if !ok {
			return ErrorMessage{Type: "error", Message: "Unknown destination"}
		}

		return GuessResultMessage{
			Type:        "guess_result",
			GuessResult: destinations.Check(d, msg.Answer, src),
		}

	default:
		return ErrorMessage{Type: "error", Message: "Unknown message type"}
	}
}

func serveFeed(cfg *Config, store *catalogStore, src destinations.Source) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		id := requestID(w, r)

		conn, err := upgrader.Upgrade(w, r, w.Header().Clone())
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		logf(cfg, "FEED: [%s] Connected %s", id, realIP(r))

		client := &feedClient{
			conn: conn,
			send: make(chan any, 8),
		}

		go client.writePump()
		client.readPump(cfg, store, src)

		logf(cfg, "FEED: [%s] Disconnected %s", id, realIP(r))
	}
}

func (c *feedClient) readPump(cfg *Config, store *catalogStore, src destinations.Source) {
	defer close(c.send)

	c.conn.SetReadLimit(maxFeedMessage)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg FeedRequest
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

		c.send <- handleFeedRequest(cfg, store, src, msg)
	}
}

// writePump pings the client every pingPeriod. It keeps draining send after a
// failed write, so readPump never blocks on a dead connection.
func (c *feedClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	failed := false
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}

			if failed {
				continue
			}

			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				failed = true
				_ = c.conn.Close()
			}
		case <-ticker.C:
			if failed {
				continue
			}

			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				failed = true
				_ = c.conn.Close()
			}
		}
	}
}
