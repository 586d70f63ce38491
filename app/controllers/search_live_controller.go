package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/upahaar/upahaar/app/catalog"
	"github.com/upahaar/upahaar/pkg/logger"
	"github.com/upahaar/upahaar/pkg/ws"
)

// searchTimeout bounds each live lookup so a slow store cannot stall the
// hub's event loop consumer.
const searchTimeout = 3 * time.Second

type liveSearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type liveSearchResponse struct {
	Query       string               `json:"query"`
	Suggestions []catalog.SearchItem `json:"suggestions"`
	Similar     []catalog.SearchItem `json:"similar"`
	Error       string               `json:"error,omitempty"`
}

// SearchLiveController serves GET /products/search/live, a WebSocket that
// answers each typed prefix with the same suggestion/similar pair as the
// HTTP search endpoint.
type SearchLiveController struct {
	autocomplete *catalog.Autocomplete
	hub          *ws.Hub
}

func NewSearchLiveController(store catalog.Store) *SearchLiveController {
	sc := &SearchLiveController{
		autocomplete: catalog.NewAutocomplete(store),
		hub:          ws.NewHub(),
	}
	sc.hub.OnMessage = sc.handleMessage
	go sc.hub.Run()
	return sc
}

// Connect upgrades the request to a WebSocket on the live search hub.
func (sc *SearchLiveController) Connect(w http.ResponseWriter, r *http.Request) {
	ws.Upgrade(w, r, sc.hub)
}

func (sc *SearchLiveController) handleMessage(_ *ws.Hub, msg ws.Message) {
	var req liveSearchRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		sc.reply(msg.Client, liveSearchResponse{Error: "invalid request"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	result, err := sc.autocomplete.Search(ctx, req.Query, req.Limit)
	if err != nil {
		logger.Error("live search", "error", err, "query", req.Query)
		sc.reply(msg.Client, liveSearchResponse{Query: req.Query, Error: "search failed"})
		return
	}

	sc.reply(msg.Client, liveSearchResponse{
		Query:       req.Query,
		Suggestions: result.Suggestions,
		Similar:     result.Similar,
	})
}

func (sc *SearchLiveController) reply(client *ws.Client, resp liveSearchResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	client.Send(data)
}
