package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

type GameStatusResponse struct {
	Board         []int  `json:"board"`
	NextPlayer    string `json:"next_player"`
	Status        string `json:"status"`
	AwaitingReply bool   `json:"awaiting_reply"`
	LastMove      int    `json:"last_move"`
	WinningLine   []int  `json:"winning_line,omitempty"`
}

type calcEntryDTO struct {
	Expression  string  `json:"expression"`
	Result      float64 `json:"result"`
	TimestampMs int64   `json:"timestamp"`
}

type historyPayload struct {
	History []calcEntryDTO `json:"history"`
}

type calcResultResponse struct {
	Expression string         `json:"expression"`
	Result     float64        `json:"result"`
	History    []calcEntryDTO `json:"history"`
}

type todoItemDTO struct {
	ID          int64  `json:"id"`
	Text        string `json:"text"`
	Done        bool   `json:"done"`
	CreatedAtMs int64  `json:"created_at"`
}

func main() {
	cfg := LoadConfig()
	configStore.Update(cfg)

	kv, err := OpenKVStore(cfg.DatabasePath)
	if err != nil {
		log.Printf("[storage] unavailable, running in memory: %v", err)
		kv = nil
	}
	defer kv.Close()

	history := NewHistoryStore(kv)
	history.Load()
	todos := NewTodoStore(kv)
	todos.Load()
	hangman := NewHangmanController()
	controller := NewGameController()
	hub := NewHub()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx.Done())

	controller.SetChangePublisher(func() {
		hub.broadcastStatus <- gameStatus(controller)
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, GetConfig())
	})

	r.Post("/api/config", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			OpponentDelayMs *int `json:"opponent_delay_ms"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.OpponentDelayMs == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if *payload.OpponentDelayMs < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "opponent_delay_ms must not be negative"})
			return
		}
		updated := GetConfig()
		updated.OpponentDelayMs = *payload.OpponentDelayMs
		configStore.Update(updated)
		writeJSON(w, http.StatusOK, GetConfig())
	})

	r.Get("/api/game/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, gameStatus(controller))
	})

	r.Post("/api/game/move", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Cell int `json:"cell"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		applied, reason := controller.ApplyMove(payload.Cell)
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": reason})
			return
		}
		hub.broadcastStatus <- gameStatus(controller)
		writeJSON(w, http.StatusOK, gameStatus(controller))
	})

	r.Post("/api/game/reset", func(w http.ResponseWriter, r *http.Request) {
		controller.Reset()
		status := gameStatus(controller)
		hub.broadcastReset <- status
		writeJSON(w, http.StatusOK, status)
	})

	r.Post("/api/calc/eval", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Expression string `json:"expression"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		result, err := EvaluateExpression(payload.Expression)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		history.Append(payload.Expression, result)
		entries := historyToDTO(history.Entries())
		hub.broadcastHistory <- historyPayload{History: entries}
		writeJSON(w, http.StatusOK, calcResultResponse{
			Expression: payload.Expression,
			Result:     result,
			History:    entries,
		})
	})

	r.Get("/api/history", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, historyPayload{History: historyToDTO(history.Entries())})
	})

	r.Delete("/api/history", func(w http.ResponseWriter, r *http.Request) {
		history.Clear()
		hub.broadcastHistory <- historyPayload{History: []calcEntryDTO{}}
		writeJSON(w, http.StatusOK, map[string]bool{"cleared": true})
	})

	r.Post("/api/bmi", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			WeightKg float64 `json:"weight_kg"`
			HeightM  float64 `json:"height_m"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		bmi, category, err := ComputeBMI(payload.WeightKg, payload.HeightM)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"bmi": bmi, "category": category})
	})

	r.Post("/api/age", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			BirthDate string `json:"birth_date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		birth, err := time.Parse("2006-01-02", payload.BirthDate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "birth_date must be YYYY-MM-DD"})
			return
		}
		age, err := AgeOn(birth, time.Now())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"age": age})
	})

	r.Post("/api/temperature", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Value float64 `json:"value"`
			From  string  `json:"from"`
			To    string  `json:"to"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		converted, err := ConvertTemperature(payload.Value, payload.From, payload.To)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]float64{"value": converted})
	})

	r.Get("/api/ascii", func(w http.ResponseWriter, r *http.Request) {
		from, err := queryInt(r.URL.Query(), "from", asciiPrintableMin)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		to, err := queryInt(r.URL.Query(), "to", asciiPrintableMax)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		entries, err := ASCIIRange(from, to)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": entries})
	})

	r.Post("/api/hangman/start", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Word string `json:"word"`
		}
		// Body is optional; an empty start picks a random word.
		_ = json.NewDecoder(r.Body).Decode(&payload)
		writeJSON(w, http.StatusOK, hangman.Start(payload.Word))
	})

	r.Post("/api/hangman/guess", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Letter string `json:"letter"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		letter, size := utf8.DecodeRuneInString(payload.Letter)
		if size == 0 || len(payload.Letter) != size {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "letter must be a single character"})
			return
		}
		view, applied, reason := hangman.Guess(letter)
		if !applied && reason == "no round in progress" {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": reason})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"applied": applied, "reason": reason, "round": view})
	})

	r.Get("/api/hangman/status", func(w http.ResponseWriter, r *http.Request) {
		view, ok := hangman.View()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no round in progress"})
			return
		}
		writeJSON(w, http.StatusOK, view)
	})

	r.Get("/api/todos", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"items": todosToDTO(todos.Items())})
	})

	r.Post("/api/todos", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		item, ok := todos.Add(payload.Text)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
			return
		}
		writeJSON(w, http.StatusOK, todoToDTO(item))
	})

	r.Post("/api/todos/{id}/toggle", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
			return
		}
		item, ok := todos.Toggle(id)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
			return
		}
		writeJSON(w, http.StatusOK, todoToDTO(item))
	})

	r.Delete("/api/todos/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
			return
		}
		if !todos.Remove(id) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
	})

	r.Delete("/api/todos", func(w http.ResponseWriter, r *http.Request) {
		todos.Clear()
		writeJSON(w, http.StatusOK, map[string]bool{"cleared": true})
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, history, w, r)
	})

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Printf("backend listening on %s", cfg.Addr)
	var runErr error
	select {
	case <-sigCtx.Done():
		log.Printf("[backend] shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.Printf("[backend] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[backend] graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Printf("[backend] forced close failed: %v", closeErr)
		}
	}

	cancel()
	if runErr != nil {
		log.Printf("[backend] exiting after server error: %v", runErr)
	}
}

func serveWS(hub *Hub, controller *GameController, history *HistoryStore, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	snapshot := []wsMessage{
		{Type: "status", Payload: mustMarshal(gameStatus(controller))},
		{Type: "history", Payload: mustMarshal(historyPayload{History: historyToDTO(history.Entries())})},
	}
	go func() {
		defer conn.Close()
		if err := writeClientFrames(conn, snapshot, client.send); err != nil {
			return
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(gameStatus(controller))})
		case "request_history":
			client.sendJSON(wsMessage{Type: "history", Payload: mustMarshal(historyPayload{History: historyToDTO(history.Entries())})})
		}
	}
}

func gameStatus(controller *GameController) GameStatusResponse {
	state := controller.State()
	return GameStatusResponse{
		Board:         boardToSlice(state.Board),
		NextPlayer:    state.ToMove.String(),
		Status:        state.Status.String(),
		AwaitingReply: controller.AwaitingReply(),
		LastMove:      state.LastMove,
		WinningLine:   append([]int(nil), state.WinningLine...),
	}
}

func boardToSlice(board Board) []int {
	cells := make([]int, boardCells)
	for i := 0; i < boardCells; i++ {
		cells[i] = cellToInt(board.At(i))
	}
	return cells
}

func cellToInt(cell Cell) int {
	switch cell {
	case CellPlayer:
		return 1
	case CellOpponent:
		return 2
	default:
		return 0
	}
}

func historyToDTO(entries []CalcEntry) []calcEntryDTO {
	dtos := make([]calcEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, calcEntryDTO{
			Expression:  entry.Expression,
			Result:      entry.Result,
			TimestampMs: entry.Timestamp.UnixMilli(),
		})
	}
	return dtos
}

func todoToDTO(item TodoItem) todoItemDTO {
	return todoItemDTO{
		ID:          item.ID,
		Text:        item.Text,
		Done:        item.Done,
		CreatedAtMs: item.CreatedAt.UnixMilli(),
	}
}

func todosToDTO(items []TodoItem) []todoItemDTO {
	dtos := make([]todoItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, todoToDTO(item))
	}
	return dtos
}

func queryInt(values url.Values, key string, fallback int) (int, error) {
	raw := values.Get(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return value, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
