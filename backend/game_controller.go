package main

import (
	"sync"
	"time"
)

// GameController serializes access to the game and schedules the opponent's
// deferred reply. The generation counter ties a scheduled reply to the round
// it was created for, so a reset in the delay window cancels it.
type GameController struct {
	mu         sync.Mutex
	game       Game
	replyTimer *time.Timer
	generation uint64
	onChange   func()
}

func NewGameController() *GameController {
	return &GameController{game: NewGame()}
}

// SetChangePublisher installs a callback invoked after the deferred opponent
// reply lands. It runs outside the controller lock.
func (gc *GameController) SetChangePublisher(publisher func()) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.onChange = publisher
}

func (gc *GameController) ApplyMove(cell int) (bool, string) {
	gc.mu.Lock()
	applied, reason := gc.game.TryApplyMove(cell)
	if applied && gc.game.AwaitingReply() {
		gc.scheduleReplyLocked()
	}
	gc.mu.Unlock()
	return applied, reason
}

func (gc *GameController) Reset() {
	gc.mu.Lock()
	gc.cancelReplyLocked()
	gc.game.Reset()
	gc.mu.Unlock()
}

func (gc *GameController) State() GameState {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State()
}

func (gc *GameController) AwaitingReply() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.AwaitingReply()
}

func (gc *GameController) scheduleReplyLocked() {
	generation := gc.generation
	delay := GetConfig().OpponentDelay()
	if delay <= 0 {
		go gc.playReply(generation)
		return
	}
	gc.replyTimer = time.AfterFunc(delay, func() {
		gc.playReply(generation)
	})
}

func (gc *GameController) cancelReplyLocked() {
	gc.generation++
	if gc.replyTimer != nil {
		gc.replyTimer.Stop()
		gc.replyTimer = nil
	}
}

func (gc *GameController) playReply(generation uint64) {
	gc.mu.Lock()
	if generation != gc.generation {
		gc.mu.Unlock()
		return
	}
	gc.replyTimer = nil
	played := gc.game.PlayOpponentReply()
	publisher := gc.onChange
	gc.mu.Unlock()
	if played && publisher != nil {
		publisher()
	}
}
