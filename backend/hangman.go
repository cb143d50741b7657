package main

import (
	"math/rand"
	"sort"
	"strings"
	"sync"
	"unicode"
)

const hangmanMaxMisses = 6

var hangmanWords = []string{
	"computer", "keyboard", "monitor", "internet", "program",
	"variable", "function", "pointer", "channel", "routine",
}

type HangmanStatus int

const (
	HangmanInProgress HangmanStatus = iota
	HangmanWon
	HangmanLost
)

type HangmanGame struct {
	word    string
	guessed map[rune]bool
	misses  int
	status  HangmanStatus
}

func NewHangmanGame(word string) *HangmanGame {
	return &HangmanGame{
		word:    strings.ToLower(word),
		guessed: make(map[rune]bool),
	}
}

// Guess applies one letter. Repeat guesses and guesses after the round ended
// are no-ops; non-letter input is rejected with a reason.
func (g *HangmanGame) Guess(letter rune) (bool, string) {
	if g.status != HangmanInProgress {
		return false, "round over"
	}
	letter = unicode.ToLower(letter)
	if letter < 'a' || letter > 'z' {
		return false, "guess must be a letter"
	}
	if g.guessed[letter] {
		return false, "letter already guessed"
	}
	g.guessed[letter] = true
	if !strings.ContainsRune(g.word, letter) {
		g.misses++
		if g.misses >= hangmanMaxMisses {
			g.status = HangmanLost
		}
		return true, ""
	}
	if g.revealed() == g.word {
		g.status = HangmanWon
	}
	return true, ""
}

// Masked returns the word with unguessed letters replaced by underscores.
func (g *HangmanGame) Masked() string {
	var sb strings.Builder
	for _, r := range g.word {
		if g.guessed[r] {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

func (g *HangmanGame) revealed() string {
	var sb strings.Builder
	for _, r := range g.word {
		if g.guessed[r] {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func (g *HangmanGame) RemainingAttempts() int {
	return hangmanMaxMisses - g.misses
}

func (g *HangmanGame) Status() HangmanStatus {
	return g.status
}

func (g *HangmanGame) GuessedLetters() []string {
	letters := make([]string, 0, len(g.guessed))
	for r := range g.guessed {
		letters = append(letters, string(r))
	}
	sort.Strings(letters)
	return letters
}

func (s HangmanStatus) String() string {
	switch s {
	case HangmanWon:
		return "won"
	case HangmanLost:
		return "lost"
	default:
		return "in_progress"
	}
}

// HangmanController serializes round access for the HTTP handlers.
type HangmanController struct {
	mu   sync.Mutex
	game *HangmanGame
}

type HangmanView struct {
	Masked            string   `json:"masked"`
	GuessedLetters    []string `json:"guessed_letters"`
	RemainingAttempts int      `json:"remaining_attempts"`
	Status            string   `json:"status"`
	Word              string   `json:"word,omitempty"`
}

func NewHangmanController() *HangmanController {
	return &HangmanController{}
}

// Start begins a round with the given word. Empty input, or a word that
// letter guesses could never complete, falls back to a random word.
func (hc *HangmanController) Start(word string) HangmanView {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	word = strings.ToLower(strings.TrimSpace(word))
	if !isGuessableWord(word) {
		word = hangmanWords[rand.Intn(len(hangmanWords))]
	}
	hc.game = NewHangmanGame(word)
	return hc.viewLocked()
}

// isGuessableWord reports whether every rune can be matched by a letter
// guess; words with digits, spaces or accents would be unwinnable.
func isGuessableWord(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func (hc *HangmanController) Guess(letter rune) (HangmanView, bool, string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	if hc.game == nil {
		return HangmanView{}, false, "no round in progress"
	}
	applied, reason := hc.game.Guess(letter)
	return hc.viewLocked(), applied, reason
}

func (hc *HangmanController) View() (HangmanView, bool) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	if hc.game == nil {
		return HangmanView{}, false
	}
	return hc.viewLocked(), true
}

func (hc *HangmanController) viewLocked() HangmanView {
	view := HangmanView{
		Masked:            hc.game.Masked(),
		GuessedLetters:    hc.game.GuessedLetters(),
		RemainingAttempts: hc.game.RemainingAttempts(),
		Status:            hc.game.Status().String(),
	}
	if hc.game.Status() != HangmanInProgress {
		view.Word = hc.game.word
	}
	return view
}
