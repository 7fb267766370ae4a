package model

import "time"

// Game modes recorded in the database.
const (
	// ModeHumanVsHuman is two people sharing a terminal.
	ModeHumanVsHuman = "pvp"

	// ModeHumanVsAI is a person against the engine.
	ModeHumanVsAI = "pvai"

	// ModeAIVsAI is two engines, used by benchmarks and demos.
	ModeAIVsAI = "aivai"
)

// Winner values recorded in the database. A draw is stored explicitly
// rather than as an empty string so old rows stay unambiguous.
const (
	WinnerBlack = "black"
	WinnerWhite = "white"
	WinnerDraw  = "draw"
)

// GameRecord is one finished game as persisted to the database.
type GameRecord struct {
	// ID is the database row ID, zero until saved.
	ID int64 `json:"id"`

	// PlayedAt is when the game finished.
	PlayedAt time.Time `json:"played_at"`

	// BoardSize is the board edge length.
	BoardSize int `json:"board_size"`

	// Mode is one of the Mode* constants.
	Mode string `json:"mode"`

	// Blitz reports whether the game was played on the clock.
	Blitz bool `json:"blitz"`

	// BlackPlayer and WhitePlayer identify the players, e.g. "human" or
	// "ab/all_in_one@3".
	BlackPlayer string `json:"black_player"`
	WhitePlayer string `json:"white_player"`

	// Winner is one of the Winner* constants.
	Winner string `json:"winner"`

	// BlackScore and WhiteScore are the final piece counts.
	BlackScore int `json:"black_score"`
	WhiteScore int `json:"white_score"`

	// Moves is the number of plays made, passes included.
	Moves int `json:"moves"`

	// TimedOut reports whether the game ended on the blitz clock.
	TimedOut bool `json:"timed_out"`

	// Duration is the wall-clock length of the game.
	Duration time.Duration `json:"duration"`

	// SaveData is the final position in the save-file format, history
	// included when available.
	SaveData string `json:"save_data,omitempty"`
}
