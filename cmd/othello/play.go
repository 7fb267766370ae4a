package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nao1215/othello/internal/ai"
	"github.com/nao1215/othello/internal/board"
	"github.com/nao1215/othello/internal/config"
	"github.com/nao1215/othello/internal/database"
	"github.com/nao1215/othello/internal/game"
	"github.com/nao1215/othello/internal/model"
	"github.com/nao1215/othello/internal/parser"
	"github.com/nao1215/othello/internal/ui"
	"github.com/spf13/cobra"
)

// defaultSaveFile is where "s" and "sh" write the game unless
// overridden with --save-file.
const defaultSaveFile = "othello.save"

// NewPlayCmd creates the play command.
func NewPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game of Othello",
		Long: `Play starts an interactive Othello game in the terminal.

Moves are entered in algebraic notation (e.g. d3). During the game the
following commands are available:
  ?        show the command reference
  r        show the rules
  s        save the position and quit
  sh       save the position with its move history and quit
  ff       forfeit the game
  restart  restart the game
  q, quit  quit without saving

Examples:
  # Human vs AI on the standard board (human plays black)
  othello play

  # Two humans on a 10x10 board with a 15 minute blitz clock
  othello play --mode pvp --size 10 --blitz --blitz-time 15m

  # Watch two engines play each other
  othello play --mode aivai --depth 4 --algorithm ab --heuristic all_in_one

  # Resume a saved game
  othello play --load othello.save

  # Use an engine profile from the config file
  othello play --profile tournament

Configuration file (.othello) example:
  defaults:
    size: 8
    blitzMinutes: 30
  profiles:
    tournament:
      depth: 5
      algorithm: ab
      heuristic: all_in_one
      moveSeconds: 10`,
		Args: cobra.NoArgs,
		RunE: runPlayCmd,
	}

	// Game setup flags
	cmd.Flags().IntP("size", "s", config.DefaultBoardSize,
		"Board size (6, 8, 10, or 12)")
	cmd.Flags().StringP("mode", "m", model.ModeHumanVsAI,
		"Game mode: pvp, pvai, or aivai")
	cmd.Flags().StringP("load", "l", "",
		"Resume from a save file")

	// Blitz clock flags
	cmd.Flags().BoolP("blitz", "b", false,
		"Play with a blitz clock")
	cmd.Flags().Duration("blitz-time", config.DefaultBlitzTime,
		"Each player's clock budget in blitz mode")

	// Engine flags
	cmd.Flags().IntP("depth", "d", config.DefaultAIDepth,
		"AI search depth in plies")
	cmd.Flags().StringP("algorithm", "a", config.DefaultAlgorithm,
		"AI search algorithm: minimax or ab")
	cmd.Flags().String("heuristic", config.DefaultHeuristic,
		"AI evaluation: coin_parity, corners_captured, mobility, or all_in_one")
	cmd.Flags().DurationP("ai-time", "t", config.DefaultAIMoveTimeout,
		"Per-move AI search limit (0 for no limit)")
	cmd.Flags().String("ai-color", "white",
		"Side the AI plays in pvai mode: black or white")
	cmd.Flags().Bool("random", false,
		"Replace the AI opponent with a random mover")

	// Display flags
	cmd.Flags().Bool("hints", false,
		"Mark the legal moves of the side to move")
	cmd.Flags().Bool("no-color", false,
		"Disable ANSI colors in the board rendering")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .othello in current or home directory)")
	cmd.Flags().StringP("profile", "p", "",
		"Engine profile from the config file")

	// Persistence flags
	cmd.Flags().String("save-file", defaultSaveFile,
		"File the s and sh commands write the game to")
	cmd.Flags().Bool("no-save", false,
		"Do not record the finished game in the database")

	return cmd
}

// playOptions carries the play command settings that are not part of
// the shared Config.
type playOptions struct {
	mode     string
	aiColor  board.Color
	random   bool
	loadPath string
	saveFile string
	hints    bool
}

// runPlayCmd executes the play command.
func runPlayCmd(cmd *cobra.Command, _ []string) error {
	cfg, opts, err := buildPlayConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	verbose := getVerboseFlag(cmd)
	logger := setupLogger(verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	var db *database.GameDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	return runPlay(ctx, cfg, opts, db, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
}

// buildPlayConfig creates a Config and playOptions from cobra flags and
// the optional configuration file. Flag values win over the file.
func buildPlayConfig(cmd *cobra.Command) (*config.Config, *playOptions, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, err
	}
	profile, err := cmd.Flags().GetString("profile")
	if err != nil {
		return nil, nil, err
	}

	// Apply the config file first so that explicitly set flags can
	// override it below.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		cfg.Profiles, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := cfg.Profiles.Apply(cfg, profile); err != nil {
			return nil, nil, err
		}
	} else if explicitConfigPath {
		return nil, nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else if profile != "" {
		return nil, nil, fmt.Errorf("profile %q requested but no configuration file found", profile)
	}

	if cmd.Flags().Changed("size") || cfg.BoardSize == 0 {
		if cfg.BoardSize, err = cmd.Flags().GetInt("size"); err != nil {
			return nil, nil, err
		}
	}
	if cfg.Blitz, err = cmd.Flags().GetBool("blitz"); err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Changed("blitz-time") {
		if cfg.BlitzTime, err = cmd.Flags().GetDuration("blitz-time"); err != nil {
			return nil, nil, err
		}
	}
	if cmd.Flags().Changed("depth") {
		if cfg.AIDepth, err = cmd.Flags().GetInt("depth"); err != nil {
			return nil, nil, err
		}
	}
	if cmd.Flags().Changed("algorithm") {
		if cfg.Algorithm, err = cmd.Flags().GetString("algorithm"); err != nil {
			return nil, nil, err
		}
	}
	if cmd.Flags().Changed("heuristic") {
		if cfg.Heuristic, err = cmd.Flags().GetString("heuristic"); err != nil {
			return nil, nil, err
		}
	}
	if cmd.Flags().Changed("ai-time") {
		if cfg.AIMoveTimeout, err = cmd.Flags().GetDuration("ai-time"); err != nil {
			return nil, nil, err
		}
	}
	if cmd.Flags().Changed("no-color") {
		if cfg.NoColor, err = cmd.Flags().GetBool("no-color"); err != nil {
			return nil, nil, err
		}
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, nil, err
	}
	cfg.SaveToDB = !noSave
	cfg.DBDir = config.XDGDataDir()

	opts := &playOptions{}
	if opts.mode, err = cmd.Flags().GetString("mode"); err != nil {
		return nil, nil, err
	}
	switch opts.mode {
	case model.ModeHumanVsHuman, model.ModeHumanVsAI, model.ModeAIVsAI:
	default:
		return nil, nil, fmt.Errorf("invalid mode %q (use pvp, pvai, or aivai)", opts.mode)
	}

	aiColor, err := cmd.Flags().GetString("ai-color")
	if err != nil {
		return nil, nil, err
	}
	switch aiColor {
	case "black":
		opts.aiColor = board.Black
	case "white":
		opts.aiColor = board.White
	default:
		return nil, nil, fmt.Errorf("invalid ai-color %q (use black or white)", aiColor)
	}

	if opts.loadPath, err = cmd.Flags().GetString("load"); err != nil {
		return nil, nil, err
	}
	if opts.saveFile, err = cmd.Flags().GetString("save-file"); err != nil {
		return nil, nil, err
	}
	if opts.hints, err = cmd.Flags().GetBool("hints"); err != nil {
		return nil, nil, err
	}
	if opts.random, err = cmd.Flags().GetBool("random"); err != nil {
		return nil, nil, err
	}

	return cfg, opts, nil
}

// newOpponent builds the computer player: the configured search engine,
// or a random mover when --random is given.
func newOpponent(cfg *config.Config, opts *playOptions) (game.Player, error) {
	if opts.random {
		return game.NewRandomPlayer(time.Now().UnixNano()), nil
	}
	engine, err := newEngine(cfg)
	if err != nil {
		return nil, err
	}
	return &game.AIPlayer{Engine: engine, MoveTimeout: cfg.AIMoveTimeout}, nil
}

// newEngine builds a search engine from the config.
func newEngine(cfg *config.Config) (*ai.Engine, error) {
	algorithm, err := ai.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	heuristic, err := ai.ParseHeuristic(cfg.Heuristic)
	if err != nil {
		return nil, err
	}
	return &ai.Engine{
		Depth:     cfg.AIDepth,
		Algorithm: algorithm,
		Heuristic: heuristic,
	}, nil
}

// loadOrNewBoard builds the starting position, either fresh or from a
// save file.
func loadOrNewBoard(cfg *config.Config, opts *playOptions) (*board.Board, error) {
	if opts.loadPath == "" {
		return board.New(cfg.BoardSize)
	}
	f, err := os.Open(opts.loadPath) //nolint:gosec // User-provided save path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open save file: %w", err)
	}
	defer f.Close()
	b, err := parser.ParseSave(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load save file %s: %w", opts.loadPath, err)
	}
	cfg.BoardSize = b.Size()
	return b, nil
}

// runPlay sets up the board and players and runs the requested mode.
func runPlay(ctx context.Context, cfg *config.Config, opts *playOptions, db *database.GameDB, in io.Reader, out io.Writer, logger *slog.Logger) error {
	b, err := loadOrNewBoard(cfg, opts)
	if err != nil {
		return err
	}

	renderOpts := []ui.RendererOption{}
	if cfg.NoColor {
		renderOpts = append(renderOpts, ui.WithNoColor())
	}
	if opts.hints {
		renderOpts = append(renderOpts, ui.WithHints())
	}
	renderer := ui.NewRenderer(out, renderOpts...)

	if opts.mode == model.ModeAIVsAI {
		return runWatchedMatch(ctx, cfg, opts, db, out, renderer, b, logger)
	}

	session := &playSession{
		cfg:      cfg,
		opts:     opts,
		board:    b,
		renderer: renderer,
		parser:   parser.NewCommandParser(b.Size()),
		scanner:  bufio.NewScanner(in),
		out:      out,
		db:       db,
		logger:   logger,
	}
	if opts.mode == model.ModeHumanVsAI {
		session.ai, err = newOpponent(cfg, opts)
		if err != nil {
			return err
		}
	}
	if cfg.Blitz {
		session.clock = game.NewClock(cfg.BlitzTime)
	}
	return session.run(ctx)
}

// runWatchedMatch plays an AI vs AI game through the match controller,
// rendering the board after every move.
func runWatchedMatch(ctx context.Context, cfg *config.Config, opts *playOptions, db *database.GameDB, out io.Writer, renderer *ui.Renderer, b *board.Board, logger *slog.Logger) error {
	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}
	var black game.Player = &game.AIPlayer{Engine: engine, MoveTimeout: cfg.AIMoveTimeout}
	var white game.Player = &game.AIPlayer{Engine: engine, MoveTimeout: cfg.AIMoveTimeout}
	if opts.random {
		white = game.NewRandomPlayer(time.Now().UnixNano())
	}

	ctrlOpts := []game.ControllerOption{
		game.WithLogger(logger),
		game.WithMoveCallback(func(c board.Color, m board.Move, b *board.Board) {
			fmt.Fprintf(out, "%s plays %s\n", c, m)
			_ = renderer.Render(b) //nolint:errcheck // Rendering failures don't stop the match
		}),
	}
	var clock *game.Clock
	if cfg.Blitz {
		clock = game.NewClock(cfg.BlitzTime)
		ctrlOpts = append(ctrlOpts, game.WithClock(clock))
	}

	result, err := game.NewController(b, black, white, ctrlOpts...).Run(ctx)
	if err != nil {
		return err
	}

	if result.TimedOut != board.Empty {
		fmt.Fprintf(out, "%s ran out of time\n", result.TimedOut)
	}
	if err := renderer.RenderResult(b); err != nil {
		return err
	}

	record := newGameRecord(cfg, opts, b, result.Winner, result.TimedOut != board.Empty, result.Elapsed)
	record.BlackPlayer = black.Name()
	record.WhitePlayer = white.Name()
	return saveGameRecord(ctx, db, record, logger)
}

// playSession holds the state of one interactive game.
type playSession struct {
	cfg      *config.Config
	opts     *playOptions
	board    *board.Board
	renderer *ui.Renderer
	parser   *parser.CommandParser
	scanner  *bufio.Scanner
	out      io.Writer
	db       *database.GameDB
	clock    *game.Clock
	ai       game.Player
	logger   *slog.Logger
	start    time.Time
}

// aiToMove reports whether the side to move is played by the engine.
func (s *playSession) aiToMove() bool {
	return s.ai != nil && s.board.Current() == s.opts.aiColor
}

// run drives the interactive game loop until the game ends or the
// player quits.
func (s *playSession) run(ctx context.Context) error {
	s.start = time.Now()
	if s.clock != nil {
		s.clock.Start(s.board.Current())
	}

	for !s.board.IsGameOver() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.clock != nil {
			if expired := s.clock.Expired(); expired != board.Empty {
				return s.finishOnTime(ctx, expired)
			}
		}

		if err := s.renderer.Render(s.board); err != nil {
			return err
		}
		if err := s.renderer.RenderStatus(s.board); err != nil {
			return err
		}
		if s.clock != nil {
			fmt.Fprintln(s.out, s.clock.String())
		}

		if s.aiToMove() {
			if err := s.playAIMove(ctx); err != nil {
				return err
			}
			continue
		}

		done, err := s.playHumanMove(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}

	return s.finishOnBoard(ctx)
}

// playAIMove runs one engine search and applies the move.
func (s *playSession) playAIMove(ctx context.Context) error {
	spin := ui.NewThinkingSpinner(s.out)
	spin.Start()
	move, err := s.ai.NextMove(ctx, s.board)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("%s (%s): %w", s.ai.Name(), s.board.Current(), err)
	}
	return s.applyMove(move, s.ai.Name())
}

// playHumanMove reads and executes one line of input. It returns true
// when the session is over (quit, save, or forfeit).
func (s *playSession) playHumanMove(ctx context.Context) (bool, error) {
	fmt.Fprintf(s.out, "%s> ", s.board.Current().Symbol())
	if !s.scanner.Scan() {
		// EOF on stdin ends the session like "quit".
		return true, s.scanner.Err()
	}

	cmd, err := s.parser.Parse(s.scanner.Text())
	if err != nil {
		fmt.Fprintln(s.out, err)
		return false, nil
	}

	switch cmd.Kind {
	case parser.CommandHelp:
		fmt.Fprintln(s.out, parser.HelpText)
		return false, nil
	case parser.CommandRules:
		fmt.Fprintln(s.out, parser.RulesText)
		return false, nil
	case parser.CommandSaveQuit:
		return true, s.saveToFile(s.board.ExportPosition())
	case parser.CommandSaveHistory:
		return true, s.saveToFile(s.board.Export())
	case parser.CommandForfeit:
		return true, s.finishOnForfeit(ctx, s.board.Current())
	case parser.CommandRestart:
		s.board.Restart()
		if s.clock != nil {
			s.clock = game.NewClock(s.cfg.BlitzTime)
			s.clock.Start(s.board.Current())
		}
		s.start = time.Now()
		fmt.Fprintln(s.out, "Game restarted.")
		return false, nil
	case parser.CommandQuit:
		return true, nil
	case parser.CommandMove:
		if err := s.applyMove(cmd.Move, "human"); err != nil {
			var illegal *board.IllegalMoveError
			if errors.As(err, &illegal) || errors.Is(err, board.ErrCoordinateOutOfRange) {
				fmt.Fprintln(s.out, err)
				return false, nil
			}
			return false, err
		}
		return false, nil
	}
	return false, nil
}

// applyMove plays the move on the board and keeps the clock charged to
// the side that moved. Auto-passes keep the mover's clock running.
func (s *playSession) applyMove(move board.Move, who string) error {
	side := s.board.Current()
	if err := s.board.Play(move); err != nil {
		return err
	}
	s.logger.Debug("move applied", "player", who, "color", side.String(), "move", move.String())
	fmt.Fprintf(s.out, "%s plays %s\n", side, move)
	if s.clock != nil && s.board.Current() != side {
		s.clock.Switch()
	}
	return nil
}

// saveToFile writes the serialized game to the save file.
func (s *playSession) saveToFile(data string) error {
	if err := os.WriteFile(s.opts.saveFile, []byte(data), 0600); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	fmt.Fprintf(s.out, "Game saved to %s\n", s.opts.saveFile)
	return nil
}

// finishOnBoard ends a game in which neither side can move.
func (s *playSession) finishOnBoard(ctx context.Context) error {
	if s.clock != nil {
		s.clock.Pause()
	}
	if err := s.renderer.Render(s.board); err != nil {
		return err
	}
	if err := s.renderer.RenderResult(s.board); err != nil {
		return err
	}
	return s.record(ctx, s.board.Winner(), false)
}

// finishOnTime ends a game lost on the blitz clock.
func (s *playSession) finishOnTime(ctx context.Context, expired board.Color) error {
	s.clock.Pause()
	fmt.Fprintf(s.out, "%s ran out of time, %s wins\n", expired, expired.Opponent())
	return s.record(ctx, expired.Opponent(), true)
}

// finishOnForfeit ends a game conceded by one side.
func (s *playSession) finishOnForfeit(ctx context.Context, conceding board.Color) error {
	if s.clock != nil {
		s.clock.Pause()
	}
	fmt.Fprintf(s.out, "%s forfeits, %s wins\n", conceding, conceding.Opponent())
	return s.record(ctx, conceding.Opponent(), false)
}

// record persists the finished game to the database.
func (s *playSession) record(ctx context.Context, winner board.Color, timedOut bool) error {
	record := newGameRecord(s.cfg, s.opts, s.board, winner, timedOut, time.Since(s.start))
	record.BlackPlayer = s.playerName(board.Black)
	record.WhitePlayer = s.playerName(board.White)
	return saveGameRecord(ctx, s.db, record, s.logger)
}

// playerName identifies the player of a color for the game record.
func (s *playSession) playerName(c board.Color) string {
	if s.ai != nil && c == s.opts.aiColor {
		return s.ai.Name()
	}
	return "human"
}

// newGameRecord builds the database record for a finished game.
func newGameRecord(cfg *config.Config, opts *playOptions, b *board.Board, winner board.Color, timedOut bool, elapsed time.Duration) *model.GameRecord {
	black, white := b.Score()
	record := &model.GameRecord{
		PlayedAt:   time.Now(),
		BoardSize:  b.Size(),
		Mode:       opts.mode,
		Blitz:      cfg.Blitz,
		BlackScore: black,
		WhiteScore: white,
		Moves:      len(b.History()),
		TimedOut:   timedOut,
		Duration:   elapsed.Round(time.Millisecond),
		SaveData:   b.Export(),
	}
	switch winner {
	case board.Black:
		record.Winner = model.WinnerBlack
	case board.White:
		record.Winner = model.WinnerWhite
	default:
		record.Winner = model.WinnerDraw
	}
	return record
}

// saveGameRecord saves the finished game to the database.
// If db is nil, this function is a no-op.
func saveGameRecord(ctx context.Context, db *database.GameDB, record *model.GameRecord, logger *slog.Logger) error {
	if db == nil {
		return nil
	}
	id, err := db.SaveGame(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to save game record: %w", err)
	}
	logger.Info("game recorded", "id", id, "winner", record.Winner)
	return nil
}
