package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kestrelgame/kestrel/internal/config"
	"github.com/kestrelgame/kestrel/internal/core/event"
	coresys "github.com/kestrelgame/kestrel/internal/core/system"
	"github.com/kestrelgame/kestrel/internal/data"
	"github.com/kestrelgame/kestrel/internal/persist"
	"github.com/kestrelgame/kestrel/internal/scripting"
	"github.com/kestrelgame/kestrel/internal/system"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m               Kestrel ECS                 \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/kestrel.toml"
	if p := os.Getenv("KESTREL_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if stop := startProfile(cfg.Profile); stop != nil {
		defer stop()
	}

	printBanner()

	// 3. Build the world and load data
	printSection("World")
	w := newWorld(cfg, log)
	printStat("Entity capacity", int(cfg.World.MaxEntities))
	printStat("Pool capacity", int(cfg.PoolCapacity()))

	prefabs, err := data.LoadPrefabTable(cfg.Data.Prefabs)
	if err != nil {
		return fmt.Errorf("load prefabs: %w", err)
	}
	printStat("Prefabs", prefabs.Count())

	luaEngine, err := scripting.NewEngine(cfg.Data.Scripts, log.Named("lua"))
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	printOK("Lua scripts loaded")

	// 4. Register systems
	bus := event.NewBus()
	runner := coresys.NewRunner(w, log.Named("runner"))
	statsIdx := registerSystems(w, bus, prefabs, luaEngine, os.Stdout, runner.Ticks, log)
	printStat("Systems", w.SystemCount())

	spawned, err := spawnInitial(w, prefabs, cfg.Data.InitialSpawn)
	if err != nil {
		return err
	}
	printStat("Initial entities", spawned)
	fmt.Println()

	// 5. Optional snapshot storage
	var persistSys *system.PersistenceSystem
	if cfg.Database.Enabled {
		printSection("Database")
		dbCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := persist.NewDB(dbCtx, cfg.Database, log)
		if err != nil {
			cancel()
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")
		if err := persist.RunMigrations(dbCtx, db.Pool); err != nil {
			cancel()
			return fmt.Errorf("migrations: %w", err)
		}
		cancel()
		printOK("Migrations applied")
		fmt.Println()
		persistSys = system.NewPersistenceSystem(persist.NewSnapshotRepo(db), log.Named("persist"), cfg.Database.SnapshotEvery)
		w.Register(persistSys)
	}

	runner.OnTick(func(tick uint64) {
		if cfg.Loop.StatsEvery > 0 && tick%cfg.Loop.StatsEvery == 0 {
			w.RunSystem(statsIdx)
		}
	})

	// 6. Frame loop
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printSection("Running")
	printReady(fmt.Sprintf("Frame loop (tick: %s)", cfg.Loop.TickRate))
	fmt.Println()

	err = runner.Run(ctx, cfg.Loop.TickRate, cfg.Loop.MaxTicks)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("frame loop: %w", err)
	}

	if persistSys != nil {
		persistSys.SaveNow(w)
	}
	log.Info("stopped", zap.Uint64("ticks", runner.Ticks()), zap.Int("alive", w.Alive()))
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

// startProfile starts pkg/profile in the configured mode and returns its
// stop function, or nil when profiling is off.
func startProfile(cfg config.ProfileConfig) func() {
	var mode func(*profile.Profile)
	switch cfg.Mode {
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	case "block":
		mode = profile.BlockProfile
	case "trace":
		mode = profile.TraceProfile
	default:
		return nil
	}
	p := profile.Start(mode, profile.ProfilePath(cfg.Path), profile.NoShutdownHook)
	return p.Stop
}
