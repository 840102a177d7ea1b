package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"repopick/internal/collection"
	"repopick/internal/config"
	"repopick/internal/discovery"
	"repopick/internal/domain"
	"repopick/internal/eventbus"
	"repopick/internal/manifest"
	"repopick/internal/ui"
	"repopick/internal/ui/picker"
	"repopick/internal/ui/simple"
	"repopick/internal/ui/views"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		manifestPath string
		scanDir      string
		simpleMode   bool
	)

	cmd := &cobra.Command{
		Use:   "repopick",
		Short: "Pick a code-review repository from a searchable list",
		Long: "repopick presents the repositories a review can be filed against\n" +
			"and prints the chosen one on stdout. Candidates come from a YAML\n" +
			"manifest, a directory scan for git working copies, or both.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(manifestPath, scanDir, simpleMode)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "YAML repository manifest")
	cmd.Flags().StringVarP(&scanDir, "dir", "d", "", "directory to scan for git repositories")
	cmd.Flags().BoolVar(&simpleMode, "simple", false, "plain prompt without the animated list")

	return cmd
}

func run(manifestPath, scanDir string, simpleMode bool) error {
	// Log to a file so the TUI stays clean
	logFile, err := os.OpenFile("repopick.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	cfgSvc := config.NewService()
	cfg, err := cfgSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.Default()
	}

	if manifestPath == "" {
		manifestPath = cfg.Manifest
	}
	if scanDir == "" {
		scanDir = cfg.ScanDir
	}
	if manifestPath == "" && scanDir == "" {
		scanDir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to resolve working directory: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	bus := eventbus.New()
	coll := collection.New(bus)

	if simpleMode {
		return runSimple(ctx, bus, coll, cfg, manifestPath, scanDir)
	}
	return runTUI(ctx, bus, coll, cfg, manifestPath, scanDir)
}

// loadManifest feeds manifest records into the collection
func loadManifest(coll *collection.Collection, path string) error {
	if path == "" {
		return nil
	}
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	for _, repo := range m.Records() {
		coll.Add(repo)
	}
	log.Printf("Loaded %d repositories from %s", len(m.Records()), path)
	return nil
}

// scanAndWait runs discovery to completion, for the non-interactive path
func scanAndWait(ctx context.Context, bus eventbus.EventBus, coll *collection.Collection, dir string) error {
	done := make(chan struct{})
	unsub := bus.Subscribe(eventbus.EventScanCompleted, func(eventbus.DomainEvent) {
		close(done)
	})
	defer unsub()

	svc := discovery.New(bus, coll)
	if err := svc.StartScan(ctx, []string{dir}); err != nil {
		return err
	}

	select {
	case <-done:
	case <-ctx.Done():
		svc.StopScan()
	}
	return nil
}

func runSimple(ctx context.Context, bus eventbus.EventBus, coll *collection.Collection, cfg *config.Config, manifestPath, scanDir string) error {
	if err := loadManifest(coll, manifestPath); err != nil {
		return err
	}
	if scanDir != "" {
		if err := scanAndWait(ctx, bus, coll, scanDir); err != nil {
			return err
		}
	}

	choice, err := simple.Pick(coll.All(), cfg.UISettings.ShowTool)
	if err != nil {
		return err
	}
	return printChoice(choice)
}

func runTUI(ctx context.Context, bus eventbus.EventBus, coll *collection.Collection, cfg *config.Config, manifestPath, scanDir string) error {
	list := views.NewListView(views.NewStyles())
	list.Attach(bus)
	defer list.Close()

	pk := picker.New(bus, list, picker.NewSearchBox(cfg.UISettings.AnimationMS))
	defer pk.Close()

	// Manifest records go in before the program starts; the attached list
	// picks them up synchronously
	if err := loadManifest(coll, manifestPath); err != nil {
		return err
	}

	model := ui.NewModel(bus, cfg, list, pk)
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	// Forward later events into the UI loop (discovery runs off it)
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	for _, eventType := range []eventbus.EventType{
		eventbus.EventRepoAdded,
		eventbus.EventRepoRemoved,
		eventbus.EventRepoSelected,
		eventbus.EventScanStarted,
		eventbus.EventScanCompleted,
		eventbus.EventError,
	} {
		defer bus.Subscribe(eventType, forward)()
	}
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	if scanDir != "" {
		svc := discovery.New(bus, coll)
		go func() {
			if err := svc.StartScan(ctx, []string{scanDir}); err != nil {
				log.Printf("Scan failed to start: %v", err)
			}
		}()
	}

	finalModel, err := p.Run()
	close(eventChan)
	if err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}

	return printChoice(finalModel.(*ui.Model).Choice())
}

// printChoice writes the picked repository for shell consumers. A nil
// choice (user cancelled) is not an error.
func printChoice(choice *domain.Repository) error {
	if choice == nil {
		return nil
	}
	if choice.Path != "" {
		fmt.Println(choice.Path)
	} else {
		fmt.Println(choice.Name)
	}
	return nil
}
