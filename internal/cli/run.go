package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"stackgrid/internal/board"
	"stackgrid/internal/config"
	"stackgrid/internal/domain"
	"stackgrid/internal/eventbus"
	"stackgrid/internal/ui"
)

// journalled lists the events forwarded to the board's journal
var journalled = []eventbus.EventType{
	domain.EventDragBegan,
	domain.EventDragEnded,
	domain.EventDragCancelled,
	domain.EventMovedOutsideRadius,
	domain.EventItemMoved,
	domain.EventItemMerged,
	domain.EventMoveFinalized,
	domain.EventBoardChanged,
	domain.EventConfigLoaded,
	domain.EventConfigSaved,
	domain.EventError,
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:         "run",
		Short:       "Open the board (the default command)",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{tuiAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd.Context(), opts)
		},
	}
}

func runBoard(ctx context.Context, opts *rootOptions) error {
	logger := loggerFromContext(ctx)

	bus := eventbus.New(logger)
	defer bus.Close()

	// Subscribe before loading so the load itself is journalled
	events := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case events <- e:
		default:
			logger.Warn("event channel full, dropping event", "type", e.Type())
		}
	}
	for _, t := range journalled {
		unsubscribe := bus.Subscribe(t, forward)
		defer unsubscribe()
	}

	configSvc := config.NewConfigService(opts.configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.columns > 0 {
		cfg.Grid.Columns = opts.columns
	}
	logger.Info("config loaded", "path", configSvc.Path(), "stacks", len(cfg.Board))

	model, err := ui.NewModel(ui.Options{
		Config:    cfg,
		ConfigSvc: configSvc,
		Bus:       bus,
		Board:     board.New(cfg.Board, bus),
		Events:    events,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	model.SetProgram(p)

	logger.Debug("starting UI")
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run board: %w", err)
	}
	logger.Debug("UI exited normally")
	return nil
}
