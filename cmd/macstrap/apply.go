package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/macstrap/macstrap/internal/engine"
	"github.com/macstrap/macstrap/internal/logger"
	"github.com/macstrap/macstrap/internal/model"
	"github.com/macstrap/macstrap/internal/privilege"
	"github.com/macstrap/macstrap/internal/report"
	"github.com/macstrap/macstrap/internal/tui"
)

type applyOptions struct {
	ManifestPath   string
	Verbose        bool
	NonInteractive bool
}

var applyCmdRunner = runApply

func newApplyCmd(root *rootFlags) *cobra.Command {
	opts := applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a manifest to this machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose = root.verbose
			opts.NonInteractive = !term.IsTerminal(int(os.Stdout.Fd()))

			if err := validateManifestPath(opts.ManifestPath); err != nil {
				return err
			}

			return applyCmdRunner(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ManifestPath, "manifest", "m", "", "Path to manifest file")
	cmd.MarkFlagRequired("manifest") //nolint:errcheck

	return cmd
}

func runApply(opts applyOptions) error {
	level := "info"
	if opts.Verbose {
		level = "debug"
	}

	log, err := logger.New(logger.Options{Level: level, HumanReadable: true})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manifest, plan, provs, err := preparePlan(ctx, opts.ManifestPath, log)
	if err != nil {
		return err
	}

	var session *privilege.Session
	if plan.NeedsPrivilege() {
		session = privilege.NewSession(privilege.NewSudoBackend(), log)
		defer session.Close()

		credential, err := readCredential()
		if err != nil {
			return err
		}
		err = session.Acquire(ctx, credential)
		zeroCredential(credential)
		if err != nil {
			return err
		}
	}

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	rep := report.New()
	execCtx := &engine.ExecutionContext{
		Context:   runCtx,
		Providers: provs,
		Session:   session,
		Report:    rep,
		Logger:    log,
	}

	modelState := tui.NewModel(manifest.Name, plan, opts.NonInteractive)

	var execErr error
	if opts.NonInteractive {
		var results []model.ActionResult
		results, execErr = engine.Execute(execCtx, plan)
		for _, res := range results {
			modelState = applyModelMsg(modelState, tui.ActionCompleteMsg{Result: res})
		}
		fmt.Fprintln(os.Stdout, modelState.View())
	} else {
		var programErr error
		execErr, programErr = runInteractive(execCtx, plan, tea.NewProgram(modelState), cancelRun)
		if programErr != nil {
			return programErr
		}
	}

	if execErr != nil {
		return execErr
	}

	if failed := rep.Summarize().Failed; failed > 0 {
		return fmt.Errorf("%d action(s) failed", failed)
	}

	return nil
}

// teaProgram is the slice of *tea.Program the interactive run needs.
type teaProgram interface {
	Run() (tea.Model, error)
	Send(msg tea.Msg)
}

// runInteractive executes the plan while the TUI renders it. Completed
// actions stream to the program as they finish. The program exiting
// before the run is done means the user quit, so the run context is
// cancelled and the executor stops at its next action boundary,
// leaving a partial report behind.
func runInteractive(execCtx *engine.ExecutionContext, plan *engine.Plan, program teaProgram, cancelRun context.CancelFunc) (execErr, programErr error) {
	execCtx.EventSink = func(res model.ActionResult) {
		program.Send(tui.ActionCompleteMsg{Result: res})
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, programErr = program.Run()
		cancelRun()
	}()

	_, execErr = engine.Execute(execCtx, plan)
	program.Send(tea.QuitMsg{})
	<-done

	return execErr, programErr
}

// readCredential prompts for the elevation password without echo.
func readCredential() ([]byte, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	credential, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return credential, nil
}

func zeroCredential(credential []byte) {
	for i := range credential {
		credential[i] = 0
	}
}

func applyModelMsg(state tui.Model, msg tea.Msg) tui.Model {
	updated, _ := state.Update(msg)
	if m, ok := updated.(tui.Model); ok {
		return m
	}
	return state
}
