package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/upgrade-sim/internal/domain/session"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/skilltree"
	"github.com/KirkDiggler/upgrade-sim/internal/effects"
	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
	"github.com/KirkDiggler/upgrade-sim/internal/services/training"
	"github.com/KirkDiggler/upgrade-sim/internal/services/upgrade"
)

// HandlerConfig holds the dependencies for a console handler
type HandlerConfig struct {
	Session         *session.Session // Required
	UpgradeService  upgrade.Service  // Required
	TrainingService training.Service // Required
	Input           io.Reader        // Required
	Output          io.Writer        // Required
	Verbose         bool             // Print per-effect lines on tick
}

// Handler drives one session from line-oriented text input
type Handler struct {
	session  *session.Session
	upgrades upgrade.Service
	training training.Service
	in       *bufio.Scanner
	out      io.Writer
	verbose  bool

	commands map[string]command
}

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, args []string) error
}

// errQuit ends Run without an error
var errQuit = simerrors.New(simerrors.CodeUnknown, "quit")

// NewHandler creates a console handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg == nil || cfg.Session == nil {
		panic("session is required")
	}
	if cfg.UpgradeService == nil {
		panic("upgrade service is required")
	}
	if cfg.TrainingService == nil {
		panic("training service is required")
	}
	if cfg.Input == nil || cfg.Output == nil {
		panic("input and output are required")
	}

	h := &Handler{
		session:  cfg.Session,
		upgrades: cfg.UpgradeService,
		training: cfg.TrainingService,
		in:       bufio.NewScanner(cfg.Input),
		out:      cfg.Output,
		verbose:  cfg.Verbose,
	}

	h.commands = map[string]command{
		"propose": {usage: "propose", help: "offer 3 random upgrades and apply the one picked", run: h.handlePropose},
		"learn":   {usage: "learn <node> [tree]", help: "learn a skill tree node (tree defaults to fighter)", run: h.handleLearn},
		"apply":   {usage: "apply <tree>", help: "apply a tree's learned upgrades to base stats, once per session", run: h.handleApply},
		"log":     {usage: "log <tree>", help: "show the upgrades queued on a tree", run: h.handleLog},
		"effect":  {usage: "effect <kind>", help: "attach a burn, bleed or poison effect to the training dummy", run: h.handleEffect},
		"tick":    {usage: "tick", help: "advance every effect on the training dummy once", run: h.handleTick},
		"status":  {usage: "status", help: "show character and training dummy state", run: h.handleStatus},
		"help":    {usage: "help", help: "list commands", run: h.handleHelp},
		"quit":    {usage: "quit", help: "leave the session", run: func(context.Context, []string) error { return errQuit }},
	}

	return h
}

// Run reads commands until quit, end of input or context cancellation.
// Command failures are printed and the loop continues.
func (h *Handler) Run(ctx context.Context) error {
	h.printf("Session %s. Type 'help' for commands.\n", h.session.Name)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		h.printf("> ")
		line, ok := h.readLine()
		if !ok {
			return h.in.Err()
		}

		err := h.Execute(ctx, line)
		if err == errQuit {
			return nil
		}
		if err != nil {
			h.printf("error: %v\n", err)
		}
	}
}

// Execute runs one command line
func (h *Handler) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	name := strings.ToLower(fields[0])
	cmd, ok := h.commands[name]
	if !ok {
		return simerrors.UnknownKey("command", name, h.commandNames())
	}
	return cmd.run(ctx, fields[1:])
}

// ParseSelection reads a 1-based proposal number
func ParseSelection(input string) (int, error) {
	trimmed := strings.TrimSpace(input)
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, simerrors.InvalidArgumentf("selection %q is not a number", trimmed)
	}
	return n, nil
}

func (h *Handler) handlePropose(ctx context.Context, _ []string) error {
	proposals, err := h.upgrades.Propose(ctx, h.session.Character)
	if err != nil {
		return err
	}

	for i, p := range proposals {
		h.printf("%d. %s\n", i+1, p)
	}
	h.printf("Choose an upgrade (1-%d): ", len(proposals))

	line, ok := h.readLine()
	if !ok {
		if err := h.in.Err(); err != nil {
			return err
		}
		return simerrors.InvalidArgumentf("no selection made")
	}

	selection, err := ParseSelection(line)
	if err != nil {
		return err
	}

	chosen, err := h.upgrades.Choose(ctx, h.session.Character, proposals, selection)
	if err != nil {
		return err
	}
	h.printf("Applied %s\n", chosen)
	return nil
}

func (h *Handler) handleLearn(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return simerrors.InvalidArgumentf("usage: %s", h.commands["learn"].usage)
	}
	treeKey := skilltree.FighterKey
	if len(args) == 2 {
		treeKey = args[1]
	}

	res, err := h.training.LearnNode(ctx, treeKey, args[0])
	if err != nil {
		return err
	}
	if !res.Queued {
		h.printf("%s is already learned %d times\n", res.Node.Key, res.Node.TimesLearned)
		return nil
	}
	h.printf("Learned: %s\n", res.Node)
	h.printf("%s can be learned %d more times\n", res.Node.Key, res.RemainingLearns)
	return nil
}

func (h *Handler) handleApply(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return simerrors.InvalidArgumentf("usage: %s", h.commands["apply"].usage)
	}

	applied, err := h.training.ApplyTree(ctx, args[0])
	if err == nil || applied > 0 {
		h.printf("Applied %d upgrades from %s\n", applied, args[0])
	}
	return err
}

func (h *Handler) handleLog(_ context.Context, args []string) error {
	if len(args) != 1 {
		return simerrors.InvalidArgumentf("usage: %s", h.commands["log"].usage)
	}

	queued, err := h.training.AppliedLog(args[0])
	if err != nil {
		return err
	}
	if len(queued) == 0 {
		h.printf("Nothing learned in %s yet\n", args[0])
		return nil
	}
	for i, u := range queued {
		h.printf("%d. %s\n", i+1, u)
	}
	return nil
}

func (h *Handler) handleEffect(_ context.Context, args []string) error {
	if len(args) != 1 {
		return simerrors.InvalidArgumentf("usage: %s", h.commands["effect"].usage)
	}

	kind, err := effects.ParseKind(strings.ToLower(args[0]))
	if err != nil {
		return err
	}
	e, err := h.session.Unit.ApplyEffect(kind)
	if err != nil {
		return err
	}
	h.printf("%s applied for %.1fs\n", e.Label, e.Remaining)
	return nil
}

func (h *Handler) handleTick(_ context.Context, _ []string) error {
	report := h.session.Unit.Tick(h.verbose)
	if !report.HadEffects {
		h.printf("No effects to tick\n")
		return nil
	}
	h.printf("Ticked %d effects for %d damage, %d expired. Health: %d\n",
		report.Ticked, report.Damage, report.Expired, h.session.Unit.Health)
	return nil
}

func (h *Handler) handleStatus(_ context.Context, _ []string) error {
	c := h.session.Character
	u := h.session.Unit

	h.printf("%s attributes: %s\n", c.Name, c.Bank)
	for _, a := range c.Loadout.Equipped() {
		h.printf("  %s\n", a)
	}
	h.printf("%s health: %d, active effects: %d", u.Name, u.Health, u.ActiveEffects())
	if u.Defeated() {
		h.printf(" (defeated)")
	}
	h.printf("\n")
	for _, kind := range effects.Implemented() {
		if dmg := u.DamageTaken(kind); dmg > 0 {
			h.printf("  %s damage taken: %d\n", kind, dmg)
		}
	}
	return nil
}

func (h *Handler) handleHelp(_ context.Context, _ []string) error {
	for _, name := range h.commandNames() {
		cmd := h.commands[name]
		h.printf("  %-22s %s\n", cmd.usage, cmd.help)
	}
	return nil
}

func (h *Handler) commandNames() []string {
	names := make([]string, 0, len(h.commands))
	for name := range h.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (h *Handler) readLine() (string, bool) {
	if !h.in.Scan() {
		return "", false
	}
	return h.in.Text(), true
}

func (h *Handler) printf(format string, args ...any) {
	fmt.Fprintf(h.out, format, args...)
}
