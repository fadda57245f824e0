package batch

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/upgrade-sim/internal/dice"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/attributes"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/session"
	"github.com/KirkDiggler/upgrade-sim/internal/domain/skilltree"
	"github.com/KirkDiggler/upgrade-sim/internal/effects"
	simerrors "github.com/KirkDiggler/upgrade-sim/internal/errors"
	"github.com/KirkDiggler/upgrade-sim/internal/services"
	sessionService "github.com/KirkDiggler/upgrade-sim/internal/services/session"
)

// ProposalRounds is how many upgrade choices each session makes
const ProposalRounds = 3

// fighterPlan is the learn order each session follows
var fighterPlan = []string{"fighter_01", "fighter_01", "fighter_02", "fighter_03"}

// Summary is the outcome of one session
type Summary struct {
	SessionID   string
	Name        string
	Chosen      []string
	Damage      float64 // effective damage attribute at the end
	CastRate    float64
	Area        float64
	UnitHealth  int
	DamageTaken map[effects.Kind]int
}

// String renders a one-line report
func (s *Summary) String() string {
	return fmt.Sprintf("%s: damage %.2f, cast rate %.2f, area %.2f, dummy health %d, burn %d, bleed %d, poison %d",
		s.Name, s.Damage, s.CastRate, s.Area, s.UnitHealth,
		s.DamageTaken[effects.Burn], s.DamageTaken[effects.Bleed], s.DamageTaken[effects.Poison])
}

// Config holds the dependencies for a Runner
type Config struct {
	SessionService sessionService.Service // Required
	Sessions       int                    // Required, at least 1
	Ticks          int
	Seed           int64 // session i uses Seed+i; 0 seeds every session from the clock
	Verbose        bool
}

// Runner plays several independent sessions at once
type Runner struct {
	sessions sessionService.Service
	count    int
	ticks    int
	seed     int64
	verbose  bool
}

// NewRunner creates a Runner
func NewRunner(cfg *Config) (*Runner, error) {
	if cfg == nil || cfg.SessionService == nil {
		return nil, simerrors.InvalidArgumentf("session service is required")
	}
	if cfg.Sessions < 1 {
		return nil, simerrors.InvalidArgumentf("at least one session is required, got %d", cfg.Sessions)
	}
	if cfg.Ticks < 0 {
		return nil, simerrors.InvalidArgumentf("ticks cannot be negative, got %d", cfg.Ticks)
	}

	return &Runner{
		sessions: cfg.SessionService,
		count:    cfg.Sessions,
		ticks:    cfg.Ticks,
		seed:     cfg.Seed,
		verbose:  cfg.Verbose,
	}, nil
}

// Run plays every session concurrently and returns their summaries in session
// order. The first failure cancels the sessions still running.
func (r *Runner) Run(ctx context.Context) ([]*Summary, error) {
	summaries := make([]*Summary, r.count)
	g, ctx := errgroup.WithContext(ctx)

	for i := range r.count {
		g.Go(func() error {
			seed := int64(0)
			if r.seed != 0 {
				seed = r.seed + int64(i)
			}
			summary, err := r.play(ctx, fmt.Sprintf("batch-%d", i+1), seed)
			if err != nil {
				return simerrors.Wrapf(err, "session %d failed", i+1)
			}
			summaries[i] = summary
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *Runner) play(ctx context.Context, name string, seed int64) (*Summary, error) {
	sess, err := r.sessions.CreateSession(ctx, &sessionService.CreateSessionInput{Name: name, Seed: seed})
	if err != nil {
		return nil, err
	}
	defer func() {
		if endErr := r.sessions.EndSession(context.Background(), sess.ID); endErr != nil {
			log.Printf("[BATCH] Failed to end session %s: %v", sess.ID, endErr)
		}
	}()

	svc := services.ForSession(sess)

	for _, node := range fighterPlan {
		if _, err := svc.Training.LearnNode(ctx, skilltree.FighterKey, node); err != nil {
			return nil, err
		}
	}
	if _, err := svc.Training.ApplyTree(ctx, skilltree.FighterKey); err != nil {
		return nil, err
	}

	summary := &Summary{SessionID: sess.ID, Name: name, DamageTaken: make(map[effects.Kind]int)}
	for round := 0; round < ProposalRounds; round++ {
		proposals, err := svc.Upgrades.Propose(ctx, sess.Character)
		if err != nil {
			return nil, err
		}
		pick, err := dice.Pick(sess.Roller, len(proposals))
		if err != nil {
			return nil, err
		}
		chosen, err := svc.Upgrades.Choose(ctx, sess.Character, proposals, pick+1)
		if err != nil {
			return nil, err
		}
		summary.Chosen = append(summary.Chosen, chosen.String())
	}

	for _, kind := range effects.Implemented() {
		if _, err := sess.Unit.ApplyEffect(kind); err != nil {
			return nil, err
		}
	}
	for tick := 0; tick < r.ticks; tick++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sess.Unit.Tick(r.verbose)
	}

	fillSummary(summary, sess)
	return summary, nil
}

func fillSummary(summary *Summary, sess *session.Session) {
	bank := sess.Character.Bank
	summary.Damage = bank.Effective(attributes.Damage)
	summary.CastRate = bank.Effective(attributes.CastRate)
	summary.Area = bank.Effective(attributes.Area)
	summary.UnitHealth = sess.Unit.Health
	for _, kind := range effects.Implemented() {
		summary.DamageTaken[kind] = sess.Unit.DamageTaken(kind)
	}
}
