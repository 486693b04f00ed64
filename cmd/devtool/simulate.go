package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"

	"github.com/osse101/tidepool/internal/domain"
	"github.com/osse101/tidepool/internal/economy"
	"github.com/osse101/tidepool/internal/harvest"
	"github.com/osse101/tidepool/internal/provider"
	"github.com/osse101/tidepool/internal/rarity"
	"github.com/osse101/tidepool/internal/utils"
	"github.com/osse101/tidepool/internal/validation"
)

// SimulateCommand rolls many harvest attempts offline to tune the economy
type SimulateCommand struct{}

type simulationParams struct {
	ResourceType domain.ResourceType
	Rarity       string
	ToolKind     string
	Stamina      float64
	Attempts     int
}

type simulationReport struct {
	Attempts        int
	Successes       int
	Failures        map[domain.FailureReason]int
	PrimaryYield    int
	BonusYield      int
	RareDrops       int
	Experience      uint64
	StaminaCost     uint32
	DurationSeconds float64
}

func (r simulationReport) SuccessRate() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Successes) / float64(r.Attempts)
}

func (c *SimulateCommand) Name() string {
	return "simulate"
}

func (c *SimulateCommand) Description() string {
	return "Roll harvest attempts offline and report outcome rates"
}

func (c *SimulateCommand) Run(ctx context.Context, out *Printer, args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	configPath := fs.String("config", economy.DefaultConfigPath, "Economy config file")
	schemaPath := fs.String("schema", economy.DefaultSchemaPath, "Economy JSON schema")
	resource := fs.String("resource", string(domain.ResourceKelp), "Resource type")
	tier := fs.String("rarity", "Common", "Rarity tier name")
	tool := fs.String("tool", "", "Tool kind (empty for bare hands)")
	stamina := fs.Float64("stamina", 1.0, "Stamina percent in [0,1]")
	attempts := fs.Int("n", 10000, "Number of attempts")
	seed := fs.Uint64("seed", 1, "Random seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	table, err := economy.Load(*configPath, *schemaPath, validation.NewSchemaValidator())
	if err != nil {
		out.Error("%v", err)
		return err
	}

	params := simulationParams{
		ResourceType: domain.ResourceType(*resource),
		Rarity:       *tier,
		ToolKind:     *tool,
		Stamina:      *stamina,
		Attempts:     *attempts,
	}
	report, err := simulate(ctx, table, params, rand.New(rand.NewPCG(*seed, *seed)))
	if err != nil {
		out.Error("%v", err)
		return err
	}

	out.Header(fmt.Sprintf("%d attempts on %s %s", report.Attempts, params.Rarity, params.ResourceType))
	out.Info("success rate   %.2f%%", 100*report.SuccessRate())
	out.Info("primary yield  %d", report.PrimaryYield)
	out.Info("bonus yield    %d", report.BonusYield)
	out.Info("rare drops     %d", report.RareDrops)
	out.Info("experience     %d", report.Experience)
	out.Info("stamina cost   %d per attempt", report.StaminaCost)
	out.Info("duration       %.2fs per attempt", report.DurationSeconds)
	for reason, n := range report.Failures {
		out.Info("failure %-22s %d", reason, n)
	}
	return nil
}

func simulate(ctx context.Context, table *economy.Table, params simulationParams, rng utils.RandomSource) (simulationReport, error) {
	if params.Attempts <= 0 {
		return simulationReport{}, fmt.Errorf("%w: attempts must be positive", domain.ErrInvalidInput)
	}

	assigner, err := rarity.NewAssigner(table.Tiers())
	if err != nil {
		return simulationReport{}, err
	}
	tier, ok := assigner.Lookup(params.Rarity)
	if !ok {
		return simulationReport{}, fmt.Errorf("%w: unknown rarity %q", domain.ErrInvalidInput, params.Rarity)
	}

	var toolCtx *domain.ToolContext
	if params.ToolKind != "" {
		toolCtx = &domain.ToolContext{Kind: params.ToolKind}
	}
	tool, err := provider.DefaultToolCatalog().EffectivenessFor(ctx, toolCtx, params.ResourceType)
	if err != nil {
		return simulationReport{}, err
	}

	resolver := harvest.NewResolver(table)
	attempt := harvest.Attempt{
		ResourceType:   params.ResourceType,
		Rarity:         tier,
		Tool:           tool,
		StaminaPercent: params.Stamina,
	}

	report := simulationReport{
		Attempts:        params.Attempts,
		Failures:        make(map[domain.FailureReason]int),
		StaminaCost:     harvest.StaminaCost(params.Stamina),
		DurationSeconds: harvest.DurationSeconds(tool),
	}
	for i := 0; i < params.Attempts; i++ {
		outcome, err := resolver.Resolve(attempt, rng)
		if err != nil {
			return simulationReport{}, err
		}
		if !outcome.Success {
			report.Failures[outcome.FailureReason]++
			continue
		}
		report.Successes++
		for _, n := range outcome.PrimaryYield {
			report.PrimaryYield += n
		}
		for _, n := range outcome.BonusYield {
			report.BonusYield += n
		}
		if outcome.RareDrop != "" {
			report.RareDrops++
		}
		report.Experience += uint64(outcome.Experience)
	}
	return report, nil
}
