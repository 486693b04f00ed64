package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/osse101/tidepool/internal/economy"
	"github.com/osse101/tidepool/internal/validation"
)

type ValidateEconomyCommand struct{}

func (c *ValidateEconomyCommand) Name() string {
	return "validate-economy"
}

func (c *ValidateEconomyCommand) Description() string {
	return "Validate the economy config against its schema and table rules"
}

func (c *ValidateEconomyCommand) Run(ctx context.Context, out *Printer, args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	configPath := fs.String("config", economy.DefaultConfigPath, "Economy config file")
	schemaPath := fs.String("schema", economy.DefaultSchemaPath, "Economy JSON schema")
	if err := fs.Parse(args); err != nil {
		return err
	}

	out.Header(fmt.Sprintf("Validating %s", *configPath))

	table, err := economy.Load(*configPath, *schemaPath, validation.NewSchemaValidator())
	if err != nil {
		out.Error("%v", err)
		return err
	}

	for _, tier := range table.Tiers() {
		out.Info("tier %-10s weight=%.2f respawn×%.2f difficulty=%.2f bonus=%.2f",
			tier.Name, tier.SelectionWeight, tier.RespawnMultiplier, tier.HarvestDifficulty, tier.BonusChance)
	}
	for _, rt := range table.ResourceTypes() {
		res, _ := table.Resource(rt)
		out.Info("resource %-8s respawn=%.0fs rare=%s", rt, res.BaseRespawnSeconds, res.RareMaterial)
	}

	out.Success("Economy config is valid (%d tiers, %d resources)", len(table.Tiers()), len(table.ResourceTypes()))
	return nil
}
