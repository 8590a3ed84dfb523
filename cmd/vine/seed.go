package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/vine/pkg/adapters/file"
	mongoadapter "github.com/aretw0/vine/pkg/adapters/mongo"
)

var seedCmd = &cobra.Command{
	Use:   "seed <quiz.yaml>",
	Short: "Load a quiz definition file into the configured Mongo catalog",
	Long:  `Reads an authored quiz YAML file and upserts its questions, products, rules, and restrictions into the Mongo catalog backend.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSeed(cmd, args[0]); err != nil {
			fmt.Printf("Seed failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Catalog seeded.")
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, path string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Catalog.Backend != "mongo" {
		return fmt.Errorf("seed writes to the mongo catalog backend, config has %q", cfg.Catalog.Backend)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading definition: %w", err)
	}
	var def file.Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return fmt.Errorf("parsing definition: %w", err)
	}

	ctx := cmd.Context()
	catalog, err := mongoadapter.Connect(ctx, cfg.Catalog.URI, cfg.Catalog.Database)
	if err != nil {
		return fmt.Errorf("connecting to mongo: %w", err)
	}
	defer catalog.Close(ctx)

	for _, q := range def.Questions {
		if err := catalog.UpsertQuestion(ctx, q); err != nil {
			return err
		}
	}
	for _, p := range def.Products {
		if err := catalog.UpsertProduct(ctx, p); err != nil {
			return err
		}
	}
	for _, r := range def.Rules {
		if err := catalog.UpsertRule(ctx, r); err != nil {
			return fmt.Errorf("rule for answer %q: %w", r.AnswerID, err)
		}
	}
	for _, r := range def.Restrictions {
		if err := catalog.InsertRestriction(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
