package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/likearthian/cardstore/card"
)

// seedFile is the layout of a seed document:
//
//	cards:
//	  - group: Spanish
//	    front: hola
//	    back: hello
type seedFile struct {
	Cards []card.Card `yaml:"cards"`
}

var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Insert the cards listed in a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cards, err := readSeedFile(args[0])
		if err != nil {
			return err
		}

		repo, client, err := openCards(cmd.Context(), prometheus.NewRegistry())
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(cmd.Context()) }()

		if err := repo.InsertMany(cmd.Context(), cards); err != nil {
			return fmt.Errorf("seed %s: %w", args[0], err)
		}

		logger.WithField("count", len(cards)).Info("cards inserted")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// readSeedFile decodes path and gives every card without an id a new one.
func readSeedFile(path string) ([]card.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	for i := range seed.Cards {
		if seed.Cards[i].ID == uuid.Nil {
			seed.Cards[i].ID = uuid.New()
		}
	}

	return seed.Cards, nil
}
