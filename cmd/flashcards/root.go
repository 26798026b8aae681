package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	mongoOptions "go.mongodb.org/mongo-driver/mongo/options"

	store "github.com/likearthian/cardstore"
	"github.com/likearthian/cardstore/card"
	"github.com/likearthian/cardstore/internal/config"
	"github.com/likearthian/cardstore/internal/monitor"
)

var (
	configFile string
	verbose    bool

	cfg    *config.Config
	logger = logrus.New()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "flashcards",
	Short:         "Flashcard API backed by a document store",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return err
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		return setupLogger(cfg.Log)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to the config file (default configs/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func setupLogger(lc config.LogConfig) error {
	level, err := logrus.ParseLevel(lc.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	if verbose {
		level = logrus.DebugLevel
	}

	logger.SetLevel(level)
	logger.SetOutput(os.Stderr)

	if strings.EqualFold(lc.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return nil
}

// openCards connects to the configured database and binds the card
// repository. Driver commands are reported to reg and the logger.
func openCards(ctx context.Context, reg prometheus.Registerer) (store.Repository[card.Card], *mongo.Client, error) {
	mon := monitor.CommandMonitor(monitor.NewMetrics(reg), logger.WithField("component", "mongo"))

	db, err := store.Connect(ctx, cfg.Mongo, mongoOptions.Client().SetMonitor(mon))
	if err != nil {
		return nil, nil, err
	}

	cards, err := store.CreateMongoRepository[card.Card](db)
	if err != nil {
		_ = db.Client().Disconnect(context.Background())
		return nil, nil, err
	}

	logger.WithFields(logrus.Fields{
		"database":   cfg.Mongo.DatabaseName,
		"collection": cards.CollectionName(),
	}).Info("connected to database")

	return cards, db.Client(), nil
}
