package main

import (
	"fmt"
	"os"

	"cfb-spotlight-pipeline/internal/artifacts"
	"cfb-spotlight-pipeline/internal/config"
	"cfb-spotlight-pipeline/internal/logging"
	"cfb-spotlight-pipeline/internal/validate"
)

const appVersion = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "cfb-spotlight-validate",
		Version: appVersion,
	})

	validator := validate.New(cfg, artifacts.NewFSStore(cfg.DataDir), logger)
	result, err := validator.Run()
	if err != nil {
		logging.Error(logger, "validation aborted", err, logging.FieldPath, cfg.DataDir)
		return 1
	}
	if !result.OK() {
		for _, issue := range result.Issues {
			fmt.Fprintln(os.Stderr, issue.String())
		}
		return 1
	}

	logging.Info(logger, "dataset valid", logging.FieldPath, cfg.DataDir)
	return 0
}
