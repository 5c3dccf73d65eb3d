package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/motion_beacon/internal/app"
	"github.com/relabs-tech/motion_beacon/internal/config"
)

func main() {
	configPath := flag.String("config", "./beacon_config.txt", "path to configuration file")
	input := flag.String("input", "", "CSV file of recorded samples (Timestamp,X,Y,Z)")
	flag.Parse()

	if *input == "" {
		log.Fatalf("missing required -input flag")
	}

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunClassify(*input); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
