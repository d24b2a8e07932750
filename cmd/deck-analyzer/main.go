// cmd/deck-analyzer/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"pitchdeck-pipeline/internal/catalog"
	"pitchdeck-pipeline/internal/common/config"
	"pitchdeck-pipeline/internal/common/logger"
	"pitchdeck-pipeline/internal/models"
	"pitchdeck-pipeline/internal/pipeline"
	"pitchdeck-pipeline/pkg/registry"
)

func main() {
	transcriptPath := flag.String("transcript", "", "path to a transcript JSON file (array of {role, content})")
	responsePath := flag.String("response", "", "path to a raw model response to extract and repair")
	configPath := flag.String("config", "", "explicit config file path (default: configs/config.yaml)")
	flag.Parse()

	if *transcriptPath == "" && *responsePath == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: pass -transcript and/or -response")
		flag.Usage()
		os.Exit(2)
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)

	cat := catalog.New()
	if cfg.Catalog.RegistryPath != "" {
		cat, err = registry.LoadCatalog(cfg.Catalog.RegistryPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load catalog override: %v\n", err)
			os.Exit(1)
		}
	}

	p := pipeline.New(cfg, cat, log)

	output := map[string]interface{}{}

	if *transcriptPath != "" {
		transcript, err := readTranscript(*transcriptPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read transcript: %v\n", err)
			os.Exit(1)
		}
		output["progress"] = p.Analyze(transcript)
		output["selection"] = p.Score(transcript)
	}

	if *responsePath != "" {
		raw, err := os.ReadFile(*responsePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read response: %v\n", err)
			os.Exit(1)
		}
		result, err := p.Process(string(raw))
		if err != nil {
			fmt.Fprintf(os.Stderr, "process response: %v\n", err)
			os.Exit(1)
		}
		output["documents"] = result
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		fmt.Fprintf(os.Stderr, "encode output: %v\n", err)
		os.Exit(1)
	}
}

func readTranscript(path string) (models.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var transcript models.Transcript
	if err := json.Unmarshal(data, &transcript); err != nil {
		return nil, fmt.Errorf("parse transcript: %w", err)
	}
	return transcript, nil
}
