package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/JaimeStill/vibematch/internal/config"
	"github.com/JaimeStill/vibematch/internal/infrastructure"
	"github.com/JaimeStill/vibematch/internal/matching"
	"github.com/JaimeStill/vibematch/internal/pipeline"
	"github.com/JaimeStill/vibematch/internal/prompts"
	"github.com/JaimeStill/vibematch/internal/vocabulary"
)

func main() {
	var (
		configPath = flag.String("config", config.BaseConfigFile, "Path to the base config file")
		check      = flag.Bool("check", false, "Report model and agent settings, then exit")
		asJSON     = flag.Bool("json", false, "Write one JSON result per line")
	)
	flag.Parse()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if *check {
		if err := runCheck(os.Stdout, cfg); err != nil {
			log.Fatalf("check failed: %v", err)
		}
		return
	}

	files := flag.Args()
	if len(files) == 0 {
		fmt.Println("usage: vibematch [-config config.toml] [-json] <image>... | -check")
		flag.PrintDefaults()
		os.Exit(2)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		log.Fatalf("infrastructure init failed: %v", err)
	}
	if err := infra.Start(); err != nil {
		log.Fatalf("infrastructure start failed: %v", err)
	}
	infra.Lifecycle.WaitForStartup()
	defer infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())

	reg := vocabulary.Default()
	prompt := prompts.Compose(cfg.Pipeline.Guidance, reg)
	client := matching.NewAgentClient(cfg.Agent, prompt, infra.Logger)

	sys, err := pipeline.New(&cfg.Pipeline, infra.Background, client, reg, infra.Logger)
	if err != nil {
		log.Fatalf("pipeline init failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	entries := runBatch(ctx, sys, files, cfg.Pipeline.Capacity)
	failed := report(os.Stdout, entries, *asJSON)

	if failed > 0 {
		infra.Logger.Error("batch finished with failures", "failed", failed, "total", len(entries))
		stop()
		infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())
		os.Exit(1)
	}
}
