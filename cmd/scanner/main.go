package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"arbscanner/config"
	"arbscanner/internal/scanner"
	"arbscanner/logger"

	"go.uber.org/zap"
)

func main() {
	args, err := scanner.ParseArgs(os.Args[1:])
	if errors.Is(err, scanner.ErrUsage) {
		fmt.Print(scanner.Usage())
		os.Exit(1)
	}
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	// viper config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	ctx := context.Background()

	s, err := scanner.New(ctx, cfg, log, os.Stdout)
	if err != nil {
		log.Fatal("scanner setup failed", zap.Error(err))
	}
	defer s.Close()

	if _, err := s.Run(ctx, args); err != nil {
		log.Error("scan failed", zap.Error(err))
		s.Close()
		log.Sync()
		os.Exit(1)
	}
}
