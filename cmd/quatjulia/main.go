package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/lukaszgryglicki/quatjulia/internal/quatjulia"
)

func main() {
	quatjulia.Debug = os.Getenv("DEBUG") != ""
	quatjulia.RAW = os.Getenv("RAW") != ""
	quatjulia.Stats = os.Getenv("STATS") != ""
	if quatjulia.Debug || quatjulia.Stats {
		level := slog.LevelInfo
		if quatjulia.Debug {
			level = slog.LevelDebug
		}
		quatjulia.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}
	if s := os.Getenv("TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			fmt.Printf("Error: TIMEOUT: %v\n", err)
			os.Exit(1)
		}
		quatjulia.Timeout = d
	}
	if s := os.Getenv("WORKERS"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			fmt.Printf("Error: WORKERS: %v\n", err)
			os.Exit(1)
		}
		quatjulia.Workers = n
	}
	profile := os.Getenv("PROFILE") != ""
	if profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	cfg := "scenes/config.json"
	if len(os.Args) > 1 {
		cfg = os.Args[1]
	}
	if err := quatjulia.Run(cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
