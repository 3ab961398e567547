package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/spurll/weather/internal/adapter/openweather"
	"github.com/spurll/weather/internal/adapter/slack"
	"github.com/spurll/weather/internal/config"
	"github.com/spurll/weather/internal/domain"
	"github.com/spurll/weather/internal/observability"
	"github.com/spurll/weather/internal/pipeline"
)

func main() {
	city := flag.String("city", "", "city whose weather to check (default: DEFAULT_CITY from the environment)")
	notify := flag.Bool("notify", false, "tag the user (or @channel) in the message")
	terse := flag.Bool("terse", false, "deliver the weather with fewer words")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [flags] recipient [recipient ...]\n\n"+
				"Sends a Slack message containing today's weather forecast.\n"+
				"Recipients are Slack handles (@name, #channel) or free-text names\n"+
				"resolved against the workspace directory.\n\n",
			os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	tokens := flag.Args()
	if len(tokens) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if *city == "" {
		*city = cfg.DefaultCity
	}

	forecaster := openweather.NewClient(
		cfg.OWMToken, domain.SchemaVariant(cfg.ForecastMode), cfg.OWMTimeout, metrics, logger)
	messenger := slack.NewClient(
		cfg.SlackToken, cfg.BotName, cfg.SlackTimeout, metrics, logger)

	p := pipeline.New(forecaster, messenger, messenger, logger, metrics)
	p.Run(context.Background(), tokens, pipeline.Options{
		City:   *city,
		Notify: *notify,
		Terse:  *terse,
	})
}
