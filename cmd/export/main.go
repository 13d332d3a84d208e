package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/mverdier/driver-management-api/internal/config"
	"github.com/mverdier/driver-management-api/internal/database"
	"github.com/mverdier/driver-management-api/internal/export"
	"github.com/mverdier/driver-management-api/internal/logging"
	"github.com/mverdier/driver-management-api/internal/validation"
)

func main() {
	var (
		output         = flag.String("output", "conducteurs_actifs.json", "output file")
		format         = flag.String("format", "json", "output format: json or xlsx")
		service        = flag.String("service", "", "filter by service name substring")
		site           = flag.String("site", "", "filter by site name substring")
		noInterim      = flag.Bool("no-interim", false, "exclude temporary drivers")
		includeRelated = flag.Bool("include-related", false, "include related services, sites and companies")
		stats          = flag.Bool("stats", false, "print detailed statistics")
	)
	flag.Parse()

	if *format != "json" && *format != "xlsx" {
		log.Fatalf("Unsupported format %q, expected json or xlsx", *format)
	}

	cfg := config.Load()

	logger, err := logging.Init(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Closer()

	if err := database.Connect(cfg); err != nil {
		logger.Sugar.Fatalw("Failed to connect to database", "err", err)
	}

	opts := export.Options{
		Service:        *service,
		Site:           *site,
		NoInterim:      *noInterim,
		IncludeRelated: *includeRelated,
	}
	if opts.Service != "" {
		logger.Sugar.Infow("Filtering by service", "service", opts.Service)
	}
	if opts.Site != "" {
		logger.Sugar.Infow("Filtering by site", "site", opts.Site)
	}
	if opts.NoInterim {
		logger.Sugar.Infow("Excluding temporary drivers")
	}

	today := validation.DateOnly(time.Now())
	exporter := export.NewExporter(database.GetDB())

	drivers, err := exporter.Drivers(opts, today)
	if err != nil {
		logger.Sugar.Fatalw("Failed to query drivers", "err", err)
	}

	if len(drivers) == 0 {
		logger.Sugar.Warnw("No driver matched the filters")
		return
	}
	logger.Sugar.Infow("Active drivers found", "count", len(drivers))

	if *stats {
		export.ComputeStats(drivers, today).Print(os.Stdout)
	}

	ds := export.BuildDataset(drivers, opts.IncludeRelated)

	switch *format {
	case "xlsx":
		if err := exporter.WriteXLSX(*output, ds); err != nil {
			logger.Sugar.Fatalw("Failed to write workbook", "err", err)
		}
	default:
		f, err := os.Create(*output)
		if err != nil {
			logger.Sugar.Fatalw("Failed to create output file", "err", err)
		}
		defer f.Close()
		if err := exporter.WriteJSON(f, ds); err != nil {
			logger.Sugar.Fatalw("Failed to write JSON", "err", err)
		}
	}

	logger.Sugar.Infow("Export written", "output", *output, "format", *format, "drivers", len(ds.Drivers))
}
