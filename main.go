package main

import (
	"flag"
	"log"
	"os"
)

func main() {
	runOnce := flag.Bool("run", false, "run the full pipeline once and exit")
	importCSV := flag.String("import", "", "load a transaction CSV into the database and exit")
	schedule := flag.String("schedule", "", "cron expression overriding the configured schedule")
	flag.Parse()

	cfg := LoadConfig()
	if *schedule != "" {
		cfg.Schedule = *schedule
	}

	db, err := InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}
	defer db.Close()

	for _, dir := range []string{cfg.DataDir, cfg.OutputDir, cfg.ExcelDir} {
		os.MkdirAll(dir, 0755)
	}

	if *importCSV != "" {
		inserted, err := ImportTransactionsCSV(db, cfg, *importCSV)
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		log.Printf("Imported %d transactions from %s", inserted, *importCSV)
		return
	}

	if *runOnce {
		if err := RunFullPipeline(cfg, db); err != nil {
			log.Fatalf("Pipeline failed: %v", err)
		}
		return
	}

	if StartPipelineScheduler(cfg, db) {
		log.Printf("Scheduler running, press Ctrl+C to stop")
		select {}
	}

	RunMenu(cfg, db)
}
