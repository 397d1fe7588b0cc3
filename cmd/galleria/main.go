package main

import (
	"flag"
	"os"

	"galleria/internal/app"
)

func main() {
	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	dbPath := flag.String("db", "", "Override the database path from config")
	flag.Parse()

	os.Exit(app.Main(*debug, *dbPath, flag.Args()))
}
