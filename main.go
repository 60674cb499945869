package main

import (
	"flag"
	"fmt"
	"os"

	"student-records/server"

	"github.com/umakantv/go-utils/db/migrations"
)

func main() {
	commandFlag := flag.String("command", "start", "Command to run: start | migrate | create-migration")
	nameFlag := flag.String("name", "", "Migration name (alphanum+underscore only)")
	dirFlag := flag.String("dir", "./database/migrations", "Target directory for the new .sql file")
	flag.Parse()

	switch *commandFlag {
	case "start":
		server.StartServer()
	case "migrate":
		if err := server.Migrate(); err != nil {
			fmt.Fprintln(os.Stderr, "migrate:", err)
			os.Exit(1)
		}
	case "create-migration":
		migrations.CreateMigration(nameFlag, dirFlag)
	default:
		fmt.Println("Usage: go run main.go --command <start|migrate|create-migration> [--name <name> --dir <dir>]")
		os.Exit(1)
	}
}
