package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/hgye/sqlitefmt/internal/render"
	"github.com/hgye/sqlitefmt/internal/sqlitefmt"
)

// Usage: sqlitefmt <database-file> <command> [--json]
//
// Commands: .dbinfo, .tables, .schema, dump
func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: sqlitefmt <database-file> <command> [--json]")
		os.Exit(1)
	}

	databaseFilePath := os.Args[1]
	command := os.Args[2]
	asJSON := false
	for _, arg := range os.Args[3:] {
		if arg == "--json" {
			asJSON = true
		}
	}

	if err := run(log, databaseFilePath, command, asJSON, os.Stdout); err != nil {
		if asJSON {
			render.JSONError(os.Stdout, err)
		} else {
			log.WithError(err).Error("command failed")
		}
		os.Exit(1)
	}
}

func run(log *logrus.Logger, path, command string, asJSON bool, w *os.File) error {
	db, err := sqlitefmt.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.WithError(cerr).Warn("failed to release database resources")
		}
	}()

	if asJSON {
		return render.JSON(w, db)
	}

	switch command {
	case ".dbinfo":
		return render.DbInfo(w, db)
	case ".tables":
		return render.Tables(w, db)
	case ".schema":
		return render.Schema(w, db)
	case "dump":
		return render.Dump(w, db)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}
