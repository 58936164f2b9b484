package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker <sites|schema|prefs> [args]")
	}

	var err error
	switch os.Args[1] {
	case "sites":
		err = RunSites(os.Args[2:])
	case "schema":
		err = RunSchema(os.Args[2:])
	case "prefs":
		err = RunPrefs(os.Args[2:])
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}
