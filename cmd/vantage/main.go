package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/vantage-chess/vantage/uci"
)

const (
	name   = "Vantage"
	author = "Vantage contributors"
)

var flgHash int

func main() {
	flag.IntVar(&flgHash, "hash", 64, "transposition table size in megabytes")
	flag.Parse()

	var logger = log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)
	logger.Println(name,
		"RuntimeVersion", runtime.Version(),
		"GOARCH", runtime.GOARCH,
		"GOOS", runtime.GOOS,
		"NumCPU", runtime.NumCPU(),
	)

	var protocol = uci.New(name, author, flgHash, logger)
	if err := protocol.Run(); err != nil {
		logger.Println(err)
	}
}
