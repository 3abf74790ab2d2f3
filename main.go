package main

import (
	"log"
	"os"

	"github.com/TFMV/repotree/cmd"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v", r)
			os.Exit(1)
		}
	}()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
