package main

import (
	"log"
	"os"

	"lsmc/cmd"
)

func main() {
	cfg, err := cmd.LoadConfig(os.Getenv("LSMC_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}
	deps, err := cmd.InitializeDependencies(cfg)
	if err != nil {
		log.Fatal(err)
	}
	err = deps.ApiHandler.StartApi(cfg.Server.Port)
	if err != nil {
		log.Fatal(err)
	}
}
