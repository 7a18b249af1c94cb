package main

import (
	"sitterhub/config"
	"sitterhub/di"
	"sitterhub/shared/logger"
)

func main() {
	logger.InitLogger()

	cfg := config.Get()
	logger.Configure(cfg)

	scheduler := di.InitializeSweeper()
	scheduler.Run()
}
