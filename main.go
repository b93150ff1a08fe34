package main

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/alexkola94/Paire-sub001/api"
	"github.com/alexkola94/Paire-sub001/internal/config"
	"github.com/alexkola94/Paire-sub001/internal/logging"
	"github.com/alexkola94/Paire-sub001/internal/operator"
	"github.com/alexkola94/Paire-sub001/internal/service"
	"github.com/alexkola94/Paire-sub001/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("reconciliation-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage := storage.NewStorage(envConfig)

	delegator := operator.NewOperatorDelegator(dbStorage, 4)
	delegator.Start()
	defer delegator.Stop()

	svc := service.NewService(dbStorage, delegator, logger)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:  logger,
			Port:    envConfig.HTTPPort,
			Service: svc,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
