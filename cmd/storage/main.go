package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/evgeny-myasishchev/finance-tracker/config"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/app"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/dal"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/lib-core-golang/diag"
)

var logger = diag.CreateLogger()

var cliArgs struct {
	cmd string
}

func init() {
	flag.StringVar(&cliArgs.cmd, "cmd", "", "Command to run. Available commands: setup")

	flag.Parse()
}

func showHelpAndExit() {
	flag.PrintDefaults()
	os.Exit(1)
}

func main() {
	if cliArgs.cmd == "" {
		showHelpAndExit()
	}
	ctx := context.Background()

	_ = godotenv.Load()
	appCfg := config.LoadAppConfig()
	app.SetupLogging(appCfg)

	injector := app.BootstrapServices(ctx, appCfg)

	switch cliArgs.cmd {
	case "setup":
		if err := injector(func(storage dal.Storage, resources *app.Resources) error {
			defer resources.Close(ctx)
			return storage.Setup(ctx)
		}); err != nil {
			logger.WithError(err).Error(ctx, "Failed to setup storage")
			os.Exit(1)
		}

	default:
		showHelpAndExit()
	}
}
