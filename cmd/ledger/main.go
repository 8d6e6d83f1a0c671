package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/evgeny-myasishchev/finance-tracker/config"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/app"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/client"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/ledger"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/lib-core-golang/diag"
)

var logger = diag.CreateLogger()

var cliArgs commandArgs

func parseArgs() {
	flag.StringVar(&cliArgs.cmd, "cmd", "", "Command to run. Available commands: add, delete, list, summary, categories")
	flag.StringVar(&cliArgs.description, "description", "", "Description of a new transaction")
	flag.StringVar(&cliArgs.amount, "amount", "", "Amount of a new transaction")
	flag.StringVar(&cliArgs.trxType, "type", "", "Type of a new transaction (income or expense), also used by categories")
	flag.StringVar(&cliArgs.category, "category", "", "Category of a new transaction")
	flag.StringVar(&cliArgs.date, "date", "", "Date of a new transaction (YYYY-MM-DD), today if empty")
	flag.Int64Var(&cliArgs.id, "id", 0, "Id of a transaction to delete")
	flag.StringVar(&cliArgs.filterType, "filter-type", "", "Show transactions of a given type only")
	flag.StringVar(&cliArgs.filterCategory, "filter-category", "", "Show transactions of a given category only")
	flag.StringVar(&cliArgs.api, "api", "", "Base url of a running server. Local storage is used if empty")

	flag.Parse()
}

func showHelpAndExit() {
	flag.PrintDefaults()
	os.Exit(1)
}

func main() {
	parseArgs()
	if cliArgs.cmd == "" {
		showHelpAndExit()
	}
	ctx := context.Background()

	_ = godotenv.Load()
	appCfg := config.LoadAppConfig()
	app.SetupLogging(appCfg)
	diag.SetupLoggingSystem(func(setup diag.LoggingSystemSetup) {
		setup.SetLogMode("text")
	})

	apiURL := cliArgs.api
	if apiURL == "" {
		apiURL = appCfg.Ledger.API.Value()
	}

	var err error
	if apiURL != "" {
		err = runCommand(ctx, cliArgs, remoteBackend{api: client.NewAPI(apiURL)}, os.Stdout, time.Now)
	} else {
		injector := app.BootstrapServices(ctx, appCfg)
		err = injector(func(manager *ledger.Manager, resources *app.Resources) error {
			defer resources.Close(ctx)
			return runCommand(ctx, cliArgs, localBackend{manager: manager}, os.Stdout, time.Now)
		})
	}
	if err == errUnknownCommand {
		showHelpAndExit()
	}
	if err != nil {
		logger.WithError(err).Error(ctx, "Command %v failed", cliArgs.cmd)
		os.Exit(1)
	}
}
