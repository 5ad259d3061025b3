package main

import (
	"fmt"
	"os"

	"github.com/setdocai/setdoc-admin-go/internal/adapter/driven/api"
	"github.com/setdocai/setdoc-admin-go/internal/adapter/driven/config"
	"github.com/setdocai/setdoc-admin-go/internal/adapter/driven/export"
	"github.com/setdocai/setdoc-admin-go/internal/adapter/driving/cli"
	"github.com/setdocai/setdoc-admin-go/internal/application/usecase"
	"github.com/setdocai/setdoc-admin-go/pkg/console"
	"github.com/setdocai/setdoc-admin-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	apiRepo := api.NewAPIRepository(cli.DefaultBaseURL)
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	adminUseCase := usecase.NewAdminUseCase(
		apiRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	// Define o caso de uso no aplicativo CLI
	app.SetAdminUseCase(adminUseCase)
	app.SetConfigRepository(configRepo)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
