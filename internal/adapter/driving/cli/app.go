package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/setdocai/setdoc-admin-go/pkg/version"

	"github.com/setdocai/setdoc-admin-go/internal/application/usecase"
	"github.com/setdocai/setdoc-admin-go/internal/domain/repository"
	"github.com/setdocai/setdoc-admin-go/internal/shared/types"
	"github.com/spf13/cobra"
)

// DefaultBaseURL é o gateway de produção; sobrescreva com --base-url ou config.
const DefaultBaseURL = "https://setdoc-api-gateway-308638875599.southamerica-east1.run.app"

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd      *cobra.Command
	adminUseCase *usecase.AdminUseCase
	configRepo   repository.ConfigRepository
	version      string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "setdoc-admin",
		Short:   "Painel de Gestão SetDoc AI",
		Version: formattedVersion,
		RunE:    app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "SetDoc Admin Dashboard version: %s\n" .Version}}`)

	// Adiciona flags de linha de comando
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("base-url", "u", "", "Base URL of the SetDoc admin API")
	rootCmd.PersistentFlags().StringP("api-key", "k", "", "Administrator API key (defaults to SETDOC_API_KEY)")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the billing report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf, xlsx")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().IntP("billing-days", "t", 0, "Default billing window in days (default: 30)")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	configFile, _ := app.rootCmd.Flags().GetString("config-file")
	baseURL, _ := app.rootCmd.Flags().GetString("base-url")
	apiKey, _ := app.rootCmd.Flags().GetString("api-key")
	reportName, _ := app.rootCmd.Flags().GetString("report-name")
	reportType, _ := app.rootCmd.Flags().GetStringSlice("report-type")
	dir, _ := app.rootCmd.Flags().GetString("dir")
	billingDays, _ := app.rootCmd.Flags().GetInt("billing-days")

	if apiKey == "" {
		apiKey = os.Getenv("SETDOC_API_KEY")
	}

	// Set default directory to current working directory if not specified
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	} else {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		ConfigFile:  configFile,
		BaseURL:     baseURL,
		APIKey:      apiKey,
		ReportName:  reportName,
		ReportType:  reportType,
		Dir:         dir,
		BillingDays: billingDays,
	}

	return args, nil
}

// mergeConfigFile sobrepõe os argumentos vazios com os valores do arquivo.
func mergeConfigFile(args *types.CLIArgs, config *types.Config) {
	if args.BaseURL == "" {
		args.BaseURL = config.BaseURL
	}
	if args.APIKey == "" {
		args.APIKey = config.APIKey
	}
	if args.ReportName == "" {
		args.ReportName = config.ReportName
	}
	if len(config.ReportType) > 0 {
		args.ReportType = config.ReportType
	}
	if config.Dir != "" {
		args.Dir = config.Dir
	}
	if args.BillingDays == 0 {
		args.BillingDays = config.BillingDays
	}
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	// Exibe o banner de boas-vindas
	displayWelcomeBanner(app.version)

	// Verifica a versão mais recente disponível
	go version.CheckLatestVersion(app.version)

	// Analisa os argumentos da linha de comando
	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	// Lida com o arquivo de configuração, se especificado
	if cliArgs.ConfigFile != "" && app.configRepo != nil {
		config, err := app.configRepo.LoadConfigFile(cliArgs.ConfigFile)
		if err != nil {
			return err
		}
		mergeConfigFile(cliArgs, config)
	}

	if cliArgs.BaseURL == "" {
		cliArgs.BaseURL = DefaultBaseURL
	}
	app.adminUseCase.SetBaseURL(cliArgs.BaseURL)

	// Executa o painel interativo
	ctx := context.Background()
	return app.adminUseCase.RunDashboard(ctx, cliArgs)
}

// SetAdminUseCase sets the admin use case for the CLI app.
func (app *CLIApp) SetAdminUseCase(useCase *usecase.AdminUseCase) {
	app.adminUseCase = useCase
}

// SetConfigRepository sets the config repository used for --config-file.
func (app *CLIApp) SetConfigRepository(configRepo repository.ConfigRepository) {
	app.configRepo = configRepo
}
