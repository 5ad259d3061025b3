package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/setdocai/setdoc-admin-go/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
         /$$$$$$             /$$     /$$$$$$$
        /$$__  $$           | $$    | $$__  $$
       | $$  \__/  /$$$$$$ /$$$$$$  | $$  \ $$  /$$$$$$   /$$$$$$$
       |  $$$$$$  /$$__  $$_  $$_/  | $$  | $$ /$$__  $$ /$$_____/
        \____  $$| $$$$$$$$ | $$    | $$  | $$| $$  \ $$| $$
        /$$  \ $$| $$_____/ | $$ /$$| $$  | $$| $$  | $$| $$
       |  $$$$$$/|  $$$$$$$ |  $$$$/| $$$$$$$/|  $$$$$$/|  $$$$$$$
        \______/  \_______/  \___/  |_______/  \______/  \_______/
        `
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()

	fmt.Println(blue(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(cyan(fmt.Sprintf("Painel de Gestão SetDoc AI (v%s)", formattedVersion)))
}
