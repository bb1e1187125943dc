package cli

import (
	"fmt"

	"github.com/diillson/finops-variance-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
     _____ _       ___              __   __         _
    |  ___(_)_ __ / _ \ _ __  ___   \ \ / /_ _ _ __(_) __ _ _ __   ___ ___
    | |_  | | '_ \ | | | '_ \/ __|   \ V / _' | '__| |/ _' | '_ \ / __/ _ \
    |  _| | | | | | |_| | |_) \__ \    | | (_| | |  | | (_| | | | | (_|  __/
    |_|   |_|_| |_|\___/| .__/|___/    |_|\__,_|_|  |_|\__,_|_| |_|\___\___|
                        |_|
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("FinOps Variance CLI (v%s)", formattedVersion)))
}
