package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/diillson/kitchen-cost-engine/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
         _  ___ _       _                  ____          _
        | |/ (_) |_ ___| |__   ___ _ __   / ___|___  ___| |_
        | ' /| | __/ __| '_ \ / _ \ '_ \ | |   / _ \/ __| __|
        | . \| | || (__| | | |  __/ | | || |__| (_) \__ \ |_
        |_|\_\_|\__\___|_| |_|\___|_| |_| \____\___/|___/\__|
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("Kitchen Cost Engine (v%s)", formattedVersion)))
}

// checkLatestVersion verifica se uma versão mais recente está disponível.
func checkLatestVersion(currentVersion string) {
	version.CheckLatestVersion(currentVersion)
}
