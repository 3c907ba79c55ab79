package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gobasera/pkg/client"
	"gobasera/pkg/config"
)

var settings = newSettings()

// RootCmd - базовая команда annctl.
var RootCmd = &cobra.Command{
	Use:           "annctl [command] [flags]",
	Short:         "annctl: manage GoBasera announcements from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().String("url", config.DefaultCollaboratorURL, "announcements service base URL")
	RootCmd.PersistentFlags().Duration("timeout", 10*time.Second, "request timeout")
	_ = settings.BindPFlag("collaborator.base_url", RootCmd.PersistentFlags().Lookup("url"))
	_ = settings.BindPFlag("collaborator.timeout", RootCmd.PersistentFlags().Lookup("timeout"))
}

func newSettings() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("GOBASERA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Execute запускает корневую команду. Вызывается из main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint("Error: ")+err.Error())
		os.Exit(1)
	}
}

func newClient() *client.Client {
	return client.New(
		settings.GetString("collaborator.base_url"),
		client.WithTimeout(settings.GetDuration("collaborator.timeout")),
	)
}
