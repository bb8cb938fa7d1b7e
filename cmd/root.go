package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/message"
)

var (
	cfgFile, repoName string
	numFormat         *message.Printer

	// Destination for all user visible output
	fOut io.Writer = os.Stdout

	heading = color.New(color.Bold)
	current = color.New(color.FgGreen)
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "scvs",
	Short: "A small simulated version control system",
	Long: `scvs is a small version control system that keeps its commits, branches,
pull requests, collaborators and access roles in a JSON snapshot per repository.

File contents are never stored, only the names of the files recorded by each commit.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command & sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Add support for pretty printing numbers
	numFormat = message.NewPrinter(message.MatchLanguage("en"))

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.scvs/config.toml)")
	RootCmd.PersistentFlags().StringVar(&repoName, "repo", "",
		"Repository to work with (default is the selected one)")

	viper.SetDefault("general.storage", ".scvs")
	viper.SetDefault("general.loglimit", 20)

	cobra.OnInitialize(initConfig)
}

// Reads the config file, if there is one
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".scvs" (without extension).
		viper.AddConfigPath(filepath.Join(home, ".scvs"))
		viper.SetConfigName("config")
	}

	// A missing config file is fine, as every setting has a usable default
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Println("Error reading config file:", viper.ConfigFileUsed(), err)
		}
	}

	color.NoColor = !isTerminal(fOut)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
