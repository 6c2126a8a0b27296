package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/askh-dev/askh/config"
	"github.com/askh-dev/askh/constants/lipgloss"
	"github.com/askh-dev/askh/content"
	"github.com/askh-dev/askh/providers/askh"
	"github.com/askh-dev/askh/providers/contracts"
	"github.com/askh-dev/askh/providers/local"
	"github.com/askh-dev/askh/session"
)

// RootDependencies holds the resolved configuration and the wired services
// shared by all subcommands.
type RootDependencies struct {
	Config       *config.Config
	Cwd          string
	Provider     contracts.IContentProvider
	Conversation contracts.IConversationService
	Cache        *content.Cache
	Session      *session.Session
}

var rootCmd = &cobra.Command{
	Use:   "askh",
	Short: "Terminal client for the ASKH documentation assistant.",
	Long: `askh lets you browse a hierarchical documentation library in the terminal,
read rendered markdown documents, and chat with the documentation assistant
about them. It connects to a running ASKH backend, or serves a local docs
directory directly.`,
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
			fmt.Println(config.DefaultConfig.Version)
			return
		}
		_ = cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
}

func init() {
	config.InitFlags(rootCmd)
}

// handleRootCommand loads the configuration and wires the provider stack.
func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current directory: %v", err)))
		return nil
	}

	cfg := config.LoadConfigs(cmd.Root(), cwd)

	var provider contracts.IContentProvider
	var conversation contracts.IConversationService

	switch cfg.Provider {
	case "local":
		localProvider, err := local.NewProvider(&local.Config{DocsDir: cfg.DocsDir})
		if err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
			return nil
		}
		provider = localProvider
		conversation = localProvider
	default:
		askhProvider := askh.NewProvider(&askh.Config{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Timeout: cfg.Timeout(),
		})
		provider = askhProvider
		conversation = askhProvider
	}

	return &RootDependencies{
		Config:       cfg,
		Cwd:          cwd,
		Provider:     provider,
		Conversation: conversation,
		Cache:        content.NewCache(provider),
		Session:      session.NewSession(conversation),
	}
}
