package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/askh-dev/askh/constants/lipgloss"
	"github.com/askh-dev/askh/doctree"
	"github.com/askh-dev/askh/markdown"
	"github.com/askh-dev/askh/providers/contracts"
	"github.com/askh-dev/askh/session"
	"github.com/askh-dev/askh/utils"
)

// BrowseCmd: askh browse
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the documentation tree and chat with the assistant within a session.",
	Long: `The 'browse' subcommand opens an interactive session against the configured
content provider. Slash commands navigate the documentation tree and open
documents as rendered markdown; any other input is sent to the documentation
assistant as a chat message.`,
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			return
		}
		handleBrowseCommand(rootDependencies)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func handleBrowseCommand(rootDependencies *RootDependencies) {

	// Create a context with cancel function
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").WithDelay(100).WithRemoveWhenDone(true)

	reader := bufio.NewReader(os.Stdin)

	browseOptionsBox := lipgloss.BoxStyle.Render("/help  Help for browse subcommand")
	fmt.Println(browseOptionsBox)

	// Ping the provider first so a down backend is reported as such rather
	// than showing up later as an empty tree.
	if checker, ok := rootDependencies.Provider.(contracts.IHealthChecker); ok {
		spinnerHealth, _ := spinner.Start("Checking backend...")
		healthErr := checker.Health(ctx)
		spinnerHealth.Stop()
		fmt.Print("\r")
		if healthErr != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Backend is not reachable: %v", healthErr)))
		}
	}

	spinnerLoadTree, _ := spinner.Start("Loading documentation tree...")

	snapshot, err := rootDependencies.Cache.LoadTree(ctx)

	spinnerLoadTree.Stop()
	fmt.Print("\r")

	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
	} else if categories := snapshot.Flatten(); len(categories) > 0 {
		fmt.Println(lipgloss.Info.Render("Categories: ") + strings.Join(categories, "  "))
	}

startLoop: // Label for the start loop
	for {
		select {
		case <-ctx.Done():
			return

		default:
			userInput, err := utils.InputPromptWithContext(ctx, reader)

			if err != nil {
				// Check if the error is due to context cancellation (Ctrl+C)
				if err == context.Canceled {
					fmt.Println(lipgloss.Yellow.Render("\n🔄 Exiting..."))
					return
				}
				fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
				continue
			}

			if userInput == "" {
				fmt.Print("\r")
				continue
			}

			isSubcommand, exit := findBrowseSubCommand(ctx, userInput, rootDependencies)

			if isSubcommand {
				continue
			}

			if exit {
				return
			}

			// Everything else is a chat message for the assistant.
			spinnerAI, _ := spinner.Start("Assistant is thinking...")

			accepted := rootDependencies.Session.Send(ctx, userInput)

			spinnerAI.Stop()
			fmt.Print("\r")

			if !accepted {
				continue startLoop
			}

			if reply, ok := rootDependencies.Session.LastReply(); ok {
				fmt.Println()
				blocks := markdown.Render(reply.Content)
				if err := utils.RenderBlocks(os.Stdout, blocks, rootDependencies.Config.Theme); err != nil {
					fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error rendering reply: %v", err)))
				}
			}
		}
	}
}

func findBrowseSubCommand(ctx context.Context, command string, rootDependencies *RootDependencies) (bool, bool) {
	switch command {
	case "/help":
		helps := "/tree  Show the documentation tree\n/open <path>  Open a document\n/title <path>  Show a document's display title\n/reload  Reload the documentation tree\n/history  Show the conversation so far\n/clear-history  Clear the conversation\n/clear  Clear screen\n/exit  Exit from askh"
		styledHelps := lipgloss.BoxStyle.Render(helps)
		fmt.Println(styledHelps)
		return true, false
	case "/clear":
		fmt.Print("\033[2J\033[H")
		return true, false
	case "/exit":
		return false, true
	case "/tree":
		printTree(rootDependencies.Cache.Snapshot())
		return true, false
	case "/reload":
		snapshot, err := rootDependencies.Cache.LoadTree(ctx)
		if err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
			return true, false
		}
		fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✔️ Tree reloaded (%d top-level entries).", len(snapshot.Nodes))))
		return true, false
	case "/history":
		printHistory(rootDependencies)
		return true, false
	case "/clear-history":
		rootDependencies.Session.Reset()
		fmt.Println(lipgloss.Green.Render("✔️ Conversation cleared."))
		return true, false
	default:
		if strings.HasPrefix(command, "/open ") {
			openDocument(ctx, strings.TrimSpace(strings.TrimPrefix(command, "/open ")), rootDependencies)
			return true, false
		}
		if strings.HasPrefix(command, "/title ") {
			path := strings.TrimSpace(strings.TrimPrefix(command, "/title "))
			fmt.Println(rootDependencies.Cache.Snapshot().LookupTitle(path))
			return true, false
		}
		if strings.HasPrefix(command, "/") {
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Unknown command %q. Try /help.", command)))
			return true, false
		}
		return false, false
	}
}

func openDocument(ctx context.Context, path string, rootDependencies *RootDependencies) {
	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").WithDelay(100).WithRemoveWhenDone(true)
	spinnerOpen, _ := spinner.Start(fmt.Sprintf("Opening %s...", path))

	doc, changed, err := rootDependencies.Cache.Select(ctx, path)

	spinnerOpen.Stop()
	fmt.Print("\r")

	if err != nil {
		// The previously opened document, if any, stays current.
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return
	}

	if !changed {
		fmt.Println(lipgloss.Gray.Render(fmt.Sprintf("%s is unchanged since last open.", doc.Title)))
		return
	}

	fmt.Println(lipgloss.BoxStyle.Render(doc.Title))
	blocks := markdown.Render(doc.RawBody)
	if err := utils.RenderBlocks(os.Stdout, blocks, rootDependencies.Config.Theme); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error rendering document: %v", err)))
	}
}

func printTree(snapshot doctree.Snapshot) {
	if len(snapshot.Nodes) == 0 {
		fmt.Println(lipgloss.Yellow.Render("The documentation tree is empty."))
		return
	}

	root := pterm.TreeNode{Text: "docs", Children: treeNodes(snapshot.Nodes)}
	_ = pterm.DefaultTree.WithRoot(root).Render()
}

func treeNodes(nodes []doctree.Node) []pterm.TreeNode {
	out := make([]pterm.TreeNode, 0, len(nodes))
	for _, node := range nodes {
		if node.Kind == doctree.KindFolder {
			out = append(out, pterm.TreeNode{
				Text:     lipgloss.Info.Render(node.Name),
				Children: treeNodes(node.Children),
			})
			continue
		}

		label := doctree.TitleFromName(node.Name)
		if node.DisplayName != "" {
			label = node.DisplayName
		}
		out = append(out, pterm.TreeNode{
			Text: fmt.Sprintf("%s %s", label, lipgloss.Gray.Render("("+node.Path+")")),
		})
	}
	return out
}

func printHistory(rootDependencies *RootDependencies) {
	messages := rootDependencies.Session.Messages()
	if len(messages) == 0 {
		fmt.Println(lipgloss.Yellow.Render("No conversation yet."))
		return
	}

	for _, message := range messages {
		prefix := lipgloss.BlueSky.Render("you> ")
		if message.Role != session.RoleUser {
			prefix = lipgloss.Green.Render("askh> ")
		}
		fmt.Println(prefix + message.Content)
	}

	stats := rootDependencies.Session.Stats()
	statsInfo := fmt.Sprintf("Messages: %d from you - %d from the assistant", stats.UserMessages, stats.AssistantMessages)
	fmt.Println(lipgloss.BoxStyle.Render(statsInfo))
}
