package hyprlayer

import (
	"fmt"

	"github.com/arthur-debert/hyprlayer/internal/version"
	"github.com/arthur-debert/hyprlayer/pkg/cobrax/topics"
	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/arthur-debert/hyprlayer/pkg/logging"
	"github.com/arthur-debert/hyprlayer/pkg/paths"
	"github.com/arthur-debert/hyprlayer/pkg/thoughts"
	"github.com/arthur-debert/hyprlayer/pkg/ui"
	"github.com/arthur-debert/hyprlayer/pkg/ui/output/styles"
	"github.com/arthur-debert/hyprlayer/pkg/ui/prompt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	verbosity  int
	configFile string

	newService func() *thoughts.Service
}

// service builds the thoughts service for one command run
func (g *globalOptions) service() *thoughts.Service {
	return g.newService()
}

// common resolves --config-file (or HYPRLAYER_CONFIG) into the options every
// thoughts operation takes, plus the optional defaults file next to it.
func (g *globalOptions) common() (thoughts.Common, string, error) {
	p, err := paths.New(g.configFile)
	if err != nil {
		return thoughts.Common{}, "", err
	}
	return thoughts.Common{ConfigPath: p.ConfigFile()}, p.DefaultsFile(), nil
}

func defaultService() *thoughts.Service {
	return thoughts.New(nil, prompt.NewHuh(), nil)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultService)
}

func newRootCmd(newService func() *thoughts.Service) *cobra.Command {
	initTemplateFormatting()

	g := &globalOptions{newService: newService}

	rootCmd := &cobra.Command{
		Use:     "hyprlayer",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.CommandPath()).Msg("Command started")
			logging.LogCommand(cmd.CommandPath(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help and fail
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config-file", "", MsgFlagConfigFile)

	// Replaced by the topics-aware help command below
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newThoughtsCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	opts := topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}
	if err := topics.InitializeWithOptions(rootCmd, helpTopics(), opts); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// ErrorLine formats a failed command's error for the terminal: the message
// chain without error codes, in the Error style.
func ErrorLine(err error) string {
	return styles.GetStyle("Error").Render("Error: " + errors.UserMessage(err))
}

// printer writes command results to the command's output
func printer(cmd *cobra.Command) *ui.Printer {
	return ui.NewPrinter(cmd.OutOrStdout(), ui.FormatAuto)
}

// errPrinter writes warnings to the command's error output
func errPrinter(cmd *cobra.Command) *ui.Printer {
	return ui.NewPrinter(cmd.ErrOrStderr(), ui.FormatAuto)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			helpCmd, _, err := cmd.Root().Find([]string{"help"})
			if err != nil || helpCmd == nil || helpCmd.Run == nil {
				return fmt.Errorf("help command not found")
			}
			helpCmd.SetOut(cmd.OutOrStdout())
			helpCmd.Run(helpCmd, []string{"topics"})
			return nil
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
