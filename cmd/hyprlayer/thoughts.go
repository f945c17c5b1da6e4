package hyprlayer

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/hyprlayer/pkg/config"
	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/arthur-debert/hyprlayer/pkg/thoughts"
	"github.com/spf13/cobra"
)

// defaultEditor is used by "config --edit" when $EDITOR is unset
const defaultEditor = "vi"

func newThoughtsCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "thoughts",
		Short:   MsgThoughtsShort,
		Long:    MsgThoughtsLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newInitCmd(g))
	cmd.AddCommand(newUninitCmd(g))
	cmd.AddCommand(newSyncCmd(g))
	cmd.AddCommand(newStatusCmd(g))
	cmd.AddCommand(newProfileCmd(g))
	cmd.AddCommand(newConfigCmd(g))

	return cmd
}

func newInitCmd(g *globalOptions) *cobra.Command {
	var opts thoughts.InitOptions

	cmd := &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			common, defaults, err := g.common()
			if err != nil {
				return err
			}
			opts.Common = common
			opts.DefaultsPath = defaults

			result, err := g.service().Init(cmd.Context(), opts)
			if err != nil {
				return err
			}
			renderInit(printer(cmd), result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, MsgFlagInitForce)
	cmd.Flags().StringVar(&opts.Directory, "directory", "", MsgFlagDirectory)
	cmd.Flags().StringVar(&opts.Profile, "profile", "", MsgFlagProfile)
	_ = cmd.RegisterFlagCompletionFunc("profile", g.completeProfiles)

	return cmd
}

func newUninitCmd(g *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "uninit",
		Short: MsgUninitShort,
		Long:  MsgUninitLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			common, _, err := g.common()
			if err != nil {
				return err
			}
			result, err := g.service().Uninit(cmd.Context(), thoughts.UninitOptions{
				Common: common,
				Force:  force,
			})
			if err != nil {
				return err
			}
			renderUninit(printer(cmd), result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, MsgFlagUninitForce)
	return cmd
}

func newSyncCmd(g *globalOptions) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:     "sync",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		Example: MsgSyncExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			common, _, err := g.common()
			if err != nil {
				return err
			}
			result, err := g.service().Sync(cmd.Context(), thoughts.SyncOptions{
				Common:  common,
				Message: message,
			})
			if err != nil {
				return err
			}
			renderSync(printer(cmd), errPrinter(cmd), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", MsgFlagMessage)
	return cmd
}

func newStatusCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		Long:  MsgStatusLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			common, _, err := g.common()
			if err != nil {
				return err
			}
			report, err := g.service().Status(cmd.Context(), thoughts.StatusOptions{Common: common})
			if err != nil {
				return err
			}
			renderStatus(printer(cmd), report)
			return nil
		},
	}
}

func newProfileCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profile",
		Short:   MsgProfileShort,
		Long:    MsgProfileLong,
		Example: MsgProfileExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newProfileCreateCmd(g))
	cmd.AddCommand(newProfileListCmd(g))
	cmd.AddCommand(newProfileShowCmd(g))
	cmd.AddCommand(newProfileDeleteCmd(g))
	return cmd
}

func newProfileCreateCmd(g *globalOptions) *cobra.Command {
	var opts thoughts.ProfileCreateOptions

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: MsgProfileCreateShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			common, defaults, err := g.common()
			if err != nil {
				return err
			}
			opts.Common = common
			opts.DefaultsPath = defaults
			opts.Name = args[0]

			result, err := g.service().ProfileCreate(cmd.Context(), opts)
			if err != nil {
				return err
			}
			renderProfileCreate(printer(cmd), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.ThoughtsRepo, "repo", "", MsgFlagRepo)
	cmd.Flags().StringVar(&opts.ReposDir, "repos-dir", "", MsgFlagReposDir)
	cmd.Flags().StringVar(&opts.GlobalDir, "global-dir", "", MsgFlagGlobalDir)
	return cmd
}

func newProfileListCmd(g *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: MsgProfileListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			common, _, err := g.common()
			if err != nil {
				return err
			}
			list, err := g.service().ProfileList(cmd.Context(), thoughts.ProfileListOptions{Common: common})
			if err != nil {
				return err
			}
			p := printer(cmd)
			if asJSON {
				return p.JSON(list)
			}
			renderProfileList(p, list)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, MsgFlagJSON)
	return cmd
}

func newProfileShowCmd(g *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:               "show <name>",
		Short:             MsgProfileShowShort,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: g.completeProfileArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			common, _, err := g.common()
			if err != nil {
				return err
			}
			profile, err := g.service().ProfileShow(cmd.Context(), thoughts.ProfileShowOptions{
				Common: common,
				Name:   args[0],
			})
			if err != nil {
				return err
			}
			p := printer(cmd)
			if asJSON {
				return p.JSON(profile)
			}
			renderProfile(p, profile)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, MsgFlagJSON)
	return cmd
}

func newProfileDeleteCmd(g *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:               "delete <name>",
		Short:             MsgProfileDeleteShort,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: g.completeProfileArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			common, _, err := g.common()
			if err != nil {
				return err
			}
			result, err := g.service().ProfileDelete(cmd.Context(), thoughts.ProfileDeleteOptions{
				Common: common,
				Name:   args[0],
				Force:  force,
			})
			if err != nil {
				return err
			}
			renderProfileDelete(printer(cmd), result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, MsgFlagDeleteForce)
	return cmd
}

func newConfigCmd(g *globalOptions) *cobra.Command {
	var (
		asJSON bool
		format string
		edit   bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Long:  MsgConfigLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON && format != "" && !strings.EqualFold(format, config.FormatJSON) {
				return errors.New(errors.ErrInvalidInput, MsgErrConflictFlags)
			}
			if asJSON {
				format = config.FormatJSON
			}

			common, _, err := g.common()
			if err != nil {
				return err
			}
			if edit {
				return openEditor(cmd, common.ConfigPath)
			}

			cfg, path, err := g.service().ConfigShow(cmd.Context(), thoughts.ConfigShowOptions{Common: common})
			if err != nil {
				return err
			}
			if format == "" {
				renderConfig(printer(cmd), cfg, path)
				return nil
			}
			out, err := config.Export(cfg, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, MsgFlagJSON)
	cmd.Flags().StringVar(&format, "format", "", MsgFlagFormat)
	cmd.Flags().BoolVar(&edit, "edit", false, MsgFlagEdit)
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(config.ExportFormats, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

// openEditor runs $EDITOR on path attached to the terminal. $EDITOR may
// carry arguments, e.g. "code --wait".
func openEditor(cmd *cobra.Command, path string) error {
	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = defaultEditor
	}
	fields := strings.Fields(editor)

	c := exec.CommandContext(cmd.Context(), fields[0], append(fields[1:], path)...)
	c.Stdin = os.Stdin
	c.Stdout = cmd.OutOrStdout()
	c.Stderr = cmd.ErrOrStderr()
	if err := c.Run(); err != nil {
		return fmt.Errorf(MsgErrEditor, editor, err)
	}
	return nil
}

// completeProfiles lists configured profile names for shell completion
func (g *globalOptions) completeProfiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	common, _, err := g.common()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	cfg, err := config.Load(common.ConfigPath)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var names []string
	for _, name := range cfg.ProfileNames() {
		if strings.HasPrefix(name, toComplete) {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func (g *globalOptions) completeProfileArg(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return g.completeProfiles(cmd, args, toComplete)
}
