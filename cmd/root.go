package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"provision-host/internal/catalog"
	"provision-host/internal/dispatch"
	"provision-host/internal/ledger"
	"provision-host/internal/logger"
	"provision-host/internal/pkgmgr"
	"provision-host/internal/platform"
)

// debug indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// Action flags. Exactly one action applies per run; install is the default
// and naming more than one is a usage error.
var (
	installFlag bool
	updateFlag  bool
	removeFlag  bool
	rmFlag      bool // short alias for --remove
)

// Module flags select whole catalog modules; --all requests every module.
var (
	essentialsFlag     bool
	infrastructureFlag bool
	additionalFlag     bool
	allFlag            bool
)

// catalogPath optionally replaces the built-in catalog with a YAML file.
var catalogPath string

// reportPath optionally exports the final run ledger as JSON.
var reportPath string

// rootCmd is the single command of the provision-host CLI. Positional
// arguments not matching a flag are bare tool names resolved individually
// against the catalog.
var rootCmd = &cobra.Command{
	Use:   "provision-host [flags] [tool...]",
	Short: "Install, update, or remove tools through the host's package manager",
	Long: `provision-host drives the native package manager of the host (apt on
Linux, Homebrew on macOS) from a catalog of known tools grouped into
modules. Request whole modules by flag, individual tools by name, and one
global action for the run; typos in tool names get a closest-match
suggestion. The run ends with a per-tool outcome summary.`,
	Args: cobra.ArbitraryArgs,

	// PersistentPreRun is a hook that runs before the command body.
	// Here, we initialize the logger based on the debug flag.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},

	RunE: run,
}

// run is the orchestration core: detect the platform once, expand the
// request into a work list, dispatch every tool sequentially, and render
// the summary. Per-tool failures never fail the process; only platform
// detection (no backend can be selected) and a broken catalog override
// (no work list can be computed) are fatal.
func run(cmd *cobra.Command, args []string) error {
	action, err := selectedAction()
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		_ = cmd.Usage()
		os.Exit(1)
	}

	modules := selectedModules()
	if len(modules) == 0 && len(args) == 0 {
		// Nothing requested: show usage and abort.
		_ = cmd.Usage()
		os.Exit(1)
	}

	cat := catalog.Default()
	if catalogPath != "" {
		cat, err = catalog.Load(catalogPath)
		if err != nil {
			logger.Error("[ERROR] %v\n", err)
			os.Exit(1)
		}
	}
	if allFlag {
		modules = cat.ModuleNames()
	}

	plat, err := platform.Detect()
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}
	logger.Debug("[DEBUG] Detected platform: %s\n", plat)

	work := dispatch.BuildWorkList(cat, modules, args)
	d := dispatch.New(pkgmgr.For(plat))
	d.Run(work, action)

	d.Ledger().Render()
	if reportPath != "" {
		if err := ledger.WriteReport(reportPath, d.Ledger()); err != nil {
			logger.Error("[ERROR] Failed to write report %s: %v\n", reportPath, err)
		}
	}
	return nil
}

// errAmbiguousAction rejects runs naming more than one action: the action
// is a single global mode, and an ambiguous request is an operator mistake.
var errAmbiguousAction = errors.New("choose exactly one of --install, --update, --remove")

// selectedAction maps the action flags to the run's single global action.
func selectedAction() (dispatch.Action, error) {
	remove := removeFlag || rmFlag
	count := 0
	for _, set := range []bool{installFlag, updateFlag, remove} {
		if set {
			count++
		}
	}
	if count > 1 {
		return 0, errAmbiguousAction
	}
	switch {
	case updateFlag:
		return dispatch.Update, nil
	case remove:
		return dispatch.Remove, nil
	default:
		// Install is the default action even without --install.
		return dispatch.Install, nil
	}
}

// selectedModules lists the requested built-in modules in catalog order,
// independent of the order the flags appeared on the command line.
func selectedModules() []string {
	var modules []string
	if essentialsFlag {
		modules = append(modules, "essentials")
	}
	if infrastructureFlag {
		modules = append(modules, "infrastructure")
	}
	if additionalFlag {
		modules = append(modules, "additional")
	}
	if allFlag {
		// Placeholder so the empty-request check passes; the real expansion
		// happens once the catalog is loaded.
		modules = append(modules, "all")
	}
	return modules
}

// Execute initializes flags and starts command execution. It's the entry
// point for the CLI when invoked by the user.
func Execute() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.Flags().BoolVar(&installFlag, "install", false, "Install the requested tools (default action)")
	rootCmd.Flags().BoolVar(&updateFlag, "update", false, "Update the requested tools")
	rootCmd.Flags().BoolVar(&removeFlag, "remove", false, "Remove the requested tools")
	rootCmd.Flags().BoolVar(&rmFlag, "rm", false, "Alias for --remove")
	_ = rootCmd.Flags().MarkHidden("rm")

	rootCmd.Flags().BoolVar(&essentialsFlag, "essentials", false, "Act on the essentials module")
	rootCmd.Flags().BoolVar(&infrastructureFlag, "infrastructure", false, "Act on the infrastructure module")
	rootCmd.Flags().BoolVar(&additionalFlag, "additional", false, "Act on the additional module")
	rootCmd.Flags().BoolVar(&allFlag, "all", false, "Act on every catalog module")

	rootCmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "Path to a YAML catalog override file")
	rootCmd.Flags().StringVar(&reportPath, "report", "", "Write the run summary as JSON to this path")

	// Help must never proceed to execution: print usage and abort.
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd.Long != "" {
			cmd.Println(cmd.Long)
			cmd.Println()
		}
		_ = cmd.Usage()
		os.Exit(1)
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
