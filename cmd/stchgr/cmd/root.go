package cmd

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pojntfx/stchgr/internal/logging"
	"github.com/pojntfx/stchgr/internal/platform"
	"github.com/pojntfx/stchgr/pkg/config"
	"github.com/pojntfx/stchgr/pkg/hardware"
	"github.com/pojntfx/stchgr/pkg/operations"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configFlag  = "config"
	sectionFlag = "section"
)

// The storage daemon appends a ".<date>_<counter>" suffix to job names;
// strip_jobname removes it for log readability.
var jobSuffixRegexp = regexp.MustCompile(`(^.*)\.\d{4}-\d{2}-\d{2}_.*`)

var exitCode = config.ExitSuccess

var rootCmd = &cobra.Command{
	Use:   "stchgr <changer-device> <command> <slot> <drive-device> <drive-index> [<jobname>]",
	Short: "Simple Tape Changer",
	Long: `Simple Tape Changer (stchgr) translates the changer commands a backup
storage daemon issues (list, listall, slots, loaded, load, unload,
transfer) into mtx/mt invocations, with automatic drive cleaning.

The argument order is fixed and matches the daemon's ChangerCommand
contract. Slots are numbered from 1, drives from 0. For transfer, the
drive-device argument carries the destination slot.`,
	Args:          cobra.RangeArgs(5, 6),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		viper.SetEnvPrefix("stchgr")
		viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.PersistentFlags()); err != nil {
			return err
		}

		fs := afero.NewOsFs()

		cfg, err := config.Load(fs, viper.GetString(configFlag), viper.GetString(sectionFlag))
		if err != nil {
			return err
		}

		command, err := operations.ParseCommand(args[1])
		if err != nil {
			return err
		}

		req := operations.Request{
			Command:       command,
			ChangerDevice: args[0],
			DriveDevice:   args[3],
		}

		req.Slot, err = strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid slot %q: %w", args[2], err)
		}

		req.DriveIndex, err = strconv.Atoi(args[4])
		if err != nil {
			return fmt.Errorf("invalid drive index %q: %w", args[4], err)
		}

		if command == operations.CommandTransfer {
			req.DestinationSlot, err = strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("invalid destination slot %q: %w", args[3], err)
			}
		}

		if len(args) > 5 {
			req.Job = args[5]
			if cfg.StripJobName {
				if match := jobSuffixRegexp.FindStringSubmatch(req.Job); match != nil {
					req.Job = match[1]
				}
			}
		}

		log := logging.NewFileLogger(fs, cfg.LogFile, cfg.DebugLevel, cfg.ChangerName, req.Job)

		log.Info("Starting", "changer", req.ChangerDevice, "command", req.Command, "slot", req.Slot, "device", req.DriveDevice, "drive", req.DriveIndex)
		if cfg.LogConfigVars {
			for _, pair := range cfg.Pairs() {
				log.Info("Config variable", pair[0], pair[1])
			}
		}

		exec := hardware.NewExecutor(hardware.ExecRunner{}, log)

		uname, err := platform.DetectUname(exec, cfg.UnameBin)
		if err != nil {
			fmt.Fprintln(os.Stdout, err)

			exitCode = config.ExitFailure

			return nil
		}

		readyMarker, err := platform.ReadyMarker(exec, fs, uname, cfg.MtBin)
		if err != nil {
			fmt.Fprintln(os.Stdout, err)

			exitCode = config.ExitFailure

			return nil
		}

		ops := operations.NewOperations(
			cfg,
			exec,
			hardware.NewWaiter(exec, log),

			uname,
			readyMarker,

			os.Stdout,
			log,
		)

		exitCode = ops.Dispatch(req)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringP(configFlag, "c", "/etc/stchgr/stchgr.conf", "Configuration file")
	rootCmd.PersistentFlags().StringP(sectionFlag, "s", config.DefaultSection, "Section in configuration file")

	viper.AutomaticEnv()
}

func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return config.ExitFailure
	}

	return exitCode
}
