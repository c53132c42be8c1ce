package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/aretw0/javelin/internal/presentation/tui"
	"github.com/aretw0/javelin/pkg/event"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys CODE...",
	Short: "Print the normalized name of platform key codes",
	Long:  `Maps key codes (including the Safari arrow-key aliases) to delete, tab, return, esc, left, up, right or down.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shift, _ := cmd.Flags().GetBool("shift")
		styles := tui.NewStyles(os.Stdout)
		out := cmd.OutOrStdout()
		for _, arg := range args {
			code, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid key code %q: %w", arg, err)
			}
			ev := event.New("keydown", event.WithRawEvent(keyPress{code: code, shift: shift}))
			name, ok := ev.SpecialKey()
			if !ok {
				fmt.Fprintf(out, "%s\t%s\n", arg, styles.Muted("-"))
				continue
			}
			fmt.Fprintf(out, "%s\t%s\n", arg, styles.Label(string(name)))
		}
		return nil
	},
}

// keyPress is a keyboard event typed on the command line.
type keyPress struct {
	code  int
	shift bool
}

func (k keyPress) KeyCode() int   { return k.code }
func (k keyPress) ShiftKey() bool { return k.shift }

func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.Flags().Bool("shift", false, "Treat the keys as pressed with Shift (never special)")
}
