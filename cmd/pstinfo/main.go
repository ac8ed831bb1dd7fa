// Command pstinfo opens a PST/OST file and prints its folder tree. It is a
// thin worked example over the public pstkit/store API, in the spirit of
// the teacher's cmd/hivectl and cmd/hiveexplorer tools.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbranch/pstkit/store"
)

var (
	password string
	showFAI  bool
)

var rootCmd = &cobra.Command{
	Use:     "pstinfo <file.pst>",
	Short:   "Print the folder tree of a PST/OST file",
	Args:    cobra.ExactArgs(1),
	Version: "0.1.0",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0])
	},
}

func init() {
	rootCmd.Flags().StringVar(&password, "password", "", "store password, if required")
	rootCmd.Flags().BoolVar(&showFAI, "fai", false, "also print each folder's associated-content count")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string) error {
	f, err := store.Open(path, password)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	root, err := f.RootFolder()
	if err != nil {
		return fmt.Errorf("root folder: %w", err)
	}
	return printFolder(root, 0)
}

func printFolder(f *store.Folder, depth int) error {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	fmt.Printf("%s%s (%d messages)\n", indent, f.DisplayName(), f.MessageCount())

	if showFAI {
		fai, err := f.AssociatedContents()
		if err == nil && len(fai) > 0 {
			fmt.Printf("%s  [%d associated-content items]\n", indent, len(fai))
		}
	}

	children, err := f.Folders()
	if err != nil {
		return fmt.Errorf("folders of %s: %w", f.DisplayName(), err)
	}
	for _, child := range children {
		if err := printFolder(child, depth+1); err != nil {
			return err
		}
	}
	return nil
}
