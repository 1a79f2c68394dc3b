package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"goorders/storage"
)

var (
	clearDBPath string
	clearYes    bool
)

// Injectable for tests.
var (
	clearPromptInput  io.Reader = os.Stdin
	clearPromptOutput io.Writer = os.Stdout
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored daily counts from the database",
	Long: `Clear removes every daily count row from the SQLite database while
keeping the database file and its schema in place. Subsequent convert
runs with --db repopulate it from scratch.

Without --yes the command asks for confirmation first.`,
	Example: `  goorders clear
  goorders clear --db ./history.db
  goorders clear --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureDatabaseFile(clearDBPath); err != nil {
			return err
		}

		if !clearYes {
			confirmed, err := confirmClearPrompt(clearPromptInput, clearPromptOutput, clearDBPath)
			if err != nil {
				return err
			}
			if !confirmed {
				return errors.New("clear aborted: confirmation was not 'Y'")
			}
		}

		store, err := storage.OpenSQLite(clearDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		deleted, err := store.DeleteAllDailyCounts()
		if err != nil {
			return err
		}

		fmt.Printf("Cleared %d daily counts from %s\n", deleted, clearDBPath)
		return nil
	},
}

// ensureDatabaseFile verifies the database exists before opening it,
// since opening a missing path would silently create an empty database.
func ensureDatabaseFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("database file not found: %s", path)
		}
		return fmt.Errorf("stat database file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("database path is a directory: %s", path)
	}
	return nil
}

func confirmClearPrompt(input io.Reader, output io.Writer, dbPath string) (bool, error) {
	fmt.Fprintf(output, "Delete all stored daily counts in %q? Type Y to confirm: ", dbPath)

	reader := bufio.NewReader(input)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}

	return strings.TrimSpace(line) == "Y", nil
}

func init() {
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().StringVar(&clearDBPath, "db", "./goorders.db", "Path to the SQLite database to clear")
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "Skip the confirmation prompt")
}
