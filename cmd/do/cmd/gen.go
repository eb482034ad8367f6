package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// templDir holds every .templ component.
const templDir = "internal/ui"

func GenCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Regenerate templ components in " + templDir,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "regenerate even when up to date")
	return cmd
}

func runGen(force bool) error {
	stale, err := staleTemplates(templDir)
	if err != nil {
		return err
	}
	if len(stale) == 0 && !force {
		fmt.Println("[templ] up to date")
		return nil
	}

	start := time.Now()
	gen := exec.Command("go", "tool", "templ", "generate", "-path", templDir)
	gen.Stdout = os.Stdout
	gen.Stderr = os.Stderr
	if err := gen.Run(); err != nil {
		return fmt.Errorf("templ generate: %w", err)
	}

	fmt.Printf("[templ] %d stale, done (%s)\n", len(stale), time.Since(start).Round(time.Millisecond))
	return nil
}

// staleTemplates lists the .templ files whose _templ.go is missing or older.
func staleTemplates(dir string) ([]string, error) {
	sources, err := filepath.Glob(filepath.Join(dir, "*.templ"))
	if err != nil {
		return nil, err
	}

	var stale []string
	for _, src := range sources {
		out := strings.TrimSuffix(src, ".templ") + "_templ.go"
		if Stale(out, src) {
			stale = append(stale, src)
		}
	}
	return stale, nil
}

// Stale reports whether output is missing or older than any input.
// Missing inputs are ignored.
func Stale(output string, inputs ...string) bool {
	outInfo, err := os.Stat(output)
	if err != nil {
		return true
	}

	for _, input := range inputs {
		inInfo, err := os.Stat(input)
		if err != nil {
			continue
		}
		if inInfo.ModTime().After(outInfo.ModTime()) {
			return true
		}
	}
	return false
}
