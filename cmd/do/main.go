package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"github.com/templui/footprint/cmd/do/cmd"

	"github.com/spf13/cobra"
)

func main() {
	rebuildIfStale()

	rootCmd := &cobra.Command{
		Use:   "do",
		Short: "Development tools for footprint",
	}

	rootCmd.AddCommand(cmd.DevCmd())
	rootCmd.AddCommand(cmd.GenCmd())
	rootCmd.AddCommand(cmd.CalcCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.JobsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// rebuildIfStale recompiles bin/do when its sources changed and re-execs.
// Binaries installed anywhere else are left alone.
func rebuildIfStale() {
	exe, err := os.Executable()
	if err != nil || filepath.Base(filepath.Dir(exe)) != "bin" {
		return
	}

	sources, _ := filepath.Glob("cmd/do/*.go")
	commands, _ := filepath.Glob("cmd/do/cmd/*.go")
	if !cmd.Stale(exe, append(sources, commands...)...) {
		return
	}

	fmt.Println("cmd/do changed, rebuilding", exe)
	build := exec.Command("go", "build", "-o", exe, "./cmd/do")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		fmt.Println("rebuild failed:", err)
		return
	}

	if err := syscall.Exec(exe, os.Args, os.Environ()); err != nil {
		fmt.Println("re-exec failed:", err)
	}
}
