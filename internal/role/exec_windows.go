//go:build windows

package role

import (
	"os"
	"os/exec"
	"os/signal"
	"syscall"
)

// replaceProcess approximates exec-style hand-off on Windows, which has
// no process-image replacement: the role runs as a child with inherited
// stdio, termination signals are forwarded to it, and this process
// exits with the child's status. No supervision logic runs in between,
// so the observable contract matches the unix path.
func replaceProcess(path string, argv []string, env []string) error {
	cmd := exec.Command(path, argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = env

	if err := cmd.Start(); err != nil {
		return err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		for sig := range sigs {
			_ = cmd.Process.Signal(sig)
		}
	}()

	err := cmd.Wait()
	signal.Stop(sigs)
	close(sigs)

	if exitErr, ok := err.(*exec.ExitError); ok {
		os.Exit(exitErr.ExitCode())
	}
	if err != nil {
		return err
	}
	os.Exit(0)
	return nil
}
