//go:build !windows

package role

import "syscall"

// execFunc replaces the current process image. Defaults to
// syscall.Exec; tests override it to capture the call instead of
// actually replacing the test process.
var execFunc = syscall.Exec

// replaceProcess hands the process over to the role binary. On success
// it never returns; open descriptors and memory are reclaimed by the
// image swap itself.
func replaceProcess(path string, argv []string, env []string) error {
	return execFunc(path, argv, env)
}
