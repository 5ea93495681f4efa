package diffengine

import (
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Differ is the external line-differ collaborator. It has two
// implementations — an external process and an injected hook — modeled as
// a small interface rather than a deeper hierarchy.
type Differ interface {
	// Diff compares refPath against otherPath and writes Unix diff
	// "normal" format output to outPath.
	Diff(refPath, otherPath, outPath string, opts Options) error
}

// ExternalDiffer invokes the system `diff` binary: `diff [-b] [-i] REF
// OTHER`, redirecting stdout to outPath. -b is passed iff IWhite, -i iff
// ICase. The exit code is ignored: diff(1) returns non-zero to mean
// "differences found," which is the expected outcome.
type ExternalDiffer struct {
	// Path overrides the binary name, for tests. Defaults to "diff".
	Path string
}

func (d ExternalDiffer) Diff(refPath, otherPath, outPath string, opts Options) error {
	bin := d.Path
	if bin == "" {
		bin = "diff"
	}

	var args []string
	if opts.IWhite {
		args = append(args, "-b")
	}
	if opts.ICase {
		args = append(args, "-i")
	}
	args = append(args, refPath, otherPath)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w: creating diff output file: %v", ErrDifferFailed, err)
	}
	defer out.Close()

	cmd := exec.Command(bin, args...)
	cmd.Stdout = out
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			// Non-zero exit just means differences were found.
			return nil
		}
		return fmt.Errorf("%w: running %s: %v", ErrDifferFailed, bin, err)
	}
	return nil
}

// HookFunc writes diff-normal output for (refPath, otherPath) to w.
type HookFunc func(refPath, otherPath string, w io.Writer) error

// HookDiffer calls an injected expression hook instead of spawning a
// process.
type HookDiffer struct {
	Hook HookFunc
}

func (d HookDiffer) Diff(refPath, otherPath, outPath string, opts Options) error {
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w: creating diff output file: %v", ErrDifferFailed, err)
	}
	defer out.Close()

	if err := d.Hook(refPath, otherPath, out); err != nil {
		return fmt.Errorf("%w: hook: %v", ErrDifferFailed, err)
	}
	return nil
}
