package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"bucket-manager/feature/objects"

	"go.uber.org/zap"
)

// Loop is the interactive command dispatcher. It is single threaded: every
// store call blocks the loop until it returns.
type Loop struct {
	store  objects.Store
	bucket string
	in     *bufio.Reader
	out    io.Writer
	logger *zap.Logger

	state State
}

// NewLoop creates a loop reading selections from in and writing to out.
// bucket is only used for display.
func NewLoop(store objects.Store, bucket string, in io.Reader, out io.Writer, logger *zap.Logger) *Loop {
	return &Loop{
		store:  store,
		bucket: bucket,
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger,
		state:  StateMenuDisplay,
	}
}

// State returns the current state of the loop.
func (l *Loop) State() State {
	return l.state
}

// Run drives the loop until Exit is selected, input ends or ctx is cancelled.
// Operation failures are reported and never end the loop; only a cancelled
// context or a failing reader produces a non-nil error.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			l.setState(StateExited, "")
			return err
		}

		l.setState(StateMenuDisplay, "")
		l.printMenu()
		choice, err := l.readLine("Select an option (1-5): ")
		if err != nil {
			return l.inputClosed(err)
		}

		switch choice {
		case OptionUpload:
			err = l.upload(ctx)
		case OptionDownload:
			err = l.download(ctx)
		case OptionDelete:
			err = l.remove(ctx)
		case OptionList:
			l.showListing(ctx)
		case OptionExit:
			l.printf("Goodbye.\n")
			l.setState(StateExited, "")
			return nil
		default:
			l.printf("✗ Invalid option %q, try again.\n", choice)
			continue
		}
		if err != nil {
			return l.inputClosed(err)
		}
	}
}

func (l *Loop) upload(ctx context.Context) error {
	l.setState(StateAwaitingInput, "upload")
	localPath, err := l.prompt("Local file to upload: ")
	if err != nil {
		return err
	}
	key, err := l.prompt("Store as key: ")
	if err != nil {
		return err
	}

	err = l.execute("upload", func() error { return l.store.Put(ctx, localPath, key) })
	l.report("upload", err, fmt.Sprintf("✓ Uploaded %q as %q.", localPath, key))
	return nil
}

func (l *Loop) download(ctx context.Context) error {
	l.showListing(ctx)

	l.setState(StateAwaitingInput, "download")
	key, err := l.prompt("Key to download: ")
	if err != nil {
		return err
	}
	localPath, err := l.prompt("Save locally as: ")
	if err != nil {
		return err
	}

	err = l.execute("download", func() error { return l.store.Get(ctx, key, localPath) })
	l.report("download", err, fmt.Sprintf("✓ Downloaded %q to %q.", key, localPath))
	return nil
}

func (l *Loop) remove(ctx context.Context) error {
	l.showListing(ctx)

	l.setState(StateAwaitingInput, "delete")
	key, err := l.prompt("Key to delete: ")
	if err != nil {
		return err
	}

	err = l.execute("delete", func() error { return l.store.Delete(ctx, key) })
	l.report("delete", err, fmt.Sprintf("✓ Deleted %q.", key))
	return nil
}

// showListing prints the bucket contents. Before a download or delete prompt
// a failure is reported but does not abort the operation.
func (l *Loop) showListing(ctx context.Context) {
	var keys []string
	err := l.execute("list", func() error {
		var err error
		keys, err = l.store.List(ctx)
		return err
	})
	l.setState(StateReporting, "list")
	if err != nil {
		l.printf("%s\n", describe("list", err))
		return
	}
	l.printListing(keys)
}

func (l *Loop) printListing(keys []string) {
	if len(keys) == 0 {
		l.printf("The bucket is empty.\n")
		return
	}
	l.printf("Objects in %s:\n", l.bucket)
	for _, k := range keys {
		l.printf(" - %s\n", k)
	}
}

// execute runs call, converting a panic into an error so the loop survives.
func (l *Loop) execute(op string, call func() error) (err error) {
	l.setState(StateExecuting, op)
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("Operation panicked", zap.String("op", op), zap.Any("panic", r))
			err = fmt.Errorf("internal error: %v", r)
		}
	}()
	return call()
}

func (l *Loop) report(op string, err error, success string) {
	l.setState(StateReporting, op)
	if err != nil {
		l.printf("%s\n", describe(op, err))
		return
	}
	l.printf("%s\n", success)
}

// describe turns an operation error into a user-facing line.
func describe(op string, err error) string {
	var e *objects.Error
	if !errors.As(err, &e) {
		return fmt.Sprintf("✗ %s failed: %v", op, err)
	}

	switch e.Kind {
	case objects.ErrLocalFileNotFound:
		return fmt.Sprintf("✗ The local file %q does not exist.", e.Path)
	case objects.ErrRemoteObjectNotFound:
		return fmt.Sprintf("✗ Object %q was not found in the bucket.", e.Key)
	case objects.ErrInvalidInput:
		return fmt.Sprintf("✗ Invalid input: %v", e.Err)
	case objects.ErrLocalIO:
		return fmt.Sprintf("✗ Local file error during %s: %v", op, e.Err)
	case objects.ErrTransport:
		return fmt.Sprintf("✗ Storage error during %s: %v", op, e.Err)
	default:
		return fmt.Sprintf("✗ %s failed: %v", op, err)
	}
}

func (l *Loop) printMenu() {
	l.printf("\nMenu:\n")
	l.printf("%s. Upload file\n", OptionUpload)
	l.printf("%s. Download file\n", OptionDownload)
	l.printf("%s. Delete file\n", OptionDelete)
	l.printf("%s. List files\n", OptionList)
	l.printf("%s. Exit\n", OptionExit)
}

// prompt asks for a value until a non-empty answer is given.
func (l *Loop) prompt(label string) (string, error) {
	for {
		v, err := l.readLine(label)
		if err != nil {
			return "", err
		}
		if v != "" {
			return v, nil
		}
		l.printf("✗ Invalid input: a value is required.\n")
	}
}

// readLine prints label and reads one trimmed line. A final line without a
// newline is returned normally; io.EOF is only reported once nothing is left.
func (l *Loop) readLine(label string) (string, error) {
	l.printf("%s", label)
	line, err := l.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (l *Loop) inputClosed(err error) error {
	l.setState(StateExited, "")
	if errors.Is(err, io.EOF) {
		l.printf("\n")
		l.logger.Debug("Input closed, leaving menu")
		return nil
	}
	return fmt.Errorf("failed to read input: %w", err)
}

func (l *Loop) setState(s State, op string) {
	l.state = s
	l.logger.Debug("Menu state", zap.Stringer("state", s), zap.String("op", op))
}

func (l *Loop) printf(format string, args ...any) {
	fmt.Fprintf(l.out, format, args...)
}
