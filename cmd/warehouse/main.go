// cmd/warehouse/main.go
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ammerola/warehouse/internal/handlers"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const appName = "warehouse"

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

type globalFlags struct {
	username string
	password string
	logLevel string
}

func rootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	flags := &globalFlags{}
	in := bufio.NewReader(stdin)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Single-user warehouse inventory tracker",
		Long: `Warehouse tracks stock levels and unit prices for one administrator.

Stock can be received, issued and listed. The inventory is kept in a session
store (SQLite, PostgreSQL, a JSON snapshot or Redis) and can be saved to or
loaded from JSON and xlsx files, locally or on S3.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)

	cmd.PersistentFlags().StringVarP(&flags.username, "username", "u", "", "Username (prompted when empty)")
	cmd.PersistentFlags().StringVarP(&flags.password, "password", "p", "", "Password (prompted when empty)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		loginCmd(flags, in),
		receiveCmd(flags, in),
		issueCmd(flags, in),
		displayCmd(flags, in),
		exportCmd(flags, in),
		importCmd(flags, in),
		healthCmd(flags),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

func loginCmd(flags *globalFlags, in *bufio.Reader) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in and open the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDependencies(cmd, flags, func(ctx context.Context, deps *dependencies) error {
				username, password, err := credentials(cmd, flags, in, deps.cfg.Auth.PromptRetype)
				if err != nil {
					return err
				}

				menu := handlers.NewMenuHandler(deps.service, deps.opener, in, cmd.OutOrStdout(), deps.logger)
				return menu.Start(ctx, username, password)
			})
		},
	}
}

func receiveCmd(flags *globalFlags, in *bufio.Reader) *cobra.Command {
	return &cobra.Command{
		Use:   "receive_product <name> <quantity> <price>",
		Short: "Add stock for a product",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCommandHandler(cmd, flags, in, func(ctx context.Context, h *handlers.CommandHandler, username, password string) error {
				return h.Receive(ctx, username, password, args[0], args[1], args[2])
			})
		},
	}
}

func issueCmd(flags *globalFlags, in *bufio.Reader) *cobra.Command {
	return &cobra.Command{
		Use:   "issue_product <name> <quantity>",
		Short: "Remove stock for a product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCommandHandler(cmd, flags, in, func(ctx context.Context, h *handlers.CommandHandler, username, password string) error {
				return h.Issue(ctx, username, password, args[0], args[1])
			})
		},
	}
}

func displayCmd(flags *globalFlags, in *bufio.Reader) *cobra.Command {
	return &cobra.Command{
		Use:   "display_product_list",
		Short: "Print the product list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCommandHandler(cmd, flags, in, func(ctx context.Context, h *handlers.CommandHandler, username, password string) error {
				return h.Display(ctx, username, password)
			})
		},
	}
}

func exportCmd(flags *globalFlags, in *bufio.Reader) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export_inventory",
		Short: "Save the inventory to a JSON or xlsx file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCommandHandler(cmd, flags, in, func(ctx context.Context, h *handlers.CommandHandler, username, password string) error {
				return h.Export(ctx, username, password, output)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "inventory.xlsx", "Destination path or s3://bucket/key")
	return cmd
}

func importCmd(flags *globalFlags, in *bufio.Reader) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "import_inventory",
		Short: "Replace the inventory with the content of a JSON or xlsx file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCommandHandler(cmd, flags, in, func(ctx context.Context, h *handlers.CommandHandler, username, password string) error {
				return h.Import(ctx, username, password, input)
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Source path or s3://bucket/key")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func healthCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the session store and print a JSON report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDependencies(cmd, flags, func(ctx context.Context, deps *dependencies) error {
				return deps.health.Health(ctx, cmd.OutOrStdout())
			})
		},
	}
}

func withDependencies(cmd *cobra.Command, flags *globalFlags, fn func(context.Context, *dependencies) error) error {
	ctx := cmd.Context()

	deps, err := initializeDependencies(ctx, flags.logLevel)
	if err != nil {
		return err
	}
	defer deps.cleanup()

	return fn(ctx, deps)
}

func withCommandHandler(cmd *cobra.Command, flags *globalFlags, in *bufio.Reader, fn func(context.Context, *handlers.CommandHandler, string, string) error) error {
	return withDependencies(cmd, flags, func(ctx context.Context, deps *dependencies) error {
		username, password, err := credentials(cmd, flags, in, false)
		if err != nil {
			return err
		}

		h := handlers.NewCommandHandler(deps.service, deps.opener, cmd.OutOrStdout(), deps.logger)
		return fn(ctx, h, username, password)
	})
}

// credentials returns the flag values, prompting for whichever is missing.
// With confirm set the password is asked twice until both entries match.
func credentials(cmd *cobra.Command, flags *globalFlags, in *bufio.Reader, confirm bool) (string, string, error) {
	out := cmd.OutOrStdout()

	username := flags.username
	if username == "" {
		fmt.Fprint(out, "Enter username: ")
		line, err := readLine(in)
		if err != nil {
			return "", "", fmt.Errorf("failed to read username: %w", err)
		}
		username = line
	}

	if flags.password != "" {
		return username, flags.password, nil
	}

	for {
		fmt.Fprint(out, "Enter password: ")
		password, err := readSecret(in, out)
		if err != nil {
			return "", "", fmt.Errorf("failed to read password: %w", err)
		}
		if !confirm {
			return username, password, nil
		}

		fmt.Fprint(out, "Repeat for confirmation: ")
		again, err := readSecret(in, out)
		if err != nil {
			return "", "", fmt.Errorf("failed to read password: %w", err)
		}
		if password == again {
			return username, password, nil
		}
		fmt.Fprintln(out, "Error: The two entered values do not match.")
	}
}

// readSecret reads without echo from a terminal and falls back to a plain
// line read otherwise
func readSecret(in *bufio.Reader, out io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if in.Buffered() == 0 && term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		return string(secret), err
	}
	return readLine(in)
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
