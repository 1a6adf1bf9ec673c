package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	supportlog "github.com/stellar/go/support/log"

	"github.com/stellar/txresult/cmd/stellar-txresult/internal/config"
	"github.com/stellar/txresult/cmd/stellar-txresult/internal/daemon"
	"github.com/stellar/txresult/txresult"
)

func main() {
	var cfg config.Config

	rootCmd := &cobra.Command{
		Use:   "stellar-txresult",
		Short: "Start the transaction result decoding server",
		Run: func(_ *cobra.Command, _ []string) {
			if err := cfg.SetValues(os.LookupEnv); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if err := cfg.Validate(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			daemon.MustNew(&cfg, supportlog.New()).Run()
		},
	}

	var strict bool
	decodeCmd := &cobra.Command{
		Use:   "decode [result-xdr]",
		Short: "Decode a base64 transaction result, read from stdin when not given, and print it as JSON",
		Args:  cobra.MaximumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			if err := cfg.SetValues(os.LookupEnv); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			opts := []txresult.Option{txresult.WithMaxOperations(cfg.MaxOperations)}
			if strict {
				opts = append(opts, txresult.WithStrictLength())
			}
			if err := runDecode(os.Stdin, os.Stdout, args, opts...); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}
	decodeCmd.Flags().BoolVar(&strict, "strict", false, "reject results followed by unexpected bytes")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information and exit",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(versionString())
		},
	}

	genConfigFileCmd := &cobra.Command{
		Use:   "gen-config-file",
		Short: "Generate a config file with default settings",
		Run: func(_ *cobra.Command, _ []string) {
			// We can't call 'Validate' here because the config file we are
			// generating might not be complete.
			if err := cfg.SetValues(os.LookupEnv); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			out, err := cfg.MarshalTOML()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			fmt.Println(string(out))
		},
	}

	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(genConfigFileCmd)

	if err := cfg.AddFlags(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "could not parse config options: %v\n", err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "could not run: %v\n", err)
		os.Exit(1)
	}
}

func versionString() string {
	if config.CommitHash == "" {
		return "stellar-txresult dev"
	}
	// avoid printing the branch for the main branch
	// ( since that's what the end-user would typically have )
	// but keep it for internal builds
	branch := config.Branch
	if branch == "main" {
		branch = ""
	}
	return strings.TrimSpace(fmt.Sprintf("stellar-txresult %s (%s) %s", config.Version, config.CommitHash, branch))
}

// runDecode decodes the result given as the only argument, or read from in,
// and writes it to out as indented JSON.
func runDecode(in io.Reader, out io.Writer, args []string, opts ...txresult.Option) error {
	var input string
	if len(args) > 0 {
		input = args[0]
	} else {
		raw, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("could not read standard input: %w", err)
		}
		input = string(raw)
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("no transaction result given")
	}

	result, err := txresult.DecodeBase64(input, opts...)
	if err != nil {
		return fmt.Errorf("could not decode transaction result: %w", err)
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		return err
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, encoded, "", "  "); err != nil {
		return err
	}
	indented.WriteByte('\n')
	_, err = indented.WriteTo(out)
	return err
}
