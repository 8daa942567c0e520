package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"phpsniff/internal/diagfmt"
	"phpsniff/internal/driver"
	"phpsniff/internal/lexer"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.php",
		Short: "Dump the token stream of a PHP file",
		Long:  `Tokenize prints every token of a PHP file with its position and, when the brackets balance, its partner.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	// a structure error still yields tokens worth printing
	result, tokErr := driver.Tokenize(filePath, lexer.Options{})
	if result == nil {
		return fmt.Errorf("tokenization failed: %w", tokErr)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens, result.Index)
	default:
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.Index)
	}
	if err != nil {
		return err
	}
	if tokErr != nil {
		return fmt.Errorf("tokenization failed: %w", tokErr)
	}
	return nil
}
