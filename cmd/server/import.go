package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rpggio/docugen/internal/bridge"
	"github.com/rpggio/docugen/internal/config"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Send a scouting dossier to a running server",
	Long: `Post a JSON dossier to the bridge endpoint of a running server and print
the id of the created project. FILE may be "-" to read standard input.

--token defaults to DOCUGEN_BRIDGE_TOKEN.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("url", "http://localhost:8080", "base URL of the docugen server")
	importCmd.Flags().String("token", "", "bridge token")
	importCmd.Flags().Uint("attempts", 3, "attempts on server errors")
}

func runImport(cmd *cobra.Command, args []string) error {
	baseURL, _ := cmd.Flags().GetString("url")
	token, _ := cmd.Flags().GetString("token")
	attempts, _ := cmd.Flags().GetUint("attempts")

	if token == "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		token = cfg.Bridge.Token
	}
	if token == "" {
		return fmt.Errorf("a bridge token is required (--token or DOCUGEN_BRIDGE_TOKEN)")
	}

	payload, err := readDossier(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	logger, closeLog := newLogger(config.LogConfig{Level: "warn"}, cmd.ErrOrStderr())
	defer closeLog()

	client := &bridge.Client{
		BaseURL:     baseURL,
		Token:       token,
		MaxAttempts: attempts,
		Logger:      logger,
	}
	id, err := client.Import(cmd.Context(), payload)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "project %d\n", id)
	return nil
}

func readDossier(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dossier: %w", err)
	}
	return data, nil
}
