// Command doittoctl is the operator CLI for the helper directory.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"doitto/config"
	"doitto/database"
	"doitto/services/catalog"
	"doitto/services/helper"
	"doitto/utils"

	firebase "firebase.google.com/go/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logger  *zap.Logger
	backend *database.Backend

	// openBackend connects to the store selected by the loaded config.
	openBackend = func(ctx context.Context) (*database.Backend, error) {
		var app *firebase.App
		if driver := strings.ToLower(config.AppConfig.StoreDriver); driver == "" || driver == "firestore" {
			var err error
			if app, err = utils.FirebaseApp(ctx); err != nil {
				return nil, err
			}
		}
		return database.Open(ctx, app)
	}
)

var rootCmd = &cobra.Command{
	Use:           "doittoctl",
	Short:         "Operate the Do it To helper directory",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if backend != nil {
			return nil
		}
		config.LoadConfig()
		logger = utils.GetLogger()
		b, err := openBackend(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		backend = b
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd, shareCmd, cardCmd, categoriesCmd, helpersCmd)
}

func helperService() helper.HelperService {
	return helper.NewHelperService(backend.Gateway.Helpers, logger)
}

func catalogService() catalog.CatalogService {
	return catalog.NewCatalogService(backend.Gateway.Categories, nil, logger)
}

func main() {
	ctx := context.Background()
	err := rootCmd.ExecuteContext(ctx)
	if backend != nil {
		_ = backend.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
