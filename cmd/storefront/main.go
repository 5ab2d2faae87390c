// storefront はカタログ検索とカート操作をターミナルから行うクライアント。
// カートは CART_STORE の保存先に書かれるので、実行をまたいで残る。
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"storefront/internal/bootstrap"
	"storefront/internal/config"
	"storefront/internal/logger"
	"storefront/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type cli struct {
	out io.Writer

	log      *zap.Logger
	app      *bootstrap.App
	products *usecase.ProductUsecase
	cart     *usecase.CartUsecase
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse the game catalog and manage your cart",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.close()
		},
	}
	root.SetOut(out)

	root.AddCommand(
		newProductsCmd(c),
		newProductCmd(c),
		newCartCmd(c),
	)
	return root
}

func (c *cli) open(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	c.log, err = logger.New(cfg.GoEnv, cfg.LogLevel)
	if err != nil {
		return err
	}

	c.app, err = bootstrap.New(ctx, cfg, c.log)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	c.products = usecase.NewProductUsecase(c.app.Catalog)
	c.cart = usecase.NewCartUsecase(c.app.Cart, c.app.Catalog, cfg.TaxRate)
	return nil
}

func (c *cli) close() error {
	if c.log != nil {
		defer func() { _ = c.log.Sync() }()
	}
	if c.app == nil {
		return nil
	}
	return c.app.Close()
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newRootCmd(os.Stdout).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
