package main

import (
	"fmt"
	"io"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newProductsCmd(c *cli) *cobra.Command {
	var (
		in       usecase.ListProductsInput
		minPrice string
		maxPrice string
	)

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Search, filter and sort the catalog",
		Long: `Lists catalog items matching every given filter.

Sort keys: relevance, priceAsc, priceDesc, nameAsc, nameDesc, releaseDate, rating.
An inverted price range is swapped rather than rejected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.MinPrice = parsePrice(minPrice)
			in.MaxPrice = parsePrice(maxPrice)

			out, err := c.products.ListProducts(cmd.Context(), in)
			if err != nil {
				return err
			}
			renderProducts(c.out, out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&in.Q, "query", "q", "", "text to find in title, description, genres or platforms")
	f.StringSliceVar(&in.Genres, "genre", nil, "genre to include (repeatable)")
	f.StringSliceVar(&in.Platforms, "platform", nil, "platform to include (repeatable)")
	f.StringVar(&minPrice, "min", "", "minimum effective price")
	f.StringVar(&maxPrice, "max", "", "maximum effective price")
	f.StringVar(&in.Sort, "sort", "relevance", "sort key")
	f.StringVar(&in.Category, "category", "", "single genre, matched case-insensitively")
	f.BoolVar(&in.OnSale, "sale", false, "only items on sale")
	f.IntVar(&in.Page, "page", 1, "page number")
	f.IntVar(&in.Limit, "limit", 20, "items per page (max 100)")
	return cmd
}

func newProductCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show one catalog item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.products.GetProductDetail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderProduct(c.out, p)
			return nil
		},
	}
}

func renderProducts(w io.Writer, out usecase.ProductListOutput) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "PRICE", "RATING", "RELEASED", "GENRES")

	for _, it := range out.Items {
		t.Row(
			it.ID,
			it.Title,
			formatItemPrice(it),
			fmt.Sprintf("%.1f", it.Rating),
			it.ReleaseDate.String(),
			strings.Join(it.Genres, ", "),
		)
	}

	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%d of %d items (page %d, filters %d)\n", len(out.Items), out.Total, out.Page, out.ActiveFilters)
}

func renderProduct(w io.Writer, p model.CatalogItem) {
	fmt.Fprintf(w, "%s\n", p.Title)
	fmt.Fprintf(w, "  price:     %s\n", formatItemPrice(p))
	fmt.Fprintf(w, "  rating:    %.1f (%d reviews)\n", p.Rating, p.Reviews)
	fmt.Fprintf(w, "  released:  %s\n", p.ReleaseDate)
	fmt.Fprintf(w, "  developer: %s / %s\n", p.Developer, p.Publisher)
	fmt.Fprintf(w, "  genres:    %s\n", strings.Join(p.Genres, ", "))
	fmt.Fprintf(w, "  platforms: %s\n", strings.Join(p.Platforms, ", "))
	fmt.Fprintf(w, "\n%s\n", p.Description)
}

// セール中は「$39.99 (was $59.99, -33%)」
func formatItemPrice(p model.CatalogItem) string {
	if !p.OnSale() {
		return formatMoney(p.Price)
	}
	discount := model.DiscountFor(p.Price, *p.SalePrice)
	if p.Discount != nil {
		discount = *p.Discount
	}
	return fmt.Sprintf("%s (was %s, -%d%%)", formatMoney(*p.SalePrice), formatMoney(p.Price), discount)
}

func formatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// 解釈できない値は指定なし扱い
func parsePrice(v string) *decimal.Decimal {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil
	}
	return &d
}
