package main

import (
	"fmt"
	"io"
	"strconv"

	"storefront/internal/usecase"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newCartCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.cart.GetCart(cmd.Context())
			if err != nil {
				return err
			}
			renderCart(c.out, out)
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <id>",
			Short: "Add one of a catalog item (price is captured on first add)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := c.cart.AddToCart(cmd.Context(), usecase.AddCartInput{ProductID: args[0]})
				if err != nil {
					return err
				}
				renderCart(c.out, out)
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove a line from the cart",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := c.cart.DeleteCartItem(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				renderCart(c.out, out)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <id> <quantity>",
			Short: "Set the quantity of a line (0 or less removes it)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				qty, err := strconv.ParseInt(args[1], 10, 64)
				if err != nil {
					return fmt.Errorf("quantity must be a whole number: %q", args[1])
				}
				out, err := c.cart.UpdateCartItem(cmd.Context(), args[0], usecase.UpdateCartItemInput{Quantity: qty})
				if err != nil {
					return err
				}
				renderCart(c.out, out)
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := c.cart.ClearCart(cmd.Context())
				if err != nil {
					return err
				}
				renderCart(c.out, out)
				return nil
			},
		},
	)
	return cmd
}

func renderCart(w io.Writer, out usecase.CartResponse) {
	if len(out.Items) == 0 {
		fmt.Fprintln(w, "Your cart is empty")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "PRICE", "QTY", "SUBTOTAL")
	for _, it := range out.Items {
		t.Row(it.ID, it.Title, formatMoney(it.Price), strconv.FormatInt(it.Quantity, 10), formatMoney(it.Subtotal))
	}
	fmt.Fprintln(w, t.Render())

	fmt.Fprintf(w, "items:    %d\n", out.ItemCount)
	fmt.Fprintf(w, "subtotal: %s\n", formatMoney(out.Subtotal))
	fmt.Fprintf(w, "tax:      %s\n", formatMoney(out.Tax))
	fmt.Fprintf(w, "total:    %s\n", formatMoney(out.Total))
}
