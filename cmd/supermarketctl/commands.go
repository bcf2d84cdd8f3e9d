package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ghuser/supermarket/pkg/client"
	"github.com/ghuser/supermarket/services/product/domain/models"
)

// newRootCmd builds the command tree. Every command resolves --addr and
// --timeout through its own viper instance, so flags, SUPERMARKET_* env vars
// and an optional --config file all work.
func newRootCmd() *cobra.Command {
	v := viper.New()
	var api *client.Client

	root := &cobra.Command{
		Use:           "supermarketctl",
		Short:         "Manage products and place orders against the supermarket API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cfg := v.GetString("config"); cfg != "" {
				v.SetConfigFile(cfg)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read config: %w", err)
				}
			}
			addr := v.GetString("addr")
			if addr == "" {
				return errors.New("api address is required (--addr or SUPERMARKET_ADDR)")
			}
			api = client.New(addr, v.GetDuration("timeout"))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("addr", "http://localhost:8080", "base URL of the supermarket API")
	flags.Duration("timeout", 30*time.Second, "request timeout")
	flags.String("config", "", "config file (yaml, json or toml)")
	for _, name := range []string{"addr", "timeout", "config"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
	v.SetEnvPrefix("SUPERMARKET")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	clientFn := func() *client.Client { return api }
	root.AddCommand(
		newCreateCmd(clientFn),
		newGetCmd(clientFn),
		newOrderCmd(clientFn),
	)
	return root
}

func newCreateCmd(api func() *client.Client) *cobra.Command {
	var (
		id                        int
		quantity                  uint
		category                  string
		name, manufacturer, email string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add or replace a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := client.Product{ProductID: id, Category: category, Quantity: quantity}
			// Unset flags stay nil so the API reports the missing field.
			if cmd.Flags().Changed("name") {
				p.Name = &name
			}
			if cmd.Flags().Changed("manufacturer") {
				p.Manufacturer = &manufacturer
			}
			if cmd.Flags().Changed("email") {
				p.ImporterEmail = &email
			}

			created, err := api().CreateProduct(cmd.Context(), p)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), created)
		},
	}
	cmd.Flags().IntVar(&id, "id", 0, "product id")
	cmd.Flags().StringVar(&category, "category", "", "category: "+categoryChoices())
	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&manufacturer, "manufacturer", "", "manufacturer name")
	cmd.Flags().StringVar(&email, "email", "", "importer email")
	cmd.Flags().UintVar(&quantity, "quantity", 0, "initial stock")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newGetCmd(api func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := api().GetProduct(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
}

func newOrderCmd(api func() *client.Client) *cobra.Command {
	var quantity uint
	cmd := &cobra.Command{
		Use:   "order <id>",
		Short: "Order units of a product, restocking from the supplier when needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			receipt, err := api().PlaceOrder(cmd.Context(), id, quantity)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), receipt)
		},
	}
	cmd.Flags().UintVarP(&quantity, "quantity", "q", 0, "units to order")
	_ = cmd.MarkFlagRequired("quantity")
	return cmd
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("product id must be an integer, got %q", s)
	}
	return id, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func categoryChoices() string {
	names := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		names[i] = c.String()
	}
	return strings.Join(names, "|")
}
