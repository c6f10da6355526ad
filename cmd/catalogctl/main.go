// cmd/catalogctl/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jrvaldez/product-catalog/internal/client"
	"github.com/jrvaldez/product-catalog/internal/config"
	"github.com/jrvaldez/product-catalog/internal/form"
	"github.com/jrvaldez/product-catalog/internal/listview"
	"github.com/jrvaldez/product-catalog/internal/toast"
)

var (
	apiURL string

	productID   string
	productName string
	description string
	logo        string
	dateRelease string
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	api := client.New(cfg.Client.BaseURL, time.Duration(cfg.Client.Timeout)*time.Second)

	rootCmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Manage the product catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "override the catalog API base URL")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if apiURL != "" {
			api = client.New(apiURL, time.Duration(cfg.Client.Timeout)*time.Second)
		}
	}

	rootCmd.AddCommand(
		listCommand(api, cfg),
		getCommand(api),
		createCommand(api, cfg),
		updateCommand(api, cfg),
		deleteCommand(api),
		verifyCommand(api),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func listCommand(api *client.Client, cfg *config.Config) *cobra.Command {
	var filter string
	var pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := listview.NewView(api)
			if err := view.Load(cmd.Context()); err != nil {
				return err
			}

			view.SetFilter(filter)
			view.SetPageSize(pageSize)

			products := view.Visible()
			if len(products) == 0 {
				fmt.Println("No products found")
				return nil
			}

			for _, p := range products {
				fmt.Printf("%-10s  %-30s  %s → %s\n", p.ID, p.Name, p.DateRelease, p.DateRevision)
			}
			fmt.Printf("Showing %d of %d matching products\n", len(products), view.FilteredCount())
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "substring filter over name and description")
	cmd.Flags().IntVar(&pageSize, "page-size", cfg.UI.PageSize, "maximum number of rows to show")
	return cmd
}

func getCommand(api *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := api.GetByID(cmd.Context(), args[0])
			if err != nil || product == nil {
				return fmt.Errorf("no product found with identifier %q", args[0])
			}

			fmt.Printf("ID:            %s\n", product.ID)
			fmt.Printf("Name:          %s\n", product.Name)
			fmt.Printf("Description:   %s\n", product.Description)
			fmt.Printf("Logo:          %s\n", product.Logo)
			fmt.Printf("Release date:  %s\n", product.DateRelease)
			fmt.Printf("Revision date: %s\n", product.DateRevision)
			return nil
		},
	}
}

func productFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&productID, "id", "", "product identifier")
	cmd.Flags().StringVar(&productName, "name", "", "product name")
	cmd.Flags().StringVar(&description, "description", "", "product description")
	cmd.Flags().StringVar(&logo, "logo", "", "logo URI or filename")
	cmd.Flags().StringVar(&dateRelease, "date-release", "", "release date (YYYY-MM-DD); the revision date is derived")
}

func createCommand(api *client.Client, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			return submitDraft(cmd.Context(), api, cfg, "")
		},
	}
	productFlags(cmd)
	return cmd
}

func updateCommand(api *client.Client, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an existing product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return submitDraft(cmd.Context(), api, cfg, args[0])
		},
	}
	productFlags(cmd)
	return cmd
}

// submitDraft drives the form controller the way the interactive form
// would: populate fields, let the derived and async validation settle,
// submit, and print outcome or per-field messages.
func submitDraft(ctx context.Context, api *client.Client, cfg *config.Config, existingID string) error {
	bus := toast.NewBusWithDuration(time.Duration(cfg.UI.ToastDurationMs) * time.Millisecond)
	defer bus.Close()
	notifications := bus.Subscribe()

	controller := form.New(api, bus,
		form.WithDebounce(time.Duration(cfg.UI.DebounceMs)*time.Millisecond),
	)
	defer controller.Close()

	controller.Initialize(ctx, existingID)
	if msg := controller.LoadError(); msg != "" {
		return errors.New(msg)
	}

	fields := map[string]string{
		form.FieldID:          productID,
		form.FieldName:        productName,
		form.FieldDescription: description,
		form.FieldLogo:        logo,
		form.FieldDateRelease: dateRelease,
	}
	for name, value := range fields {
		if value != "" {
			controller.SetValue(name, value)
		}
	}

	err := controller.Submit(ctx)
	if errors.Is(err, form.ErrInvalid) {
		fmt.Fprintln(os.Stderr, "The product draft is not valid:")
		for _, name := range []string{form.FieldID, form.FieldName, form.FieldDescription, form.FieldLogo, form.FieldDateRelease, form.FieldDateRevision} {
			for _, msg := range controller.ErrorMessages(name) {
				fmt.Fprintf(os.Stderr, "  - %s\n", msg)
			}
		}
		return err
	}

	select {
	case n := <-notifications:
		fmt.Printf("[%s] %s\n", n.Severity, n.Message)
	default:
	}

	return err
}

func deleteCommand(api *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := api.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		},
	}
}

func verifyCommand(api *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <id>",
		Short: "Check whether a product identifier is already taken",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exists, err := api.ExistsByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(exists)
			return nil
		},
	}
}
