package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	tenant  string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bizledger-cli",
		Short: "BizLedger CLI tool",
		Long:  `A command line interface for interacting with the BizLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the BizLedger API")
	rootCmd.PersistentFlags().StringVar(&tenant, "tenant", "", "Tenant ID sent with every request")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(entityCmd("customer", "customers"))
	rootCmd.AddCommand(entityCmd("supplier", "suppliers"))
	rootCmd.AddCommand(productCmd())
	rootCmd.AddCommand(quoteCmd())
	rootCmd.AddCommand(reportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// entityCmd builds the shared customer/supplier command set.
func entityCmd(name, resource string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("%s operations", name),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "balance <id>",
		Short: fmt.Sprintf("Show a %s's balance", name),
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			apiGet(fmt.Sprintf("/api/v1/%s/%s/balance", resource, args[0]))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "summary <id>",
		Short: fmt.Sprintf("Show a %s's activity summary", name),
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			apiGet(fmt.Sprintf("/api/v1/%s/%s/summary", resource, args[0]))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "entries <id>",
		Short: fmt.Sprintf("List a %s's ledger entries", name),
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			apiGet(fmt.Sprintf("/api/v1/%s/%s/entries", resource, args[0]))
		},
	})

	return cmd
}

func productCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Product and inventory operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stock <id>",
		Short: "Show a product's current stock level",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			apiGet(fmt.Sprintf("/api/v1/products/%s/stock-level", args[0]))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reorder <id>",
		Short: "Show reorder advice for a product",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			apiGet(fmt.Sprintf("/api/v1/products/%s/reorder-advice", args[0]))
		},
	})

	return cmd
}

func quoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quote <request-json>",
		Short: "Compute a price quote from a JSON request body",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			apiPost("/api/v1/quotes", []byte(args[0]))
		},
	}
}

func reportCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Financial reporting",
	}

	financial := &cobra.Command{
		Use:   "financial",
		Short: "Generate a financial report",
		Run: func(cmd *cobra.Command, args []string) {
			apiGet(reportPath("/api/v1/reports/financial", from, to))
		},
	}

	cashflow := &cobra.Command{
		Use:   "cashflow",
		Short: "Show daily cash flow",
		Run: func(cmd *cobra.Command, args []string) {
			apiGet(reportPath("/api/v1/reports/cashflow", from, to))
		},
	}

	for _, c := range []*cobra.Command{financial, cashflow} {
		c.Flags().StringVar(&from, "from", "", "Period start (RFC 3339)")
		c.Flags().StringVar(&to, "to", "", "Period end (RFC 3339)")
		cmd.AddCommand(c)
	}

	return cmd
}

// reportPath appends the optional period bounds as query parameters.
func reportPath(path, from, to string) string {
	sep := "?"
	if from != "" {
		path += sep + "from=" + from
		sep = "&"
	}
	if to != "" {
		path += sep + "to=" + to
	}
	return path
}

func apiGet(path string) {
	doRequest(http.MethodGet, path, nil)
}

func apiPost(path string, body []byte) {
	doRequest(http.MethodPost, path, body)
}

func doRequest(method, path string, body []byte) {
	client := &http.Client{Timeout: timeout}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", tenant)

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(raw))
		os.Exit(1)
	}

	var result any
	if err := json.Unmarshal(raw, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(result)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to format output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
