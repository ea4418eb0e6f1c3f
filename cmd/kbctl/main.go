// Package main implements the kbctl CLI for manual operations against the
// kbengined HTTP server.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	// serverURL is the base URL for the kbengined HTTP server
	serverURL string
	version   = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kbctl",
	Short: "CLI for kbengined knowledge retrieval operations",
	Long: `kbctl is a command-line interface for the kbengined HTTP server.
It provides commands for searching the FAQ corpus, fetching a single best
answer, locating troubleshooting guides and checking server health.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:9180", "kbengined server URL")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(guideCmd)
	rootCmd.AddCommand(contextCmd)
	rootCmd.AddCommand(healthCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the FAQ corpus",
	Long: `Search the FAQ corpus and print the top matches.

Examples:
  kbctl search "phone screen repair"
  kbctl search --server http://localhost:8080 "opening hours"`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

var askCmd = &cobra.Command{
	Use:   "ask <query>",
	Short: "Fetch the single best answer for a query",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

var guideCmd = &cobra.Command{
	Use:   "guide <device> <issue>",
	Short: "Locate a troubleshooting guide",
	Long: `Locate the troubleshooting guide for a device type and issue.

Examples:
  kbctl guide laptop "won't turn on"
  kbctl guide phone "cracked screen"`,
	Args: cobra.ExactArgs(2),
	RunE: runGuide,
}

var contextCmd = &cobra.Command{
	Use:   "context <query> [device]",
	Short: "Assemble the generation context for a query",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runContext,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check kbengined server health",
	RunE:  runHealth,
}

func runSearch(cmd *cobra.Command, args []string) error {
	var resp struct {
		Query string `json:"query"`
		Items []struct {
			Question string `json:"question"`
			Answer   string `json:"answer"`
			Category string `json:"category"`
		} `json:"items"`
	}
	params := url.Values{"q": {args[0]}}
	if err := getJSON("/api/v1/search", params, &resp); err != nil {
		return err
	}

	if len(resp.Items) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for i, item := range resp.Items {
		fmt.Printf("%d. [%s] %s\n   %s\n", i+1, item.Category, item.Question, item.Answer)
	}
	return nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	var resp struct {
		Found    bool   `json:"found"`
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	params := url.Values{"q": {args[0]}}
	if err := getJSON("/api/v1/answer", params, &resp); err != nil {
		return err
	}

	if !resp.Found {
		fmt.Println("No confident answer found.")
		return nil
	}
	fmt.Println(resp.Answer)
	return nil
}

func runGuide(cmd *cobra.Command, args []string) error {
	var resp struct {
		Found       bool     `json:"found"`
		Key         string   `json:"key"`
		SafetyLevel string   `json:"safety_level"`
		ToolsNeeded []string `json:"tools_needed"`
		Steps       []struct {
			Step        int    `json:"step"`
			Action      string `json:"action"`
			Description string `json:"description"`
			Warning     string `json:"warning"`
		} `json:"steps"`
		WhenToStop string `json:"when_to_stop"`
	}
	params := url.Values{"device": {args[0]}, "issue": {args[1]}}
	if err := getJSON("/api/v1/guide", params, &resp); err != nil {
		return err
	}

	if !resp.Found {
		fmt.Println("No guide matched.")
		return nil
	}
	fmt.Printf("Guide: %s (safety: %s)\n", resp.Key, resp.SafetyLevel)
	for _, s := range resp.Steps {
		fmt.Printf("%d. %s: %s\n", s.Step, s.Action, s.Description)
		if s.Warning != "" {
			fmt.Printf("   Warning: %s\n", s.Warning)
		}
	}
	if resp.WhenToStop != "" {
		fmt.Printf("When to stop: %s\n", resp.WhenToStop)
	}
	return nil
}

func runContext(cmd *cobra.Command, args []string) error {
	params := url.Values{"q": {args[0]}}
	if len(args) > 1 {
		params.Set("device", args[1])
	}
	var resp struct {
		Context string `json:"context"`
	}
	if err := getJSON("/api/v1/context", params, &resp); err != nil {
		return err
	}
	fmt.Println(resp.Context)
	return nil
}

func runHealth(cmd *cobra.Command, args []string) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := getJSON("/health", nil, &resp); err != nil {
		return err
	}
	fmt.Printf("Server status: %s\n", resp.Status)
	return nil
}

func getJSON(path string, params url.Values, out interface{}) error {
	client := &http.Client{Timeout: 10 * time.Second}

	u := serverURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	resp, err := client.Get(u)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}
	return json.Unmarshal(body, out)
}
