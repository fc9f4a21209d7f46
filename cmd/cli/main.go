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
	timeout time.Duration
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gobank-cli",
		Short: "GoBank CLI tool",
		Long:  `A command line interface for interacting with the GoBank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoBank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("GOBANK_TOKEN"), "Bearer token (defaults to GOBANK_TOKEN)")

	rootCmd.AddCommand(registerCmd(), loginCmd(), accountCmd(), depositCmd(), withdrawCmd(), transferCmd(), reportCmd(), loanCmd(), reserveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func registerCmd() *cobra.Command {
	var email, firstName, lastName, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/auth/register", map[string]any{
				"email":      email,
				"first_name": firstName,
				"last_name":  lastName,
				"password":   password,
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print a bearer token",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/auth/login", map[string]any{
				"email":    email,
				"password": password,
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func accountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Show the authenticated user's account",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/accounts/me", nil)
		},
	}
}

func depositCmd() *cobra.Command {
	var amount string

	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit money into your account",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/transactions/deposit", map[string]any{
				"amount": amount,
			})
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "Amount to deposit")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func withdrawCmd() *cobra.Command {
	var amount string

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw money from your account",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/transactions/withdraw", map[string]any{
				"amount": amount,
			})
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "Amount to withdraw")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func transferCmd() *cobra.Command {
	var recipient, amount string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer money to another account",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/transactions/transfer", map[string]any{
				"recipient_account_no": recipient,
				"amount":               amount,
			})
		},
	}

	cmd.Flags().StringVar(&recipient, "to", "", "Recipient account number")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to transfer")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func reportCmd() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show transaction history",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/transactions/report"
			sep := "?"
			if start != "" {
				path += sep + "start=" + start
				sep = "&"
			}
			if end != "" {
				path += sep + "end=" + end
			}
			doRequest(http.MethodGet, path, nil)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Range start (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Range end (RFC3339 or YYYY-MM-DD)")

	return cmd
}

func loanCmd() *cobra.Command {
	loanCmd := &cobra.Command{
		Use:   "loan",
		Short: "Loan operations",
	}

	var amount string
	requestCmd := &cobra.Command{
		Use:   "request",
		Short: "Request a loan",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/loans", map[string]any{
				"amount": amount,
			})
		},
	}
	requestCmd.Flags().StringVar(&amount, "amount", "", "Loan amount")
	requestCmd.MarkFlagRequired("amount")

	approveCmd := &cobra.Command{
		Use:   "approve [loan-id]",
		Short: "Approve a loan (admin only)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/loans/"+args[0]+"/approve", nil)
		},
	}

	repayCmd := &cobra.Command{
		Use:   "repay [loan-id]",
		Short: "Repay an approved loan",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/loans/"+args[0]+"/repay", nil)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your loans",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/loans", nil)
		},
	}

	loanCmd.AddCommand(requestCmd, approveCmd, repayCmd, listCmd)
	return loanCmd
}

func reserveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reserve",
		Short: "Show the bank reserve (admin only)",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/bank/reserve", nil)
		},
	}
}

func doRequest(method, path string, payload map[string]any) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, respBody, "", "  "); err != nil {
		fmt.Println(string(respBody))
	} else {
		fmt.Println(pretty.String())
	}

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request failed (Status: %d)\n", resp.StatusCode)
		os.Exit(1)
	}
}
