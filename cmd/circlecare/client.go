package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"text/tabwriter"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/circlecare/internal/middleware"
	"github.com/mmynk/circlecare/pkg/api"
	"github.com/mmynk/circlecare/pkg/api/apiconnect"
	"github.com/mmynk/circlecare/pkg/stx"
)

var (
	serverURL    string
	bearerToken  string
	settleAmount string

	infoCmd = &cobra.Command{
		Use:   "info",
		Short: "Show ledger owner, height and settings",
		Args:  cobra.NoArgs,
		RunE:  runInfo,
	}

	statsCmd = &cobra.Command{
		Use:   "stats <circle-id>",
		Short: "Show a circle's activity totals",
		Args:  cobra.ExactArgs(1),
		RunE:  runStats,
	}

	balanceCmd = &cobra.Command{
		Use:   "balance <circle-id> <member>",
		Short: "Show a member's net balance in a circle",
		Args:  cobra.ExactArgs(2),
		RunE:  runBalance,
	}

	suggestCmd = &cobra.Command{
		Use:   "suggest <circle-id>",
		Short: "List the payments that would settle a circle",
		Args:  cobra.ExactArgs(1),
		RunE:  runSuggest,
	}

	settleCmd = &cobra.Command{
		Use:   "settle <circle-id> <creditor>",
		Short: "Pay what you owe a creditor, in full or with --amount",
		Args:  cobra.ExactArgs(2),
		RunE:  runSettle,
	}
)

func init() {
	for _, c := range []*cobra.Command{infoCmd, statsCmd, balanceCmd, suggestCmd, settleCmd} {
		c.Flags().StringVar(&serverURL, "url", envOr("CIRCLECARE_URL", "http://localhost:8080"), "server base URL")
		c.Flags().StringVar(&bearerToken, "token", os.Getenv("CIRCLECARE_TOKEN"), "bearer token (see `circlecare token`)")
	}
	settleCmd.Flags().StringVar(&settleAmount, "amount", "", "partial amount in STX, e.g. 1.5")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func clientOptions() ([]connect.ClientOption, error) {
	if bearerToken == "" {
		return nil, errors.New("a bearer token is required: pass --token or set CIRCLECARE_TOKEN")
	}
	return []connect.ClientOption{connect.WithInterceptors(middleware.BearerToken(bearerToken))}, nil
}

func circleClient() (apiconnect.CircleServiceClient, error) {
	opts, err := clientOptions()
	if err != nil {
		return nil, err
	}
	return apiconnect.NewCircleServiceClient(http.DefaultClient, serverURL, opts...), nil
}

func expenseClient() (apiconnect.ExpenseServiceClient, error) {
	opts, err := clientOptions()
	if err != nil {
		return nil, err
	}
	return apiconnect.NewExpenseServiceClient(http.DefaultClient, serverURL, opts...), nil
}

func parseCircleID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid circle id %q", s)
	}
	return id, nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	client, err := circleClient()
	if err != nil {
		return err
	}
	resp, err := client.GetLedgerInfo(cmd.Context(), connect.NewRequest(&api.GetLedgerInfoRequest{}))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "owner\t%s\n", resp.Msg.Owner)
	fmt.Fprintf(w, "block height\t%d\n", resp.Msg.BlockHeight)
	fmt.Fprintf(w, "circles\t%d\n", resp.Msg.TotalCircles)
	fmt.Fprintf(w, "creation fee\t%s\n", stx.Format(resp.Msg.CreationFee))
	fmt.Fprintf(w, "max circles per user\t%d\n", resp.Msg.MaxCirclesPerUser)
	return w.Flush()
}

func runStats(cmd *cobra.Command, args []string) error {
	id, err := parseCircleID(args[0])
	if err != nil {
		return err
	}
	client, err := circleClient()
	if err != nil {
		return err
	}
	resp, err := client.GetCircleStats(cmd.Context(), connect.NewRequest(&api.CircleRequest{CircleID: id}))
	if err != nil {
		return err
	}

	s := resp.Msg.Stats
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "members\t%d\n", s.MemberCount)
	fmt.Fprintf(w, "expenses\t%d (%s)\n", s.ExpenseCount, stx.Format(s.TotalExpenses))
	fmt.Fprintf(w, "settlements\t%d (%s)\n", s.SettlementCount, stx.Format(s.TotalSettled))
	fmt.Fprintf(w, "treasury\t%s\n", stx.Format(s.TreasuryBalance))
	fmt.Fprintf(w, "active\t%t\n", s.Active)
	fmt.Fprintf(w, "paused\t%t\n", s.Paused)
	return w.Flush()
}

func runBalance(cmd *cobra.Command, args []string) error {
	id, err := parseCircleID(args[0])
	if err != nil {
		return err
	}
	client, err := expenseClient()
	if err != nil {
		return err
	}
	resp, err := client.GetNetBalance(cmd.Context(), connect.NewRequest(&api.GetNetBalanceRequest{
		CircleID: id,
		Member:   args[1],
	}))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), stx.FormatSigned(resp.Msg.Net))
	return nil
}

func runSuggest(cmd *cobra.Command, args []string) error {
	id, err := parseCircleID(args[0])
	if err != nil {
		return err
	}
	client, err := expenseClient()
	if err != nil {
		return err
	}
	resp, err := client.GetSuggestedSettlements(cmd.Context(), connect.NewRequest(&api.CircleRequest{CircleID: id}))
	if err != nil {
		return err
	}

	if len(resp.Msg.Settlements) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "all settled")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, e := range resp.Msg.Settlements {
		fmt.Fprintf(w, "%s\t->\t%s\t%s\n", e.From, e.To, stx.Format(e.Amount))
	}
	return w.Flush()
}

func runSettle(cmd *cobra.Command, args []string) error {
	id, err := parseCircleID(args[0])
	if err != nil {
		return err
	}
	payment := api.PaymentInput{Creditor: args[1]}
	if settleAmount != "" {
		micro, err := stx.Parse(settleAmount)
		if err != nil {
			return err
		}
		payment.Amount = &micro
	}

	opts, err := clientOptions()
	if err != nil {
		return err
	}
	client := apiconnect.NewSettlementServiceClient(http.DefaultClient, serverURL, opts...)
	resp, err := client.SettleDebt(cmd.Context(), connect.NewRequest(&api.SettleDebtRequest{
		CircleID:     id,
		PaymentInput: payment,
	}))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "settlement %d recorded\n", resp.Msg.SettlementID)
	return nil
}
