package fitcoach

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var subscriptionCmd = &cobra.Command{
	Use:     "subscription",
	Aliases: []string{"sub"},
	Short:   "Check or start your subscription",
}

var subscriptionStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show trial and subscription status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, func(ctx context.Context, d *deps) error {
			status, trial, err := d.coach.SubscriptionOverview(ctx)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(cmd, map[string]any{"subscription": status, "trial": trial})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n%s\n", trial.Title, trial.Message)
			if status.TrialEndsAt != nil && !status.HasActiveSubscription {
				fmt.Fprintf(out, "Trial ends\t%s\n", status.TrialEndsAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		})
	},
}

var (
	subPaymentMethod string
	subPlan          string
)

var subscriptionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Subscribe with a payment method",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, func(ctx context.Context, d *deps) error {
			res, err := d.coach.Subscribe(ctx, subPaymentMethod, subPlan)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(cmd, res)
			}
			var summary struct {
				Status         string `json:"status"`
				SubscriptionID string `json:"subscriptionId"`
			}
			if err := json.Unmarshal(res, &summary); err != nil || summary.Status == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Subscription submitted: %s\n", res)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Subscription %s", summary.Status)
			if summary.SubscriptionID != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " (%s)", summary.SubscriptionID)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(subscriptionCmd)
	subscriptionCmd.AddCommand(subscriptionStatusCmd, subscriptionCreateCmd)

	subscriptionCreateCmd.Flags().StringVar(&subPaymentMethod, "payment-method", "", "Payment method token or type")
	subscriptionCreateCmd.Flags().StringVar(&subPlan, "plan", "", "Subscription plan (server default when empty)")
	_ = subscriptionCreateCmd.MarkFlagRequired("payment-method")
}
