package main

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/spf13/cobra"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/common/config"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/model"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/queue"
)

func newQueueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Work queue utilities",
	}
	cmd.AddCommand(newQueueSendCmd())
	return cmd
}

func newQueueSendCmd() *cobra.Command {
	var (
		req       model.DiningRequest
		partySize string
	)

	c := &cobra.Command{
		Use:   "send",
		Short: "Enqueue a dining request for the fulfillment batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, done, err := loadConfig(cmd, (*config.Config).ValidateForDialog)
			if err != nil {
				return err
			}
			defer done()
			ctx := cmd.Context()

			req.PartySize = model.PartySize(partySize)
			body, err := req.Marshal()
			if err != nil {
				return err
			}

			awsCfg, err := loadAWSConfig(ctx, cfg)
			if err != nil {
				return err
			}
			messageID, err := queue.NewSQSQueue(sqs.NewFromConfig(awsCfg), cfg.Queue.URL).Send(ctx, body)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Message sent! Message ID: %s\n", messageID)
			return nil
		},
	}

	c.Flags().StringVar(&req.City, "city", "new york", "City")
	c.Flags().StringVar(&req.Cuisine, "cuisine", "chinese", "Cuisine")
	c.Flags().StringVar(&partySize, "party-size", "6", "Party size")
	c.Flags().StringVar(&req.Time, "time", "13:00", "Dining time")
	c.Flags().StringVar(&req.Email, "email", "", "Recipient email address")
	_ = c.MarkFlagRequired("email")
	return c
}
