package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/talkincode/sheetshop/internal/whatsapp"
)

var linkCmd = &cobra.Command{
	Use:   "link <text>",
	Short: "Print the WhatsApp link that sends text to the shop number",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Shop.WhatsAppNumber == "" {
			return errors.New("shop.whatsapp_number is not configured")
		}
		b := whatsapp.NewLinkBuilder(cfg.Shop.MessagingBase, cfg.Shop.WhatsAppNumber)
		_, err = fmt.Fprintln(cmd.OutOrStdout(), b.Link(strings.Join(args, " ")))
		return err
	},
}
