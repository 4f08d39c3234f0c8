package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"portfolio/internal/inbox"
	"portfolio/pkg/models"
)

var (
	contactDraft models.ContactDraft

	messagesStatus string
	messagesLimit  int
	messagesOffset int
	messagesCSV    string
	messagesFollow bool
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send a message through the contact form",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		u, err := endpoint(baseURL, "/contact", nil)
		if err != nil {
			return err
		}
		var res struct {
			Status     string `json:"status"`
			HandoffURI string `json:"handoff_uri"`
		}
		if err := doJSON(ctx, httpClient(), http.MethodPost, u, "", contactDraft, &res); err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		switch res.Status {
		case "handed_off":
			fmt.Fprintln(w, "Open this link in your mail client to send the message:")
			fmt.Fprintln(w, res.HandoffURI)
		default:
			fmt.Fprintln(w, "Message sent successfully!")
		}
		return nil
	},
}

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "List archived contact submissions (admin)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := readToken(tokenPath)
		if err != nil {
			return err
		}

		if messagesFollow {
			return followMessages(cmd, token)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		q := url.Values{}
		if messagesStatus != "" {
			q.Set("status", messagesStatus)
		}
		q.Set("limit", strconv.Itoa(messagesLimit))
		q.Set("offset", strconv.Itoa(messagesOffset))
		u, err := endpoint(baseURL, "/admin/messages", q)
		if err != nil {
			return err
		}

		var resp struct {
			Total  int                     `json:"total"`
			Limit  int                     `json:"limit"`
			Offset int                     `json:"offset"`
			Items  []models.ContactMessage `json:"items"`
		}
		if err := doJSON(ctx, httpClient(), http.MethodGet, u, token, nil, &resp); err != nil {
			return err
		}

		if messagesCSV == "" {
			return printJSON(cmd.OutOrStdout(), resp)
		}
		f, err := os.Create(messagesCSV)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := writeMessagesCSV(f, resp.Items); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d of %d messages to %s\n", len(resp.Items), resp.Total, messagesCSV)
		return nil
	},
}

func init() {
	contactCmd.Flags().StringVar(&contactDraft.Name, "name", "", "your name")
	contactCmd.Flags().StringVar(&contactDraft.Email, "email", "", "your email address")
	contactCmd.Flags().StringVar(&contactDraft.Subject, "subject", "", "message subject")
	contactCmd.Flags().StringVar(&contactDraft.Message, "message", "", "message body")

	messagesCmd.Flags().StringVar(&messagesStatus, "status", "", "filter by status (sent, failed, handed_off)")
	messagesCmd.Flags().IntVar(&messagesLimit, "limit", 50, "page size")
	messagesCmd.Flags().IntVar(&messagesOffset, "offset", 0, "offset")
	messagesCmd.Flags().StringVar(&messagesCSV, "csv", "", "write the page to this CSV file")
	messagesCmd.Flags().BoolVar(&messagesFollow, "follow", false, "stream new submissions as they arrive")
}

func followMessages(cmd *cobra.Command, token string) error {
	u, err := websocketURL(baseURL, "/admin/ws/messages", nil)
	if err != nil {
		return err
	}
	header := http.Header{"Authorization": {"Bearer " + token}}
	conn, _, err := websocket.DefaultDialer.DialContext(cmd.Context(), u, header)
	if err != nil {
		return fmt.Errorf("dial %s: %w", u, err)
	}
	defer conn.Close()

	w := cmd.OutOrStdout()
	for {
		var ev inbox.Event
		if err := conn.ReadJSON(&ev); err != nil {
			return err
		}
		if ev.Message == nil {
			continue
		}
		m := ev.Message
		fmt.Fprintf(w, "[%s] %s <%s> %q via %s\n", m.Status, m.Name, m.Email, m.Subject, m.Delivery)
	}
}
