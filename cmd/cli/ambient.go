package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"portfolio/internal/ambient"
)

var (
	ambientScene  string
	ambientFrames int
	starsCount    int
	starsSeed     string
)

var ambientCmd = &cobra.Command{
	Use:   "ambient",
	Short: "Inspect the animated background",
}

var ambientWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream animation frames for a scene",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := ambient.ParseScene(ambientScene); err != nil {
			return err
		}
		u, err := websocketURL(baseURL, "/ws/ambient", url.Values{"scene": {ambientScene}})
		if err != nil {
			return err
		}

		conn, _, err := websocket.DefaultDialer.DialContext(cmd.Context(), u, nil)
		if err != nil {
			return fmt.Errorf("dial %s: %w", u, err)
		}
		defer conn.Close()

		w := cmd.OutOrStdout()
		for n := 0; ambientFrames <= 0 || n < ambientFrames; n++ {
			var f ambient.FrameMessage
			if err := conn.ReadJSON(&f); err != nil {
				return err
			}
			fmt.Fprintf(w, "#%d t=%.2fs rot=(%.3f, %.3f) y=%.3f\n", f.Seq, f.Elapsed, f.Pose.RotX, f.Pose.RotY, f.Pose.PosY)
		}
		return conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	},
}

var ambientStarsCmd = &cobra.Command{
	Use:   "stars",
	Short: "Fetch a generated starfield",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		q := url.Values{"count": {strconv.Itoa(starsCount)}}
		if starsSeed != "" {
			q.Set("seed", starsSeed)
		}
		u, err := endpoint(baseURL, "/api/ambient/stars", q)
		if err != nil {
			return err
		}
		var resp struct {
			Seed  uint64         `json:"seed"`
			Stars []ambient.Star `json:"stars"`
		}
		if err := doJSON(ctx, httpClient(), http.MethodGet, u, "", nil, &resp); err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

func init() {
	ambientWatchCmd.Flags().StringVar(&ambientScene, "scene", string(ambient.SceneLaptop), "scene to animate")
	ambientWatchCmd.Flags().IntVar(&ambientFrames, "frames", 30, "frames to print (0 streams until interrupted)")

	ambientStarsCmd.Flags().IntVar(&starsCount, "count", 20, "number of stars")
	ambientStarsCmd.Flags().StringVar(&starsSeed, "seed", "", "generator seed (server default when empty)")

	ambientCmd.AddCommand(ambientWatchCmd, ambientStarsCmd)
}
