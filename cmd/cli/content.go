package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"portfolio/internal/github"
	"portfolio/internal/grpcserver"
	"portfolio/pkg/models"
)

var (
	postsTag        string
	postsJSON       bool
	projectsRefresh bool
	projectsRestart bool
	projectsJSON    bool
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List blog posts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		items, err := listPosts(ctx, postsTag)
		if err != nil {
			return err
		}
		if postsJSON {
			return printJSON(cmd.OutOrStdout(), items)
		}
		return printPostTable(cmd.OutOrStdout(), items)
	},
}

var postCmd = &cobra.Command{
	Use:   "post <id>",
	Short: "Show one blog post with its table of contents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		var post models.PostDetail
		if grpcAddr != "" {
			client, conn, err := contentClient()
			if err != nil {
				return err
			}
			defer conn.Close()
			resp, err := client.GetPost(ctx, &grpcserver.GetPostRequest{ID: args[0]})
			if err != nil {
				return err
			}
			post = resp.Post
		} else {
			u, err := endpoint(baseURL, "/api/posts/"+url.PathEscape(args[0]), nil)
			if err != nil {
				return err
			}
			if err := doJSON(ctx, httpClient(), http.MethodGet, u, "", nil, &post); err != nil {
				return err
			}
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s\n%s · %s · %s\n\n", post.Title, post.Date, post.ReadTime, post.Category)
		for _, h := range post.TOC {
			fmt.Fprintf(w, "%s- %s (#%s)\n", strings.Repeat("  ", max(h.Level-1, 0)), h.Title, h.ID)
		}
		fmt.Fprintf(w, "\n%s\n", post.Body)
		return nil
	},
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Show the portfolio project feed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		state, err := loadProjects(ctx)
		if err != nil {
			return err
		}
		if projectsJSON {
			return printJSON(cmd.OutOrStdout(), state)
		}
		return printProjects(cmd.OutOrStdout(), state)
	},
}

func init() {
	postsCmd.Flags().StringVar(&postsTag, "tag", "", "only posts with this tag")
	postsCmd.Flags().BoolVar(&postsJSON, "json", false, "print JSON")

	projectsCmd.Flags().BoolVar(&projectsRefresh, "refresh", false, "start a new fetch before reading")
	projectsCmd.Flags().BoolVar(&projectsRestart, "restart", false, "abandon a running fetch and start over")
	projectsCmd.Flags().BoolVar(&projectsJSON, "json", false, "print JSON")
}

func listPosts(ctx context.Context, tag string) ([]models.PostSummary, error) {
	if grpcAddr != "" {
		client, conn, err := contentClient()
		if err != nil {
			return nil, err
		}
		defer conn.Close()
		resp, err := client.ListPosts(ctx, &grpcserver.ListPostsRequest{Tag: tag})
		if err != nil {
			return nil, err
		}
		return resp.Items, nil
	}

	u, err := endpoint(baseURL, "/api/posts", nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Total int                  `json:"total"`
		Items []models.PostSummary `json:"items"`
	}
	if err := doJSON(ctx, httpClient(), http.MethodGet, u, "", nil, &resp); err != nil {
		return nil, err
	}
	return filterByTag(resp.Items, tag), nil
}

func filterByTag(items []models.PostSummary, tag string) []models.PostSummary {
	if tag == "" {
		return items
	}
	var out []models.PostSummary
	for _, p := range items {
		for _, t := range p.Tags {
			if strings.EqualFold(t, tag) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func loadProjects(ctx context.Context) (github.State, error) {
	if grpcAddr != "" {
		client, conn, err := contentClient()
		if err != nil {
			return github.State{}, err
		}
		defer conn.Close()
		resp, err := client.ListProjects(ctx, &grpcserver.ListProjectsRequest{Restart: projectsRestart || projectsRefresh})
		if err != nil {
			return github.State{}, err
		}
		return resp.State, nil
	}

	client := httpClient()
	if projectsRefresh || projectsRestart {
		q := url.Values{}
		if projectsRestart {
			q.Set("restart", "true")
		}
		u, err := endpoint(baseURL, "/api/projects/refresh", q)
		if err != nil {
			return github.State{}, err
		}
		if err := doJSON(ctx, client, http.MethodPost, u, "", nil, nil); err != nil {
			return github.State{}, err
		}
	}

	u, err := endpoint(baseURL, "/api/projects", url.Values{"wait": {"true"}})
	if err != nil {
		return github.State{}, err
	}
	var state github.State
	if err := doJSON(ctx, client, http.MethodGet, u, "", nil, &state); err != nil {
		return github.State{}, err
	}
	return state, nil
}

func printPostTable(w io.Writer, items []models.PostSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tTITLE")
	for _, p := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Date, p.Category, p.Title)
	}
	return tw.Flush()
}

func printProjects(w io.Writer, state github.State) error {
	switch state.Status {
	case github.StatusError:
		_, err := fmt.Fprintln(w, state.Message)
		return err
	case github.StatusEmpty:
		_, err := fmt.Fprintln(w, "No projects found.")
		return err
	case github.StatusReady:
	default:
		_, err := fmt.Fprintf(w, "Projects are %s (attempt %d).\n", state.Status, state.Attempt)
		return err
	}

	for _, p := range state.Projects {
		fmt.Fprintf(w, "%s\n  %s\n  tech: %s\n", p.Title, p.Description, strings.Join(p.Technologies, ", "))
		if p.GitHubURL != "" {
			fmt.Fprintf(w, "  code: %s\n", p.GitHubURL)
		}
		if p.LiveURL != "" {
			fmt.Fprintf(w, "  live: %s\n", p.LiveURL)
		}
	}
	return nil
}
