package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"portfolio/internal/grpcserver"
)

const defaultBaseURL = "http://localhost:8080"

var (
	baseURL   string
	grpcAddr  string
	tokenPath string
	timeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "portfolio",
	Short:         "Command line client for the portfolio site",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "api", defaultBaseURL, "site base URL")
	rootCmd.PersistentFlags().StringVar(&grpcAddr, "grpc", "", "read content over gRPC at this address instead of HTTP")
	rootCmd.PersistentFlags().StringVar(&tokenPath, "token", defaultTokenPath(), "admin token file path")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "request timeout")

	rootCmd.AddCommand(postsCmd, postCmd, projectsCmd)
	rootCmd.AddCommand(contactCmd, messagesCmd)
	rootCmd.AddCommand(ambientCmd)
	rootCmd.AddCommand(loginCmd, logoutCmd, hashPasswordCmd)
}

func httpClient() *http.Client {
	return &http.Client{Timeout: timeout}
}

// contentClient dials the gRPC server. The caller closes the connection.
func contentClient() (*grpcserver.ContentClient, *grpc.ClientConn, error) {
	conn, err := grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %w", grpcAddr, err)
	}
	return grpcserver.NewContentClient(conn), conn, nil
}
