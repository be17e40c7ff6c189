// Command saictl is the operator CLI (mirrors cmd/osvbngcli's role as an
// operator-facing side channel onto a running daemon): status/setlevel/
// diag talk to a live saisyncd over the api/saipb gRPC introspection
// channel, while get/create/remove/set operate directly against the
// shared bus store for smoke-testing a configuration without a resident
// daemon (see localDispatcher in local.go for the exact scope of that
// shortcut).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/opencompute/go-sairedis/api/saipb"
)

var (
	configPath string
	rpcAddr    string
)

func main() {
	root := &cobra.Command{
		Use:   "saictl",
		Short: "Operator CLI for the saisyncd daemon",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "/etc/saisyncd/saisyncd.yaml", "path to saisyncd config file (get/create/remove/set)")
	root.PersistentFlags().StringVar(&rpcAddr, "rpc", "localhost:50060", "saisyncd introspection rpc address (status/setlevel/diag)")

	root.AddCommand(statusCmd(), setLevelCmd(), diagCmd(), getCmd(), createCmd(), removeCmd(), setCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rpcClient(ctx context.Context) (*saipb.Client, func(), error) {
	conn, err := grpc.NewClient(rpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %w", rpcAddr, err)
	}
	return saipb.NewClient(conn), func() { conn.Close() }, nil
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report bus queue depths, translation-store size, and log level",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			client, closeConn, err := rpcClient(ctx)
			if err != nil {
				return err
			}
			defer closeConn()

			resp, err := client.Status(ctx, &saipb.StatusRequest{})
			if err != nil {
				return err
			}

			fmt.Printf("log level: %s\n", resp.LogLevel)
			fmt.Printf("translation store size: %d\n", resp.TranslationSize)
			fmt.Println("bus depths:")
			for name, depth := range resp.BusDepths {
				fmt.Printf("  %-12s %d\n", name, depth)
			}
			return nil
		},
	}
}

func setLevelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setlevel <component> <level>",
		Short: "Override (or, with an empty level, clear) one component's log level",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			client, closeConn, err := rpcClient(ctx)
			if err != nil {
				return err
			}
			defer closeConn()

			level := ""
			if len(args) == 2 {
				level = args[1]
			}
			if _, err := client.SetLevel(ctx, &saipb.SetLevelRequest{Component: args[0], Level: level}); err != nil {
				return err
			}
			fmt.Printf("%s level set to %q\n", args[0], level)
			return nil
		},
	}
}

func diagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diag",
		Short: "Trigger one immediate vendor diag query",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			client, closeConn, err := rpcClient(ctx)
			if err != nil {
				return err
			}
			defer closeConn()

			resp, err := client.Diag(ctx, &saipb.DiagRequest{})
			if err != nil {
				return err
			}
			if !resp.Ok {
				return fmt.Errorf("vendor diag failed: %s", resp.Error)
			}
			fmt.Println("diag ok")
			return nil
		},
	}
}
