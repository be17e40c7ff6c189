package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/opencompute/go-sairedis/internal/obslog"
	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/bus/sqlitestore"
	"github.com/opencompute/go-sairedis/pkg/bus/translation"
	"github.com/opencompute/go-sairedis/pkg/config"
	"github.com/opencompute/go-sairedis/pkg/sai/attr"
	"github.com/opencompute/go-sairedis/pkg/syncd"
	"github.com/opencompute/go-sairedis/pkg/syncd/vendor"
)

// localDispatcher opens the same sqlite-backed store the daemon's
// --config points at and runs a throwaway Dispatcher against a freshly
// constructed vendor SDK for the duration of one command. The translation
// store (VID<->RID bindings, VID counter) is therefore genuinely shared
// with a running daemon; the vendor SDK's live object state is not, since
// the only binding this repo ships (vendor.Fake) keeps its object table
// in-process rather than in the shared store. Against a real ASIC binding
// this shortcut would share both; documented as a known limitation of
// driving create/remove/set without a resident daemon (see DESIGN.md).
type localDispatcher struct {
	store *sqlitestore.Store
	bus   *bus.Bus
	sdk   vendor.SDK
	disp  *syncd.Dispatcher
	done  chan struct{}
}

func newLocalDispatcher(ctx context.Context) (*localDispatcher, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	store, err := sqlitestore.Open(cfg.Store.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	b := bus.New(store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	var sdk vendor.SDK
	switch cfg.Vendor.Target {
	case "", "fake":
		sdk = vendor.NewFake()
	default:
		store.Close()
		return nil, fmt.Errorf("unknown vendor.target %q (only \"fake\" is built in)", cfg.Vendor.Target)
	}
	if err := sdk.Connect(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("connect vendor sdk: %w", err)
	}

	trans := translation.New(store)
	disp := syncd.NewDispatcher(b, trans, sdk, obslog.Component(obslog.ComponentSyncd), nil)

	ld := &localDispatcher{store: store, bus: b, sdk: sdk, disp: disp, done: make(chan struct{})}
	go func() {
		disp.Run(ctx)
		close(ld.done)
	}()
	return ld, nil
}

func (ld *localDispatcher) Close() {
	ld.bus.Close()
	ld.sdk.Disconnect(context.Background())
	ld.store.Close()
}

// parseAttrs turns a repeated --attr name=value flag into a Field list.
func parseAttrs(raw []string) ([]attr.Field, error) {
	fields := make([]attr.Field, 0, len(raw))
	for _, r := range raw {
		parts := strings.SplitN(r, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid --attr %q, want name=value", r)
		}
		fields = append(fields, attr.Field{Name: parts[0], Value: parts[1]})
	}
	return fields, nil
}

func getCmd() *cobra.Command {
	var attrs []string
	cmd := &cobra.Command{
		Use:   "get <kind:ref>",
		Short: "Get attributes by id (local store/sdk, see saictl --help)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			ld, err := newLocalDispatcher(ctx)
			if err != nil {
				return err
			}
			defer ld.Close()

			fields, err := parseAttrs(attrs)
			if err != nil {
				return err
			}
			if err := ld.bus.PushGetRequest(ctx, bus.Message{Key: args[0], Op: bus.OpGet, Fields: fields}); err != nil {
				return err
			}

			resp, ok, err := ld.bus.Response.Pop(ctx)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("response queue closed before a reply arrived")
			}

			fmt.Printf("status: %s\n", resp.Status)
			for _, f := range resp.Fields {
				fmt.Printf("  %s = %s\n", f.Name, f.Value)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&attrs, "attr", nil, "attribute to request, name=placeholder-value (repeatable)")
	return cmd
}

func createCmd() *cobra.Command {
	var attrs []string
	cmd := &cobra.Command{
		Use:   "create <kind:ref>",
		Short: "Create an object (local store/sdk, fire-and-forget, see saictl --help)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return submitMutation(args[0], bus.OpCreate, attrs)
		},
	}
	cmd.Flags().StringArrayVar(&attrs, "attr", nil, "attribute to set, name=value (repeatable)")
	return cmd
}

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <kind:ref>",
		Short: "Remove an object (local store/sdk, fire-and-forget, see saictl --help)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return submitMutation(args[0], bus.OpRemove, nil)
		},
	}
}

func setCmd() *cobra.Command {
	var attrVal string
	cmd := &cobra.Command{
		Use:   "set <kind:ref>",
		Short: "Set one attribute (local store/sdk, fire-and-forget, see saictl --help)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if attrVal == "" {
				return fmt.Errorf("--attr name=value is required")
			}
			return submitMutation(args[0], bus.OpSet, []string{attrVal})
		},
	}
	cmd.Flags().StringVar(&attrVal, "attr", "", "attribute to set, name=value")
	return cmd
}

func submitMutation(key string, op bus.Op, rawAttrs []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ld, err := newLocalDispatcher(ctx)
	if err != nil {
		return err
	}
	defer ld.Close()

	fields, err := parseAttrs(rawAttrs)
	if err != nil {
		return err
	}
	if err := ld.bus.PushAsicState(ctx, bus.Message{Key: key, Op: op, Fields: fields}); err != nil {
		return err
	}

	// Mutations are fire-and-forget on the asic-state queue (no paired
	// response queue, spec section 4.3): give the dispatcher goroutine a
	// moment to drain the queue before this short-lived process exits.
	time.Sleep(100 * time.Millisecond)
	fmt.Println("submitted")
	return nil
}
