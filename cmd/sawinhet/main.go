// sawinhet converts flat energy-certificate exports into nested
// certificate documents.
//
// Usage:
//
//	sawinhet convert --record <file> --pdf <file> --image path=<file>,category=<code>[,note=<text>] ...
//	sawinhet convert --manifest <file>
//	sawinhet batch
//	sawinhet inbox
//	sawinhet inspect <record>
//	sawinhet history [--lead <code>] [--limit <n>]
//	sawinhet categories
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
