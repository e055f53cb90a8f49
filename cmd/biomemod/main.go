// Package main provides the biomemod command line.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	biomemodcmd "github.com/louisbranch/biomemod/internal/cmd/biomemod"
	"github.com/louisbranch/biomemod/internal/platform/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := biomemodcmd.Main(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		config.Exitf("Error: %s", biomemodcmd.UserMessage(err, os.Getenv("LANG")))
	}
}
