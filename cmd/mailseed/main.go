// Command mailseed seeds Maildir mailboxes with synthetic test messages.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/infodancer/mailseed/internal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cmd.Execute(ctx)
	stop()
	if err != nil {
		logrus.WithError(err).Error("Population failed")
		os.Exit(1)
	}
}
