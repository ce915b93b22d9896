package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/rocketgeek/akismetclient-go/internal/cli"
)

var version = "dev"

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	if err := cli.NewRoot(version).ExecuteContext(context.Background()); err != nil {
		var ee *cli.ExitError
		if errors.As(err, &ee) {
			if msg := ee.Message(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			os.Exit(ee.Code())
		}
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
