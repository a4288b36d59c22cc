package main

import (
	"context"
	"os"

	"github.com/opslens/opslens/pkg/cli"
	"github.com/opslens/opslens/pkg/utils/apperr"
)

func main() {
	ctx := context.Background()
	if err := cli.Run(ctx, os.Args); err != nil {
		apperr.Handle(ctx, err)
		os.Exit(1)
	}
}
