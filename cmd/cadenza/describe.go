package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func describeCmd() *cli.Command {
	return &cli.Command{
		Name:  "describe",
		Usage: "Show a model's methods, frame ratios and attributes",
		Flags: commonFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			log := newLogger()
			defer func() { _ = log.Sync() }()

			b, err := loadGateway(c, log)
			if err != nil {
				return err
			}

			fmt.Printf("model: %s (%s)\n", b.Path(), b.Device())
			fmt.Println("methods:")
			for _, name := range b.AvailableMethods() {
				p, _ := b.MethodParams(name)
				fmt.Printf("  %-12s in %d@1:%d  out %d@1:%d\n",
					name, p.InDim, p.InRatio, p.OutDim, p.OutRatio)
			}
			fmt.Printf("higher ratio: %d\n", b.HigherRatio())

			attrs := b.SettableAttributes()
			if len(attrs) == 0 {
				return nil
			}
			fmt.Println("attributes:")
			for _, name := range attrs {
				if s, err := b.GetAttributeString(name); err == nil {
					fmt.Printf("  %s = %s\n", name, s)
				} else {
					fmt.Printf("  %s\n", name)
				}
			}
			return nil
		},
	}
}
