package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func getCmd() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Read a model attribute",
		ArgsUsage: "<attribute>",
		Flags:     commonFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			name := c.Args().First()
			if name == "" {
				return fmt.Errorf("get needs an attribute name")
			}

			log := newLogger()
			defer func() { _ = log.Sync() }()

			b, err := loadGateway(c, log)
			if err != nil {
				return err
			}

			s, err := b.GetAttributeString(name)
			if err != nil {
				return err
			}
			fmt.Println(s)
			return nil
		},
	}
}

func setCmd() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Write a model attribute and read it back",
		ArgsUsage: "<attribute> <value>...",
		Flags:     commonFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			name := c.Args().First()
			if name == "" {
				return fmt.Errorf("set needs an attribute name")
			}

			log := newLogger()
			defer func() { _ = log.Sync() }()

			b, err := loadGateway(c, log)
			if err != nil {
				return err
			}

			if err := b.SetAttribute(name, c.Args().Tail()); err != nil {
				return err
			}
			s, err := b.GetAttributeString(name)
			if err != nil {
				return err
			}
			fmt.Println(s)
			return nil
		},
	}
}
