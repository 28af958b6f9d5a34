package main

import (
	"fmt"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/cadenza-ml/cadenza/backend"
)

var (
	modelPath  string
	useGPU     bool
	method     string
	bufferSize int
	blockSize  int
)

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "model",
			Aliases:     []string{"m"},
			Usage:       "path to the model manifest",
			Destination: &modelPath,
		},
		&cli.BoolFlag{
			Name:        "gpu",
			Usage:       "run on the best available accelerator",
			Destination: &useGPU,
		},
	}
}

func streamFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.StringFlag{
			Name:        "method",
			Usage:       "model method to stream through",
			Value:       "forward",
			Destination: &method,
		},
		&cli.IntFlag{
			Name:        "buffer-size",
			Aliases:     []string{"b"},
			Usage:       "model block size in samples (0 picks the smallest legal size)",
			Destination: &bufferSize,
		},
		&cli.IntFlag{
			Name:        "block-size",
			Usage:       "host block size in samples",
			Value:       512,
			Destination: &blockSize,
		},
	)
}

// loadGateway applies config-file defaults, builds the gateway and loads
// the model manifest.
func loadGateway(c *cli.Command, log *zap.Logger) (*backend.Backend, error) {
	applyConfig(c, loadConfig())

	if modelPath == "" {
		return nil, fmt.Errorf("no model manifest given (use --model)")
	}

	b := backend.New(backend.WithLogger(log))
	if useGPU {
		b.UseGPU(true)
	}
	if err := b.Load(modelPath); err != nil {
		return nil, err
	}
	return b, nil
}
