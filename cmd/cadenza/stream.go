package main

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cadenza-ml/cadenza/stream"
)

func streamCmd() *cli.Command {
	return &cli.Command{
		Name:  "stream",
		Usage: "Stream raw little-endian float32 samples from stdin through a model method to stdout",
		Flags: streamFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			log := newLogger()
			defer func() { _ = log.Sync() }()

			b, err := loadGateway(c, log)
			if err != nil {
				return err
			}

			s, err := stream.NewStreamer(b, method,
				stream.WithBufferSize(bufferSize),
				stream.WithHostBlock(blockSize),
				stream.WithLogger(log))
			if err != nil {
				return err
			}
			log.Info("streaming",
				zap.String("method", s.Method()),
				zap.Int("model_block", s.Size()),
				zap.Int("host_block", blockSize))

			err = runStream(ctx, s, os.Stdin, os.Stdout)

			log.Info("stream finished",
				zap.Uint64("overruns", s.Overruns()),
				zap.Uint64("perform_errors", b.PerformErrors()))
			return err
		},
	}
}

// runStream pumps host blocks from r through the streamer to w. The
// reader and processor run as a two-stage pipeline; a short final block is
// processed as-is.
func runStream(ctx context.Context, s *stream.Streamer, r io.Reader, w io.Writer) error {
	blocks := make(chan []float32, 4)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(blocks)
		in := bufio.NewReader(r)
		buf := make([]byte, 4*blockSize)
		for {
			n, err := io.ReadFull(in, buf)
			if n >= 4 {
				block := make([]float32, n/4)
				for i := range block {
					block[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
				}
				select {
				case blocks <- block:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			if err != nil {
				return err
			}
		}
	})

	g.Go(func() error {
		out := bufio.NewWriter(w)
		var hostOut []float32
		var raw []byte
		for block := range blocks {
			if len(hostOut) != len(block) {
				hostOut = make([]float32, len(block))
				raw = make([]byte, 4*len(block))
			}
			s.Process(block, hostOut)
			for i, v := range hostOut {
				binary.LittleEndian.PutUint32(raw[4*i:], math.Float32bits(v))
			}
			if _, err := out.Write(raw); err != nil {
				return err
			}
		}
		return out.Flush()
	})

	return g.Wait()
}
