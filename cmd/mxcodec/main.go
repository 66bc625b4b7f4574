// Command mxcodec encodes and decodes values in the mxcodec wire
// format from the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/creachadair/mds/slice"
	"github.com/creachadair/taskgroup"
	"github.com/kr/pretty"
	"github.com/mxbin/mxcodec"
)

var globalArgs struct {
	UserSig   int    `flag:"sig,default=42,Application signature byte (1-239)"`
	ByteOrder string `flag:"order,default=native,Byte order: native, little, or big"`
}

func main() {
	root := &command.C{
		Name:     "mxcodec",
		Usage:    "command args...",
		SetFlags: command.Flags(flax.MustBind, &globalArgs),
		Commands: []*command.C{
			{
				Name:  "encode",
				Usage: "encode",
				Help:  "Read raw bytes from stdin, wrap them as a uint8 row value, and write the encoded buffer to stdout.",
				Run:   command.Adapt(runEncode),
			},
			{
				Name:  "decode",
				Usage: "decode",
				Help:  "Read an encoded buffer from stdin in dynamic mode and write the decoded payload bytes to stdout, if the decoded class is uint8 or char8.",
				Run:   command.Adapt(runDecode),
			},
			{
				Name:  "inspect",
				Usage: "inspect file...",
				Help:  "Decode one or more encoded buffers and pretty-print their structure.",
				Run:   runInspect,
			},
			{
				Name:     "batch",
				Usage:    "batch file...",
				Help:     "Decode many encoded buffers concurrently and report per-file class and shape.",
				SetFlags: command.Flags(flax.MustBind, &batchArgs),
				Run:      runBatch,
			},
			command.HelpCommand(nil),
			command.VersionCommand(),
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	env := root.NewEnv(nil).SetContext(ctx)
	command.RunOrFail(env, os.Args[1:])
}

func decodeOptions() mxcodec.DecodeOptions {
	return mxcodec.DecodeOptions{UserSig: byte(globalArgs.UserSig)}
}

func encodeOptions() mxcodec.EncodeOptions {
	return mxcodec.EncodeOptions{UserSig: byte(globalArgs.UserSig), ByteOrder: globalArgs.ByteOrder}
}

func runEncode(env *command.Env) error {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	v := mxcodec.Value{Class: mxcodec.ClassUint8, Shape: mxcodec.RowShape(len(raw)), Data: append([]byte(nil), raw...)}
	buf, err := mxcodec.Encode(v, encodeOptions())
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	if _, err := os.Stdout.Write(buf); err != nil {
		return fmt.Errorf("writing stdout: %w", err)
	}
	return nil
}

func runDecode(env *command.Env) error {
	buf, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	v, err := mxcodec.Decode(buf, decodeOptions())
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}
	switch v.Class {
	case mxcodec.ClassUint8:
		_, err = os.Stdout.Write(v.Data.([]byte))
	case mxcodec.ClassChar8:
		_, err = os.Stdout.Write([]byte(v.Data.(mxcodec.Char8)))
	default:
		return fmt.Errorf("decoded value has class %s, which has no raw byte rendering; use inspect instead", v.Class)
	}
	if err != nil {
		return fmt.Errorf("writing stdout: %w", err)
	}
	return nil
}

func runInspect(env *command.Env) error {
	files := env.Args
	if len(files) == 0 {
		return env.Usagef("inspect requires at least one file argument")
	}
	for _, f := range files {
		buf, err := os.ReadFile(f)
		if err != nil {
			fmt.Printf("%s: %v\n", f, err)
			continue
		}
		v, err := mxcodec.Decode(buf, decodeOptions())
		if err != nil {
			fmt.Printf("%s: %v\n", f, err)
			continue
		}
		fmt.Printf("%s:\n%# v\n\n", f, pretty.Formatter(v))
	}
	return nil
}

var batchArgs struct {
	Concurrency int `flag:"concurrency,default=4,Maximum number of files decoded in parallel"`
}

type batchResult struct {
	file  string
	class mxcodec.Class
	shape mxcodec.Shape
	err   error
}

// runBatch decodes every file concurrently, bounded by
// batchArgs.Concurrency, demonstrating that distinct mxcodec calls
// share no mutable state and may run in parallel.
func runBatch(env *command.Env) error {
	files := env.Args
	if len(files) == 0 {
		return env.Usagef("batch requires at least one file argument")
	}

	results := make([]batchResult, len(files))
	g, run := taskgroup.New(nil).Limit(batchArgs.Concurrency)
	for i, f := range files {
		i, f := i, f
		run(func() error {
			buf, err := os.ReadFile(f)
			if err != nil {
				results[i] = batchResult{file: f, err: err}
				return nil
			}
			v, err := mxcodec.Decode(buf, decodeOptions())
			if err != nil {
				results[i] = batchResult{file: f, err: err}
				return nil
			}
			results[i] = batchResult{file: f, class: v.Class, shape: v.Shape}
			return nil
		})
	}
	g.Wait()

	ok, failed := slice.Partition(results, func(r batchResult) bool { return r.err == nil })
	for _, r := range ok {
		fmt.Printf("%s: class=%s shape=%v\n", r.file, r.class, []int(r.shape))
	}
	for _, r := range failed {
		fmt.Printf("%s: error: %v\n", r.file, r.err)
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d files failed to decode", len(failed), len(files))
	}
	return nil
}
