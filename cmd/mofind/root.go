package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dolmen-go/contextio"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vinicius-lino-figueiredo/mofind"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/data"
	"github.com/vinicius-lino-figueiredo/mofind/internal/config"
)

type app struct {
	stdin      io.Reader
	stdout     io.Writer
	configPath string
	logLevel   string
	cfg        config.Config
	logger     *zap.Logger
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, logger: zap.NewNop()}
	root := &cobra.Command{
		Use:               "mofind",
		Short:             "Translate SQL flavoured conditions into MongoDB queries",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.logger.Sync() },
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "configuration file (default ./mofind.*)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level, overrides the configuration")
	root.AddCommand(a.translateCmd(), a.findCmd())
	return root
}

func (a *app) setup(*cobra.Command, []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger.With(zap.String("run", uuid.NewString()))
	return nil
}

func newLogger(cfg config.Log) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func (a *app) translator() mofind.Translator {
	return mofind.NewTranslator(
		mofind.WithPrimaryKey(a.cfg.Query.PrimaryKey),
		mofind.WithRawPrefix(a.cfg.Query.RawPrefix),
	)
}

// readDocument reads a JSON object from the first argument, or from stdin
// when there is none or it is "-".
func (a *app) readDocument(ctx context.Context, args []string) (mofind.M, error) {
	var input []byte
	if len(args) > 0 && args[0] != "-" {
		input = []byte(args[0])
	} else {
		var err error
		if input, err = io.ReadAll(contextio.NewReader(ctx, a.stdin)); err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
	}
	var doc mofind.M
	if err := json.Unmarshal(input, &doc); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return doc, nil
}

// writeJSON writes v as relaxed extended JSON followed by a line break.
// Documents are written with their keys sorted.
func (a *app) writeJSON(ctx context.Context, v any, indent bool) error {
	var (
		out []byte
		err error
	)
	if indent {
		out, err = bson.MarshalExtJSONIndent(sorted(v), false, false, "", "  ")
	} else {
		out, err = bson.MarshalExtJSON(sorted(v), false, false)
	}
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return a.write(ctx, append(out, '\n'))
}

func (a *app) write(ctx context.Context, b []byte) error {
	if _, err := contextio.NewWriter(ctx, a.stdout).Write(b); err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// sorted converts documents into ordered bson documents.
func sorted(v any) any {
	if doc, ok := data.AsDocument(v); ok {
		res := make(bson.D, 0, doc.Len())
		for _, k := range data.SortedKeys(doc) {
			res = append(res, bson.E{Key: k, Value: sorted(doc.Get(k))})
		}
		return res
	}
	if list, ok := v.([]any); ok {
		res := make(bson.A, len(list))
		for n, item := range list {
			res[n] = sorted(item)
		}
		return res
	}
	return v
}
