package main

import (
	"errors"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/vinicius-lino-figueiredo/mofind"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/collection"
)

// ErrNoCollection is returned by the find command when no collection is
// configured.
var ErrNoCollection = errors.New("no collection configured")

type findFlags struct {
	database   string
	collection string
	first      bool
	list       bool
	count      bool
}

func (a *app) findCmd() *cobra.Command {
	var flags findFlags
	cmd := &cobra.Command{
		Use:   "find [options]",
		Short: "Run a JSON option bag against a MongoDB collection",
		Long: `Run a JSON option bag against a MongoDB collection.

The option bag holds the keys fields, where, conditions, order, limit, page,
keyField and valueField. It is read from the argument, or from stdin when it
is missing or "-". Matching documents are written one per line.`,
		Example: `  mofind find --collection people '{"where": {"age >=": 18}, "order": {"name": "asc"}, "limit": 10}'`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.find(cmd, args, flags)
		},
	}
	cmd.Flags().StringVar(&flags.database, "database", "", "database name, overrides the configuration")
	cmd.Flags().StringVar(&flags.collection, "collection", "", "collection name, overrides the configuration")
	cmd.Flags().BoolVar(&flags.first, "first", false, "write only the first matching document")
	cmd.Flags().BoolVar(&flags.list, "list", false, "write a keyField to valueField mapping")
	cmd.Flags().BoolVar(&flags.count, "count", false, "write the number of matching documents")
	cmd.MarkFlagsMutuallyExclusive("first", "list", "count")
	return cmd
}

func (a *app) find(cmd *cobra.Command, args []string, flags findFlags) (err error) {
	ctx := cmd.Context()
	mc := a.cfg.Mongo
	if flags.database != "" {
		mc.Database = flags.database
	}
	if flags.collection != "" {
		mc.Collection = flags.collection
	}
	if mc.Collection == "" {
		return ErrNoCollection
	}

	bag, err := a.readDocument(ctx, args)
	if err != nil {
		return err
	}

	client, coll, err := collection.Connect(ctx, mc.URI, mc.Database, mc.Collection)
	if err != nil {
		return err
	}
	defer func() {
		if dErr := client.Disconnect(ctx); dErr != nil && err == nil {
			err = fmt.Errorf("disconnecting: %w", dErr)
		}
	}()
	a.logger.Debug("connected", zap.String("database", mc.Database), zap.String("collection", mc.Collection))

	f, err := mofind.NewFinder(coll, bag,
		mofind.WithLogger(a.logger),
		mofind.WithFinderPrimaryKey(a.cfg.Query.PrimaryKey),
		mofind.WithTranslator(a.translator()),
		mofind.WithOptionBuilder(mofind.NewOptionBuilder(mofind.WithDefaultLimit(a.cfg.Query.Limit))),
	)
	if err != nil {
		return err
	}

	switch {
	case flags.count:
		n, err := f.Count(ctx)
		if err != nil {
			return err
		}
		return a.write(ctx, []byte(strconv.FormatInt(n, 10)+"\n"))
	case flags.list:
		list, err := f.FindList(ctx)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}
		return a.write(ctx, append(out, '\n'))
	case flags.first:
		var doc bson.D
		if err := f.FindFirst(ctx, &doc); err != nil {
			return err
		}
		return a.writeJSON(ctx, doc, false)
	}

	cur, err := f.Find(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cErr := cur.Close(ctx); cErr != nil && err == nil {
			err = fmt.Errorf("closing cursor: %w", cErr)
		}
	}()
	for cur.Next(ctx) {
		var doc bson.D
		if err := cur.Decode(&doc); err != nil {
			return fmt.Errorf("decoding document: %w", err)
		}
		if err := a.writeJSON(ctx, doc, false); err != nil {
			return err
		}
	}
	return cur.Err()
}
