// Package finder contains the default [domain.Finder] implementation.
package finder

import (
	"context"
	"fmt"
	"maps"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/vinicius-lino-figueiredo/mofind/domain"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/data"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/decoder"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/fieldnavigator"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/idcoercer"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/normalizer"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/optionbuilder"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/parser"
	"github.com/vinicius-lino-figueiredo/mofind/internal/adapter/translator"
)

const (
	// DefaultPrimaryKey is the primary key field used by [Finder.Get].
	DefaultPrimaryKey = "_id"
	// DefaultKeyField is the key of [Finder.FindList] results when the
	// option bag names none.
	DefaultKeyField = "_id"
	// DefaultValueField is the value of [Finder.FindList] results when the
	// option bag names none.
	DefaultValueField = "name"
)

// Finder implements domain.Finder.
type Finder struct {
	collection     domain.Collection
	bag            domain.QueryOptions
	where          domain.Document
	primaryKey     string
	logger         *zap.Logger
	documentFac    domain.DocumentFactory
	normalizer     domain.Normalizer
	parser         domain.Parser
	translator     domain.Translator
	optionBuilder  domain.OptionBuilder
	idCoercer      domain.IDCoercer
	decoder        domain.Decoder
	fieldNavigator domain.FieldNavigator
}

// NewFinder returns a new implementation of domain.Finder. The bag is either
// a [domain.QueryOptions] or a map or struct decoded into one. Its
// conditions are merged into where, where taking precedence, and the result
// is translated once.
func NewFinder(collection domain.Collection, bag any, opts ...Option) (domain.Finder, error) {
	f := &Finder{
		collection:  collection,
		primaryKey:  DefaultPrimaryKey,
		logger:      zap.NewNop(),
		documentFac: data.NewDocument,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.setDefaults()

	var err error
	if f.bag, err = f.queryOptions(bag); err != nil {
		return nil, fmt.Errorf("reading options: %w", err)
	}
	if _, err = f.optionBuilder.Build(f.bag, domain.FindOptions{}); err != nil {
		return nil, fmt.Errorf("reading options: %w", err)
	}
	if f.where, err = f.translate(); err != nil {
		return nil, err
	}
	f.logger.Debug("translated conditions", zap.Any("where", f.where))
	return f, nil
}

func (f *Finder) setDefaults() {
	if f.normalizer == nil {
		f.normalizer = normalizer.NewNormalizer(normalizer.WithDocumentFactory(f.documentFac))
	}
	if f.parser == nil {
		f.parser = parser.NewParser(parser.WithDocumentFactory(f.documentFac))
	}
	if f.idCoercer == nil {
		f.idCoercer = idcoercer.NewIDCoercer()
	}
	if f.translator == nil {
		f.translator = translator.NewTranslator(
			translator.WithDocumentFactory(f.documentFac),
			translator.WithIDCoercer(f.idCoercer),
			translator.WithPrimaryKey(f.primaryKey),
		)
	}
	if f.optionBuilder == nil {
		f.optionBuilder = optionbuilder.NewOptionBuilder()
	}
	if f.decoder == nil {
		f.decoder = decoder.NewDecoder(decoder.WithWeaklyTypedInput(true))
	}
	if f.fieldNavigator == nil {
		f.fieldNavigator = fieldnavigator.NewFieldNavigator()
	}
}

func (f *Finder) queryOptions(bag any) (domain.QueryOptions, error) {
	switch t := bag.(type) {
	case nil:
		return domain.QueryOptions{}, nil
	case domain.QueryOptions:
		return t, nil
	case *domain.QueryOptions:
		if t == nil {
			return domain.QueryOptions{}, nil
		}
		return *t, nil
	}
	var res domain.QueryOptions
	if err := f.decoder.Decode(bag, &res); err != nil {
		return domain.QueryOptions{}, err
	}
	return res, nil
}

func (f *Finder) translate() (domain.Document, error) {
	merged := make(map[string]any, len(f.bag.Conditions)+len(f.bag.Where))
	maps.Copy(merged, f.bag.Conditions)
	maps.Copy(merged, f.bag.Where)

	expr, err := f.documentFac(merged)
	if err != nil {
		return nil, fmt.Errorf("reading conditions: %w", err)
	}
	if expr, err = f.normalizer.Normalize(expr); err != nil {
		return nil, fmt.Errorf("normalizing conditions: %w", err)
	}
	cond, err := f.parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parsing conditions: %w", err)
	}
	where, err := f.translator.Translate(cond)
	if err != nil {
		return nil, fmt.Errorf("translating conditions: %w", err)
	}
	return where, nil
}

// Find implements domain.Finder.
func (f *Finder) Find(ctx context.Context, opts ...domain.FindOption) (domain.Cursor, error) {
	fo, err := f.optionBuilder.Build(f.bag, domain.NewFindOptions(opts...))
	if err != nil {
		return nil, fmt.Errorf("building options: %w", err)
	}
	f.logFind("find", f.where, fo)
	cur, err := f.collection.Find(ctx, f.where, fo)
	if err != nil {
		return nil, fmt.Errorf("finding documents: %w", err)
	}
	return cur, nil
}

// FindAll implements domain.Finder.
func (f *Finder) FindAll(ctx context.Context) (domain.Cursor, error) {
	return f.Find(ctx)
}

// FindFirst implements domain.Finder. Only the order and fields of the
// option bag apply.
func (f *Finder) FindFirst(ctx context.Context, target any, opts ...domain.FindOption) error {
	return f.findFirst(ctx, f.where, target, opts...)
}

func (f *Finder) findFirst(ctx context.Context, where domain.Document, target any, opts ...domain.FindOption) error {
	if target == nil {
		return &domain.ErrTargetNil{}
	}
	bag := domain.QueryOptions{Order: f.bag.Order, Fields: f.bag.Fields}
	fo, err := f.optionBuilder.Build(bag, domain.NewFindOptions(opts...))
	if err != nil {
		return fmt.Errorf("building options: %w", err)
	}
	f.logFind("find first", where, fo)
	if err := f.collection.FindOne(ctx, where, target, fo); err != nil {
		return fmt.Errorf("finding document: %w", err)
	}
	return nil
}

// FindList implements domain.Finder. Documents with an empty key are left
// out. Later documents replace earlier ones sharing their key.
func (f *Finder) FindList(ctx context.Context) (res map[string]string, err error) {
	keyField := f.bag.KeyField
	if keyField == "" {
		keyField = DefaultKeyField
	}
	valueField := f.bag.ValueField
	if valueField == "" {
		valueField = DefaultValueField
	}
	keyAddr, err := f.fieldNavigator.GetAddress(keyField)
	if err != nil {
		return nil, err
	}
	valueAddr, err := f.fieldNavigator.GetAddress(valueField)
	if err != nil {
		return nil, err
	}

	cur, err := f.Find(ctx, domain.WithProjection(data.M{keyField: 1, valueField: 1}))
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := cur.Close(ctx); closeErr != nil && err == nil {
			res, err = nil, fmt.Errorf("closing cursor: %w", closeErr)
		}
	}()

	res = make(map[string]string)
	for cur.Next(ctx) {
		var doc primitive.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding document: %w", err)
		}
		key, err := f.stringField(doc, keyAddr)
		if err != nil {
			return nil, err
		}
		if key == "" {
			continue
		}
		if res[key], err = f.stringField(doc, valueAddr); err != nil {
			return nil, err
		}
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("reading cursor: %w", err)
	}
	return res, nil
}

func (f *Finder) stringField(doc any, addr []string) (string, error) {
	value, ok, err := f.fieldNavigator.GetField(doc, addr...)
	if err != nil || !ok || value == nil {
		return "", err
	}
	switch t := value.(type) {
	case string:
		return t, nil
	case primitive.ObjectID:
		return t.Hex(), nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return fmt.Sprint(t), nil
	}
}

// Get implements domain.Finder. The primary key is added to the translated
// conditions of the finder, which are not modified.
func (f *Finder) Get(ctx context.Context, id string, target any) error {
	pk, err := f.idCoercer.CoerceID(id)
	if err != nil {
		return err
	}
	where, err := f.documentFac(nil)
	if err != nil {
		return fmt.Errorf("creating document: %w", err)
	}
	for k, v := range f.where.Iter() {
		where.Set(k, v)
	}
	where.Set(f.primaryKey, pk)
	return f.findFirst(ctx, where, target)
}

// Count implements domain.Finder.
func (f *Finder) Count(ctx context.Context) (int64, error) {
	f.logger.Debug("count", zap.Any("where", f.where))
	n, err := f.collection.CountDocuments(ctx, f.where)
	if err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// Where implements domain.Finder.
func (f *Finder) Where() domain.Document {
	return f.where
}

func (f *Finder) logFind(msg string, where domain.Document, fo domain.FindOptions) {
	if ce := f.logger.Check(zap.DebugLevel, msg); ce != nil {
		fields := []zap.Field{zap.Any("where", where), zap.Any("sort", fo.Sort), zap.Any("projection", fo.Projection)}
		if fo.Limit != nil {
			fields = append(fields, zap.Int64("limit", *fo.Limit))
		}
		if fo.Skip != nil {
			fields = append(fields, zap.Int64("skip", *fo.Skip))
		}
		ce.Write(fields...)
	}
}
